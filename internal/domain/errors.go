package domain

import "errors"

// Business failures. Callers match with errors.Is; the RPC layer maps each
// to a status code.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInsufficientBalance = errors.New("insufficient points")
	ErrRewardUnavailable   = errors.New("reward unavailable")
	ErrCapacityExceeded    = errors.New("event is full")
)
