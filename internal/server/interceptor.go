package server

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

// loggingInterceptor logs every unary call with the request-scoped logger.
func loggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			res, err := next(ctx, req)

			logger := zerolog.Ctx(ctx)
			procedure := req.Spec().Procedure
			duration := time.Since(start)
			if err != nil {
				code := connect.CodeOf(err)
				event := logger.Warn()
				if code == connect.CodeInternal {
					event = logger.Error()
				}
				event.Err(err).
					Str("procedure", procedure).
					Str("code", code.String()).
					Dur("duration", duration).
					Msg("rpc failed")
				return res, err
			}

			logger.Debug().
				Str("procedure", procedure).
				Dur("duration", duration).
				Msg("rpc handled")
			return res, nil
		}
	}
}
