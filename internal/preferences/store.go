package preferences

import (
	"context"
	"fmt"
	"sync"

	"healthdash/internal/domain"

	"github.com/rs/zerolog"
)

type Store struct {
	// writeMu serializes setters so storage and memory see the same order.
	writeMu   sync.Mutex
	mu        sync.RWMutex
	backend   Backend
	logger    zerolog.Logger
	prefs     Preferences
	user      *domain.User
	listeners []func(Preferences)
}

func NewStore(backend Backend, logger zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
		prefs:   Defaults(),
	}
}

// Init loads persisted values once at startup. Unknown values are skipped.
func (s *Store) Init(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	values, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	prefs := Defaults()
	if v, ok := values[KeyTheme]; ok {
		if t, err := ParseTheme(v); err == nil {
			prefs.Theme = t
		} else {
			s.logger.Warn().Err(err).Msg("ignoring persisted theme")
		}
	}
	if v, ok := values[KeyContrastMode]; ok {
		if m, err := ParseContrastMode(v); err == nil {
			prefs.ContrastMode = m
		} else {
			s.logger.Warn().Err(err).Msg("ignoring persisted contrast mode")
		}
	}
	if v, ok := values[KeyFontSize]; ok {
		if f, err := ParseFontSize(v); err == nil {
			prefs.FontSize = f
		} else {
			s.logger.Warn().Err(err).Msg("ignoring persisted font size")
		}
	}

	s.mu.Lock()
	s.prefs = prefs
	listeners := append([]func(Preferences){}, s.listeners...)
	s.mu.Unlock()

	s.logger.Info().
		Str("theme", string(prefs.Theme)).
		Str("contrast_mode", string(prefs.ContrastMode)).
		Str("font_size", string(prefs.FontSize)).
		Msg("preferences initialized")
	apply(listeners, prefs)
	return nil
}

func (s *Store) Snapshot() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// OnChange registers fn to run after every applied change.
func (s *Store) OnChange(fn func(Preferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) SetTheme(ctx context.Context, theme Theme) (Preferences, error) {
	if _, err := ParseTheme(string(theme)); err != nil {
		return s.Snapshot(), fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.update(ctx, KeyTheme, func(p *Preferences) string {
		p.Theme = theme
		return string(theme)
	})
}

// ToggleTheme flips the theme it sees under the write lock, so concurrent
// toggles each take effect.
func (s *Store) ToggleTheme(ctx context.Context) (Preferences, error) {
	return s.update(ctx, KeyTheme, func(p *Preferences) string {
		if p.Theme == ThemeDark {
			p.Theme = ThemeLight
		} else {
			p.Theme = ThemeDark
		}
		return string(p.Theme)
	})
}

func (s *Store) SetContrastMode(ctx context.Context, mode ContrastMode) (Preferences, error) {
	if _, err := ParseContrastMode(string(mode)); err != nil {
		return s.Snapshot(), fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.update(ctx, KeyContrastMode, func(p *Preferences) string {
		p.ContrastMode = mode
		return string(mode)
	})
}

func (s *Store) SetFontSize(ctx context.Context, size FontSize) (Preferences, error) {
	if _, err := ParseFontSize(string(size)); err != nil {
		return s.Snapshot(), fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.update(ctx, KeyFontSize, func(p *Preferences) string {
		p.FontSize = size
		return string(size)
	})
}

// update derives the next state from the current one, persists it, and only
// then applies it. The whole sequence holds writeMu. Listeners run under it
// too and must not call setters.
func (s *Store) update(ctx context.Context, key string, set func(*Preferences) string) (Preferences, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Snapshot()
	value := set(&next)
	if err := s.backend.Save(ctx, key, value); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to persist preference")
		return s.Snapshot(), fmt.Errorf("failed to persist %s: %w", key, err)
	}

	s.mu.Lock()
	s.prefs = next
	listeners := append([]func(Preferences){}, s.listeners...)
	s.mu.Unlock()

	s.logger.Debug().Str("key", key).Str("value", value).Msg("preference updated")
	apply(listeners, next)
	return next, nil
}

func (s *Store) SetUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		return
	}
	u := *user
	s.user = &u
}

func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func apply(listeners []func(Preferences), prefs Preferences) {
	for _, fn := range listeners {
		fn(prefs)
	}
}
