package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/service/identity"
)

// StorageKey is the single durable key that holds the bearer token
const StorageKey = "hospital_token"

// TokenStorage persists the bearer token outside process memory.
// Load returns "" and a nil error when nothing is stored.
type TokenStorage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Observer is notified after every transition
type Observer func(from, to State, e Event)

type Store struct {
	mu       sync.RWMutex
	state    State
	provider identity.Provider
	storage  TokenStorage
	observer Observer
	logger   zerolog.Logger

	hydrateOnce sync.Once
	hydrateErr  error
}

type Option func(*Store)

func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observer = o
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore returns a store in the Anonymous state
func NewStore(provider identity.Provider, storage TokenStorage, opts ...Option) *Store {
	s := &Store{
		state:    Anonymous{},
		provider: provider,
		storage:  storage,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Snapshot() model.AuthState {
	return Snapshot(s.State())
}

func (s *Store) IsAuthenticated() bool {
	return IsAuthenticated(s.State())
}

// User returns the bound user or nil
func (s *Store) User() *model.User {
	return UserOf(s.State())
}

func (s *Store) dispatch(e Event) State {
	s.mu.Lock()
	from := s.state
	to := Next(from, e)
	s.state = to
	s.mu.Unlock()

	s.logger.Debug().
		Str("event", e.Name()).
		Str("from", from.Name()).
		Str("to", to.Name()).
		Msg("session transition")

	if s.observer != nil {
		s.observer(from, to, e)
	}
	return to
}

// Login authenticates by email and persists the token. On failure the session is
// Anonymous and the provider error (identity.ErrInvalidCredentials for an unknown
// email) is returned.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	s.dispatch(LoginStarted{})

	user, token, err := s.provider.Login(ctx, email, password)
	if err != nil {
		s.dispatch(LoginFailed{})
		return nil, err
	}

	s.authenticate(ctx, user, token)
	return user, nil
}

// Register creates an identity and authenticates as it without a confirmation step
func (s *Store) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	s.dispatch(LoginStarted{})

	user, token, err := s.provider.Register(ctx, req)
	if err != nil {
		s.dispatch(LoginFailed{})
		return nil, err
	}

	s.authenticate(ctx, user, token)
	return user, nil
}

// authenticate persists first so a reload can restore the session. A storage
// failure is logged; the in-process session still holds.
func (s *Store) authenticate(ctx context.Context, user *model.User, token string) {
	if err := s.storage.Save(ctx, token); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to persist session token")
	}
	s.dispatch(LoginSucceeded{User: user, Token: token})
}

// Logout clears storage and returns to Anonymous from any state. It cannot fail.
func (s *Store) Logout(ctx context.Context) {
	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear session token")
	}
	s.dispatch(LoggedOut{})
}

// Hydrate restores the session from storage. Only the first call does any work.
// The state stays Anonymous while verification is in flight. An unrecognized token
// is cleared silently; other failures leave the session Anonymous and are returned.
func (s *Store) Hydrate(ctx context.Context) error {
	s.hydrateOnce.Do(func() {
		s.hydrateErr = s.hydrate(ctx)
	})
	return s.hydrateErr
}

func (s *Store) hydrate(ctx context.Context) error {
	token, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session token: %w", err)
	}
	if token == "" {
		return nil
	}

	user, err := s.provider.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			if clearErr := s.storage.Clear(ctx); clearErr != nil {
				s.logger.Warn().Err(clearErr).Msg("failed to clear stale session token")
			}
			s.dispatch(HydrationFailed{})
			return nil
		}
		return fmt.Errorf("failed to verify session token: %w", err)
	}

	s.dispatch(LoginSucceeded{User: user, Token: token})
	return nil
}
