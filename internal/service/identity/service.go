// Package identity is the stand-in identity provider: login by email, registration
// and bearer token verification over an injected user repository.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/repository"
	"github.com/jwalitptl/patio-health/pkg/auth"
	"github.com/jwalitptl/patio-health/pkg/metrics"
	"github.com/jwalitptl/patio-health/pkg/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Provider is the three-operation identity contract the session store depends on.
// A real network client can replace Service without touching the session package.
type Provider interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, string, error)
	Verify(ctx context.Context, token string) (*model.User, error)
}

// Latency holds the simulated round trip per operation
type Latency struct {
	Login    time.Duration
	Register time.Duration
	Verify   time.Duration
}

type Service struct {
	users   repository.UserRepository
	codec   auth.TokenCodec
	hasher  security.PasswordHasher
	latency Latency
	newID   func() (string, error)
	now     func() time.Time
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

var _ Provider = (*Service)(nil)

type Option func(*Service)

func WithLatency(l Latency) Option {
	return func(s *Service) {
		s.latency = l
	}
}

// WithHasher hashes registration passwords onto the record. Login never compares them.
func WithHasher(h security.PasswordHasher) Option {
	return func(s *Service) {
		s.hasher = h
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithIDGenerator overrides how registration ids are minted
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(users repository.UserRepository, codec auth.TokenCodec, opts ...Option) *Service {
	s := &Service{
		users:  users,
		codec:  codec,
		newID:  timeOrderedID,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timeOrderedID mints a UUIDv7, which is derived from the current time
func timeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Login finds the identity by email. The password is accepted but not checked.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	start := s.now()
	if err := s.wait(ctx, s.latency.Login); err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.observe("login", "not_found", start)
			return nil, "", ErrInvalidCredentials
		}
		s.observe("login", "error", start)
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		s.observe("login", "error", start)
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.observe("login", "ok", start)
	s.logger.Debug().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("identity login")
	return user, token, nil
}

// Register always creates a new record. Duplicate emails produce distinct users.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, string, error) {
	start := s.now()
	if err := s.wait(ctx, s.latency.Register); err != nil {
		return nil, "", err
	}

	id, err := s.newID()
	if err != nil {
		s.observe("register", "error", start)
		return nil, "", fmt.Errorf("failed to generate user id: %w", err)
	}

	created := s.now()
	user := &model.User{
		ID:             id,
		Email:          req.Email,
		Name:           req.Name,
		Role:           req.Role,
		Specialization: req.Specialization,
		Department:     req.Department,
		Phone:          req.Phone,
		DateOfBirth:    req.DateOfBirth,
		Address:        req.Address,
		CreatedAt:      &created,
	}

	if s.hasher != nil && req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			s.observe("register", "error", start)
			return nil, "", fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Insert(ctx, user); err != nil {
		s.observe("register", "error", start)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		s.observe("register", "error", start)
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.observe("register", "ok", start)
	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("identity registered")
	return user.Clone(), token, nil
}

// Verify decodes the token into a user id and looks the id up
func (s *Service) Verify(ctx context.Context, token string) (*model.User, error) {
	start := s.now()
	if err := s.wait(ctx, s.latency.Verify); err != nil {
		return nil, err
	}

	id, err := s.codec.Parse(token)
	if err != nil {
		s.observe("verify", "invalid", start)
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.observe("verify", "not_found", start)
			return nil, ErrInvalidToken
		}
		s.observe("verify", "error", start)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	s.observe("verify", "ok", start)
	return user, nil
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) observe(op, status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.IdentityOperations.WithLabelValues(op, status).Inc()
	s.metrics.IdentityLatency.WithLabelValues(op).Observe(s.now().Sub(start).Seconds())
}
