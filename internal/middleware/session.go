package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/patio-health/internal/service/identity"
	"github.com/jwalitptl/patio-health/internal/service/session"
	"github.com/jwalitptl/patio-health/internal/storage"
	"github.com/jwalitptl/patio-health/pkg/metrics"
)

const (
	ContextSessionStore = "session_store"

	// CookieToken holds the bearer token itself in cookie mode
	CookieToken = session.StorageKey
	// CookieClientID identifies the browser when tokens live in a backend
	CookieClientID = "hospital_sid"
)

type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

func (cfg CookieConfig) set(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", cfg.Secure, true)
}

// StorageFactory builds the token storage for one request
type StorageFactory func(c *gin.Context) session.TokenStorage

// CookieTokenStorage keeps the token in the hospital_token cookie
func CookieTokenStorage(cfg CookieConfig) StorageFactory {
	return func(c *gin.Context) session.TokenStorage {
		return &cookieStorage{c: c, cfg: cfg}
	}
}

type cookieStorage struct {
	c   *gin.Context
	cfg CookieConfig
}

func (s *cookieStorage) Load(ctx context.Context) (string, error) {
	token, err := s.c.Cookie(CookieToken)
	if err != nil {
		return "", nil
	}
	return token, nil
}

func (s *cookieStorage) Save(ctx context.Context, token string) error {
	s.cfg.set(s.c, CookieToken, token, int(s.cfg.MaxAge.Seconds()))
	return nil
}

func (s *cookieStorage) Clear(ctx context.Context) error {
	s.cfg.set(s.c, CookieToken, "", -1)
	return nil
}

// BackendTokenStorage keeps the token in a key-value backend under the browser's
// client id. The id cookie is issued on first save and outlives logout.
func BackendTokenStorage(backend storage.Backend, cfg CookieConfig) StorageFactory {
	return func(c *gin.Context) session.TokenStorage {
		return &clientStorage{c: c, backend: backend, cfg: cfg}
	}
}

type clientStorage struct {
	c       *gin.Context
	backend storage.Backend
	cfg     CookieConfig
}

func (s *clientStorage) clientID() (string, bool) {
	sid, err := s.c.Cookie(CookieClientID)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(sid); err != nil {
		return "", false
	}
	return sid, true
}

func (s *clientStorage) Load(ctx context.Context) (string, error) {
	sid, ok := s.clientID()
	if !ok {
		return "", nil
	}
	return storage.Keyed(s.backend, sid, s.cfg.MaxAge).Load(ctx)
}

func (s *clientStorage) Save(ctx context.Context, token string) error {
	sid, ok := s.clientID()
	if !ok {
		sid = uuid.NewString()
		s.cfg.set(s.c, CookieClientID, sid, 0)
	}
	return storage.Keyed(s.backend, sid, s.cfg.MaxAge).Save(ctx, token)
}

func (s *clientStorage) Clear(ctx context.Context) error {
	sid, ok := s.clientID()
	if !ok {
		return nil
	}
	return storage.Keyed(s.backend, sid, s.cfg.MaxAge).Clear(ctx)
}

// headerStorage serves a token presented in the Authorization header. Clients that
// send a bearer token manage it themselves, so writes are dropped.
type headerStorage struct {
	token string
}

func (s headerStorage) Load(ctx context.Context) (string, error)     { return s.token, nil }
func (s headerStorage) Save(ctx context.Context, token string) error { return nil }
func (s headerStorage) Clear(ctx context.Context) error              { return nil }

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

type SessionConfig struct {
	Provider identity.Provider
	Storage  StorageFactory
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
}

// Session starts a session store for the request and hydrates it before the
// handlers run. Every page load restores the session from storage this way.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ts session.TokenStorage
		if token, ok := bearerToken(c); ok {
			ts = headerStorage{token: token}
		} else {
			ts = cfg.Storage(c)
		}

		logger := cfg.Logger.With().Str("request_id", c.GetString(ContextRequestID)).Logger()
		opts := []session.Option{session.WithLogger(logger)}
		if cfg.Metrics != nil {
			m := cfg.Metrics
			opts = append(opts, session.WithObserver(func(from, to session.State, e session.Event) {
				m.SessionTransitions.WithLabelValues(e.Name(), to.Name()).Inc()
			}))
		}

		store := session.NewStore(cfg.Provider, ts, opts...)
		if err := store.Hydrate(c.Request.Context()); err != nil {
			logger.Warn().Err(err).Msg("session hydration failed")
		}

		c.Set(ContextSessionStore, store)
		c.Next()
	}
}

func LookupStore(c *gin.Context) (*session.Store, bool) {
	v, ok := c.Get(ContextSessionStore)
	if !ok {
		return nil, false
	}
	store, ok := v.(*session.Store)
	return store, ok
}

// CurrentStore returns the request's session store. Handlers mounted behind
// Session can rely on it being present.
func CurrentStore(c *gin.Context) *session.Store {
	store, _ := LookupStore(c)
	return store
}
