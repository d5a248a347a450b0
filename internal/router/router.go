package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	authhandler "github.com/jwalitptl/patio-health/internal/handler/auth"
	directoryhandler "github.com/jwalitptl/patio-health/internal/handler/directory"
	"github.com/jwalitptl/patio-health/internal/handler/health"
	"github.com/jwalitptl/patio-health/internal/handler/page"
	"github.com/jwalitptl/patio-health/internal/middleware"
	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/service/directory"
	"github.com/jwalitptl/patio-health/internal/service/identity"
	"github.com/jwalitptl/patio-health/pkg/metrics"
)

type Config struct {
	Provider  identity.Provider
	Storage   middleware.StorageFactory
	Directory *directory.Service

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Checks   map[string]health.Checker
	Logger   zerolog.Logger

	RateLimit      rate.Limit
	RateBurst      int
	AllowedOrigins []string
	RequestTimeout time.Duration
	HSTS           bool
}

type Router struct {
	engine *gin.Engine
	cfg    Config

	guard      *middleware.Guard
	session    gin.HandlerFunc
	pageH      *page.Handler
	authH      *authhandler.Handler
	directoryH *directoryhandler.Handler
	healthH    *health.Handler
}

func NewRouter(cfg Config) *Router {
	engine := gin.New()

	r := &Router{
		engine: engine,
		cfg:    cfg,
		guard:  middleware.NewGuard(cfg.Metrics),
		session: middleware.Session(middleware.SessionConfig{
			Provider: cfg.Provider,
			Storage:  cfg.Storage,
			Metrics:  cfg.Metrics,
			Logger:   cfg.Logger.With().Str("component", "session").Logger(),
		}),
		pageH:      page.NewHandler(),
		authH:      authhandler.NewHandler(),
		directoryH: directoryhandler.NewHandler(cfg.Directory),
		healthH:    health.NewHandler(cfg.Gatherer, cfg.Checks),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(cfg.Logger),
		middleware.Logger(cfg.Logger),
	)
	if cfg.Metrics != nil {
		engine.Use(middleware.Metrics(cfg.Metrics))
	}
	engine.Use(
		middleware.SecurityHeaders(cfg.HSTS),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Timeout(cfg.RequestTimeout),
		middleware.ErrorHandler(cfg.Logger),
		middleware.Validation(),
	)

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)

	sessionAPI := api.Group("", middleware.NoStore(), middleware.BodyLimit(middleware.DefaultMaxBodySize))
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  r.cfg.RateLimit,
		Burst: r.cfg.RateBurst,
	})
	// throttled requests are rejected before the session is hydrated
	r.authH.RegisterRoutes(sessionAPI, limiter.RateLimit(), r.session)
	r.directoryH.RegisterRoutes(sessionAPI.Group("", r.session), r.guard)

	r.setupPages()
	r.engine.NoRoute(r.pageH.NotFound)
}

func (r *Router) setupPages() {
	pages := r.engine.Group("/", r.session, middleware.NoStore())

	pages.GET("/", r.pageH.Landing)
	pages.GET("/index", r.pageH.Index)
	pages.GET("/login", r.pageH.Login)
	pages.GET("/register", r.pageH.Register)

	protected := pages.Group("", r.guard.Page())
	{
		protected.GET("/dashboard", r.pageH.Dashboard)
		protected.GET("/profile", r.pageH.Profile)
		protected.GET("/settings", r.pageH.Settings)
	}

	pages.GET("/admin", r.guard.Page(model.RoleAdmin), r.pageH.Workspace)
	pages.GET("/doctor", r.guard.Page(model.RoleDoctor), r.pageH.Workspace)
	pages.GET("/patient", r.guard.Page(model.RolePatient), r.pageH.Workspace)
	pages.GET("/receptionist", r.guard.Page(model.RoleReceptionist), r.pageH.Workspace)
	pages.GET("/lab", r.guard.Page(model.RoleLabTechnician), r.pageH.Workspace)

	nurse := pages.Group("/nurse", r.guard.Page(model.RoleNurse))
	{
		nurse.GET("", r.pageH.Workspace)
		nurse.GET("/patients", r.pageH.NursePatients)
		nurse.GET("/vitals", r.pageH.NurseVitals)
		nurse.GET("/medications", r.pageH.NurseMedications)
		nurse.GET("/notes", r.pageH.NurseNotes)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
