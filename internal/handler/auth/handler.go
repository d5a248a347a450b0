package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patio-health/internal/guard"
	"github.com/jwalitptl/patio-health/internal/middleware"
	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/service/identity"
	apperrors "github.com/jwalitptl/patio-health/pkg/errors"
	"github.com/jwalitptl/patio-health/pkg/httputil"
)

// SessionResponse is the session snapshot plus where the client should go next
type SessionResponse struct {
	model.AuthState
	Redirect string `json:"redirect,omitempty"`
}

// Handler exposes the session operations. Every route runs behind the session
// middleware passed to RegisterRoutes.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts the /auth routes. limit runs before session on login and
// register so a throttled client never reaches the identity service.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, limit, session gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", limit, session, h.Login)
		auth.POST("/register", limit, session, h.Register)
		auth.POST("/logout", session, h.Logout)
		auth.GET("/session", session, h.Session)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("invalid login request", err))
		return
	}

	store := middleware.CurrentStore(c)
	if _, err := store.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			_ = c.Error(apperrors.Unauthorized("invalid credentials", err))
			return
		}
		_ = c.Error(apperrors.Internal(err))
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, SessionResponse{
		AuthState: store.Snapshot(),
		Redirect:  guard.DashboardPath,
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("invalid registration request", err))
		return
	}

	store := middleware.CurrentStore(c)
	if _, err := store.Register(c.Request.Context(), &req); err != nil {
		_ = c.Error(apperrors.Internal(err))
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, SessionResponse{
		AuthState: store.Snapshot(),
		Redirect:  guard.DashboardPath,
	})
}

// Logout always succeeds, whatever the current state
func (h *Handler) Logout(c *gin.Context) {
	store := middleware.CurrentStore(c)
	store.Logout(c.Request.Context())

	httputil.RespondWithSuccess(c, http.StatusOK, SessionResponse{
		AuthState: store.Snapshot(),
		Redirect:  "/",
	})
}

func (h *Handler) Session(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, SessionResponse{
		AuthState: middleware.CurrentStore(c).Snapshot(),
	})
}
