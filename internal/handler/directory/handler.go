package directory

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patio-health/internal/middleware"
	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/service/directory"
	apperrors "github.com/jwalitptl/patio-health/pkg/errors"
	"github.com/jwalitptl/patio-health/pkg/httputil"
)

type Handler struct {
	service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the directory API. Every route needs a session, the user
// list needs an admin.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, g *middleware.Guard) {
	r.GET("/doctors", g.API(), h.ListDoctors)
	r.GET("/appointments", g.API(), h.ListAppointments)
	r.POST("/appointments", g.API(), h.BookAppointment)
	r.GET("/users", g.API(model.RoleAdmin), h.ListUsers)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.Doctors(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, doctors)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	caller := middleware.CurrentStore(c).User()

	appointments, err := h.service.Appointments(c.Request.Context(), caller)
	if err != nil {
		_ = c.Error(apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("invalid appointment request", err))
		return
	}

	caller := middleware.CurrentStore(c).User()
	appointment, err := h.service.Book(c.Request.Context(), caller, &req)
	if err != nil {
		if errors.Is(err, directory.ErrUnknownDoctor) {
			_ = c.Error(apperrors.BadRequest("unknown doctor", err))
			return
		}
		_ = c.Error(apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, appointment)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.Users(c.Request.Context())
	if err != nil {
		_ = c.Error(apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, users)
}
