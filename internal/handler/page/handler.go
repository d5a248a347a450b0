// Package page renders the portal's navigation surface as view descriptors.
package page

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patio-health/internal/dashboard"
	"github.com/jwalitptl/patio-health/internal/middleware"
	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/pkg/httputil"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func render(c *gin.Context, status int, v dashboard.View) {
	httputil.RespondWithSuccess(c, status, v)
}

func currentUser(c *gin.Context) *model.User {
	if store, ok := middleware.LookupStore(c); ok {
		return store.User()
	}
	return nil
}

func (h *Handler) Landing(c *gin.Context) {
	render(c, http.StatusOK, dashboard.Landing())
}

func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, "/")
}

func (h *Handler) Login(c *gin.Context) {
	render(c, http.StatusOK, dashboard.Login())
}

func (h *Handler) Register(c *gin.Context) {
	render(c, http.StatusOK, dashboard.Register())
}

// Dashboard renders whatever view the user's role resolves to
func (h *Handler) Dashboard(c *gin.Context) {
	render(c, http.StatusOK, dashboard.Resolve(currentUser(c)))
}

// Workspace serves a role's dedicated route. The guard has already checked the role.
func (h *Handler) Workspace(c *gin.Context) {
	render(c, http.StatusOK, dashboard.Resolve(currentUser(c)))
}

func (h *Handler) Profile(c *gin.Context) {
	render(c, http.StatusOK, dashboard.Profile(currentUser(c)))
}

func (h *Handler) Settings(c *gin.Context) {
	render(c, http.StatusOK, dashboard.Settings(currentUser(c)))
}

func (h *Handler) NursePatients(c *gin.Context) {
	render(c, http.StatusOK, dashboard.NursePatients(currentUser(c)))
}

func (h *Handler) NurseVitals(c *gin.Context) {
	render(c, http.StatusOK, dashboard.NurseVitals(currentUser(c)))
}

func (h *Handler) NurseMedications(c *gin.Context) {
	render(c, http.StatusOK, dashboard.NurseMedications(currentUser(c)))
}

func (h *Handler) NurseNotes(c *gin.Context) {
	render(c, http.StatusOK, dashboard.NurseNotes(currentUser(c)))
}

func (h *Handler) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, dashboard.NotFound(c.Request.URL.Path))
}
