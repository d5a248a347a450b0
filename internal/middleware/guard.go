package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patio-health/internal/guard"
	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/service/session"
	apperrors "github.com/jwalitptl/patio-health/pkg/errors"
	"github.com/jwalitptl/patio-health/pkg/httputil"
	"github.com/jwalitptl/patio-health/pkg/metrics"
)

// Guard applies guard decisions to routes. It must be mounted after Session.
type Guard struct {
	metrics *metrics.Metrics
}

func NewGuard(m *metrics.Metrics) *Guard {
	return &Guard{metrics: m}
}

func (g *Guard) decide(c *gin.Context, allowed []model.Role) guard.Decision {
	var state session.State = session.Anonymous{}
	if store, ok := LookupStore(c); ok {
		state = store.State()
	}

	d := guard.Decide(state, allowed)
	if g.metrics != nil {
		g.metrics.GuardDecisions.WithLabelValues(d.String()).Inc()
	}
	return d
}

// Page redirects with 302 to /login or /dashboard instead of rendering
func (g *Guard) Page(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d := g.decide(c, allowed); d != guard.Allow {
			c.Redirect(http.StatusFound, d.Location())
			c.Abort()
			return
		}
		c.Next()
	}
}

// API answers 401 or 403 instead of redirecting
func (g *Guard) API(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch g.decide(c, allowed) {
		case guard.RedirectLogin:
			httputil.RespondWithError(c, apperrors.Unauthorized("authentication required", nil))
		case guard.RedirectDashboard:
			httputil.RespondWithError(c, apperrors.Forbidden("insufficient role"))
		default:
			c.Next()
		}
	}
}
