package middleware

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/pkg/httputil"
	pkgvalidator "github.com/jwalitptl/patio-health/pkg/validator"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validationMessages = map[string]string{
	"required": "Field is required",
	"email":    "Invalid email format",
	"min":      "Value is too short",
	"role":     "Unknown role",
}

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags. Safe to call repeatedly.
func RegisterValidators() {
	registerOnce.Do(func() {
		pkgvalidator.UseJSONFieldNames()
		if err := pkgvalidator.RegisterEnum("role", func(s string) bool {
			return model.Role(s).HasWorkspace()
		}); err != nil {
			panic(err)
		}
	})
}

// Validation turns binding errors attached with c.Error into a 400 listing each field
func Validation() gin.HandlerFunc {
	RegisterValidators()

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		var fields []ValidationError
		for _, e := range c.Errors {
			var verrs validator.ValidationErrors
			if !errors.As(e.Err, &verrs) {
				continue
			}
			for _, fe := range verrs {
				msg := validationMessages[fe.Tag()]
				if msg == "" {
					msg = fe.Error()
				}
				fields = append(fields, ValidationError{Field: fe.Field(), Message: msg})
			}
		}

		if len(fields) > 0 {
			resp := httputil.NewErrorResponse("validation failed")
			resp.Errors = fields
			c.AbortWithStatusJSON(http.StatusBadRequest, resp)
		}
	}
}
