package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patio-health/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondWithSuccess sends a success envelope with the given status
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, NewSuccessResponse(data))
}

// RespondWithError sends an error envelope. AppErrors keep their status and
// message; anything else becomes a generic 500.
func RespondWithError(c *gin.Context, err error) {
	status := errors.StatusOf(err)
	message := "internal server error"
	if status != http.StatusInternalServerError {
		message = errors.MessageOf(err)
	}

	resp := NewErrorResponse(message)
	resp.TraceID = c.GetString("request_id")
	c.AbortWithStatusJSON(status, resp)
}
