package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medhq/hms-api/pkg/errors"
)

// ErrorResponse is the wire shape for operational failures.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// FieldError describes a single input-validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrorResponse is the wire shape for input-validation failures.
type FieldErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// MessageResponse is the wire shape for delete confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondError maps an error to its HTTP status and the operational
// error body. Unknown errors are reported as a generic 500; the
// underlying detail stays in the logs.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		if appErr.Code == errors.ErrInternal {
			log.Error().Err(appErr.Err).Str("path", c.Request.URL.Path).Msg("internal error")
		}
		c.JSON(appErr.HTTPStatus(), ErrorResponse{Error: true, Message: appErr.Message})
		return
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: true, Message: "internal server error"})
}

// RespondFieldErrors sends the itemized field-error body.
func RespondFieldErrors(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, FieldErrorResponse{Errors: errs})
}

// RespondDeleted sends the deletion confirmation body.
func RespondDeleted(c *gin.Context, resource string) {
	c.JSON(http.StatusOK, MessageResponse{Message: resource + " deleted successfully"})
}
