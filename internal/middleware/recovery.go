package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medhq/hms-api/pkg/httputil"
)

// Recovery converts panics into a 500 with the operational error
// body, without crashing the process.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Str("request_id", c.GetString(requestIDKey)).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.ErrorResponse{
					Error:   true,
					Message: "internal server error",
				})
			}
		}()
		c.Next()
	}
}
