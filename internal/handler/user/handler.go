package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medhq/hms-api/internal/middleware"
	"github.com/medhq/hms-api/internal/service/user"
	"github.com/medhq/hms-api/pkg/httputil"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("/me", h.Me)
		users.GET("/doctors", h.ListDoctors)
	}
}

// Me echoes the caller's resolved profile, useful for clients that
// need the locally assigned role.
func (h *Handler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
			Error:   true,
			Message: "not authenticated",
		})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}
