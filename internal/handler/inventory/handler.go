package inventory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/middleware"
	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/service/inventory"
	apperrors "github.com/medhq/hms-api/pkg/errors"
	"github.com/medhq/hms-api/pkg/httputil"
	"github.com/medhq/hms-api/pkg/validation"
)

type Handler struct {
	service *inventory.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *inventory.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/inventory")
	{
		items.GET("", h.ListItems)
		items.GET("/low-stock", h.ListLowStock)
		items.GET("/category/:category", h.ListByCategory)
		items.GET("/:id", h.GetItem)

		// Stock mutations are restricted to roles that manage supplies.
		manage := h.auth.RequireRole(model.UserRoleAdmin, model.UserRoleInventoryManager)
		items.POST("", manage, h.CreateItem)
		items.PUT("/:id", manage, h.UpdateItem)
		items.DELETE("/:id", manage, h.DeleteItem)
	}
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListLowStock(c *gin.Context) {
	items, err := h.service.ListLowStock(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListByCategory(c *gin.Context) {
	items, err := h.service.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.Validation("invalid item ID"))
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req model.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondFieldErrors(c, validation.Format(err))
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.Validation("invalid item ID"))
		return
	}

	var req model.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondFieldErrors(c, validation.Format(err))
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.Validation("invalid item ID"))
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondDeleted(c, "Inventory item")
}
