package bed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/service/bed"
	apperrors "github.com/medhq/hms-api/pkg/errors"
	"github.com/medhq/hms-api/pkg/httputil"
	"github.com/medhq/hms-api/pkg/validation"
)

type Handler struct {
	service *bed.Service
}

func NewHandler(service *bed.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	beds := r.Group("/beds")
	{
		beds.GET("", h.ListBeds)
		beds.GET("/available", h.ListAvailableBeds)
		beds.GET("/ward/:ward", h.ListBedsByWard)
		beds.GET("/:id", h.GetBed)
		beds.POST("", h.CreateBed)
		beds.PUT("/:id", h.UpdateBed)
		beds.DELETE("/:id", h.DeleteBed)
	}
}

func (h *Handler) ListBeds(c *gin.Context) {
	beds, err := h.service.ListBeds(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, beds)
}

func (h *Handler) ListAvailableBeds(c *gin.Context) {
	beds, err := h.service.ListAvailableBeds(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, beds)
}

func (h *Handler) ListBedsByWard(c *gin.Context) {
	beds, err := h.service.ListBedsByWard(c.Request.Context(), c.Param("ward"))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, beds)
}

func (h *Handler) GetBed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.Validation("invalid bed ID"))
		return
	}

	b, err := h.service.GetBed(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) CreateBed(c *gin.Context) {
	var req model.CreateBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondFieldErrors(c, validation.Format(err))
		return
	}

	b, err := h.service.CreateBed(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) UpdateBed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.Validation("invalid bed ID"))
		return
	}

	var req model.UpdateBedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondFieldErrors(c, validation.Format(err))
		return
	}

	b, err := h.service.UpdateBed(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.Validation("invalid bed ID"))
		return
	}

	if err := h.service.DeleteBed(c.Request.Context(), id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondDeleted(c, "Bed")
}
