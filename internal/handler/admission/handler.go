package admission

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/service/admission"
	apperrors "github.com/medhq/hms-api/pkg/errors"
	"github.com/medhq/hms-api/pkg/httputil"
	"github.com/medhq/hms-api/pkg/validation"
)

type Handler struct {
	service *admission.Service
}

func NewHandler(service *admission.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admissions := r.Group("/admissions")
	{
		admissions.GET("", h.ListAdmissions)
		admissions.GET("/active", h.ListActiveAdmissions)
		admissions.GET("/:id", h.GetAdmission)
		admissions.POST("", h.CreateAdmission)
		admissions.PUT("/:id", h.UpdateAdmission)
		admissions.DELETE("/:id", h.DeleteAdmission)
	}
}

func (h *Handler) ListAdmissions(c *gin.Context) {
	admissions, err := h.service.ListAdmissions(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admissions)
}

func (h *Handler) ListActiveAdmissions(c *gin.Context) {
	admissions, err := h.service.ListActiveAdmissions(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admissions)
}

func (h *Handler) GetAdmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.Validation("invalid admission ID"))
		return
	}

	a, err := h.service.GetAdmission(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) CreateAdmission(c *gin.Context) {
	var req model.CreateAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondFieldErrors(c, validation.Format(err))
		return
	}

	a, err := h.service.Admit(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateAdmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.Validation("invalid admission ID"))
		return
	}

	var req model.UpdateAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondFieldErrors(c, validation.Format(err))
		return
	}

	a, err := h.service.UpdateAdmission(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAdmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, apperrors.Validation("invalid admission ID"))
		return
	}

	if err := h.service.DeleteAdmission(c.Request.Context(), id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	httputil.RespondDeleted(c, "Admission")
}
