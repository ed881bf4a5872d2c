package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hims-api/internal/handler"
	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/service/prescription"
)

type Handler struct {
	service prescription.PrescriptionService
}

func NewHandler(service prescription.PrescriptionService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the prescription routes; write guards every mutation.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, write gin.HandlerFunc) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.GET("", h.ListPrescriptions)
		prescriptions.GET("/export", h.ExportPrescriptions)
		prescriptions.GET("/:id", h.GetPrescription)

		prescriptions.POST("", write, h.CreatePrescription)
		prescriptions.PUT("/:id", write, h.UpdatePrescription)
		prescriptions.POST("/:id/deletion", write, h.PrepareDeletion)
		prescriptions.DELETE("/:id", write, h.DeletePrescription)
	}

	r.GET("/patients/:id/prescriptions", h.ListPatientPrescriptions)
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, handler.BindingError(err))
		return
	}

	prescription, err := h.service.CreatePrescription(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(prescription))
}

func (h *Handler) GetPrescription(c *gin.Context) {
	prescription, err := h.service.GetPrescription(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondRecord(c, prescription)
}

func (h *Handler) UpdatePrescription(c *gin.Context) {
	var req model.UpdatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, handler.BindingError(err))
		return
	}

	prescription, err := h.service.UpdatePrescription(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescription))
}

func (h *Handler) PrepareDeletion(c *gin.Context) {
	ticket, err := h.service.PrepareDeletion(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(ticket))
}

func (h *Handler) DeletePrescription(c *gin.Context) {
	if err := h.service.DeletePrescription(c.Request.Context(), c.Param("id"), handler.ConfirmToken(c)); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "Prescription deleted successfully"}))
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	prescriptions, err := h.service.ListPrescriptions(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondView(c, prescriptions)
}

func (h *Handler) ExportPrescriptions(c *gin.Context) {
	prescriptions, err := h.service.ListPrescriptions(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCSV(c, "prescriptions", model.Prescription{}.Fields(), prescriptions)
}

func (h *Handler) ListPatientPrescriptions(c *gin.Context) {
	prescriptions, err := h.service.ListPatientPrescriptions(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondView(c, prescriptions)
}
