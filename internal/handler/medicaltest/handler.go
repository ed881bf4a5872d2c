package medicaltest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hims-api/internal/handler"
	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/service/medicaltest"
)

type Handler struct {
	service medicaltest.MedicalTestService
}

func NewHandler(service medicaltest.MedicalTestService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the medical test routes; write guards every mutation.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, write gin.HandlerFunc) {
	tests := r.Group("/medical-tests")
	{
		tests.GET("", h.ListMedicalTests)
		tests.GET("/export", h.ExportMedicalTests)
		tests.GET("/:id", h.GetMedicalTest)

		tests.POST("", write, h.CreateMedicalTest)
		tests.PUT("/:id", write, h.UpdateMedicalTest)
		tests.POST("/:id/deletion", write, h.PrepareDeletion)
		tests.DELETE("/:id", write, h.DeleteMedicalTest)
	}

	r.GET("/patients/:id/medical-tests", h.ListPatientMedicalTests)
}

func (h *Handler) CreateMedicalTest(c *gin.Context) {
	var req model.CreateMedicalTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, handler.BindingError(err))
		return
	}

	test, err := h.service.CreateMedicalTest(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(test))
}

func (h *Handler) GetMedicalTest(c *gin.Context) {
	test, err := h.service.GetMedicalTest(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondRecord(c, test)
}

func (h *Handler) UpdateMedicalTest(c *gin.Context) {
	var req model.UpdateMedicalTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, handler.BindingError(err))
		return
	}

	test, err := h.service.UpdateMedicalTest(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(test))
}

func (h *Handler) PrepareDeletion(c *gin.Context) {
	ticket, err := h.service.PrepareDeletion(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(ticket))
}

func (h *Handler) DeleteMedicalTest(c *gin.Context) {
	if err := h.service.DeleteMedicalTest(c.Request.Context(), c.Param("id"), handler.ConfirmToken(c)); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "Medical test deleted successfully"}))
}

func (h *Handler) ListMedicalTests(c *gin.Context) {
	tests, err := h.service.ListMedicalTests(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondView(c, tests)
}

func (h *Handler) ExportMedicalTests(c *gin.Context) {
	tests, err := h.service.ListMedicalTests(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCSV(c, "medical-tests", model.MedicalTest{}.Fields(), tests)
}

func (h *Handler) ListPatientMedicalTests(c *gin.Context) {
	tests, err := h.service.ListPatientMedicalTests(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondView(c, tests)
}
