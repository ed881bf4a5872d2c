package department

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hims-api/internal/handler"
	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/service/department"
)

type Handler struct {
	service department.DepartmentService
}

func NewHandler(service department.DepartmentService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the department routes; write guards every mutation.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, write gin.HandlerFunc) {
	departments := r.Group("/departments")
	{
		departments.GET("", h.ListDepartments)
		departments.GET("/export", h.ExportDepartments)
		departments.GET("/:id", h.GetDepartment)
		departments.GET("/:id/doctors", h.ListDepartmentDoctors)

		departments.POST("", write, h.CreateDepartment)
		departments.PUT("/:id", write, h.UpdateDepartment)
		departments.POST("/:id/deletion", write, h.PrepareDeletion)
		departments.DELETE("/:id", write, h.DeleteDepartment)
	}
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, handler.BindingError(err))
		return
	}

	dept, err := h.service.CreateDepartment(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(dept))
}

func (h *Handler) GetDepartment(c *gin.Context) {
	dept, err := h.service.GetDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondRecord(c, dept)
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	var req model.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, handler.BindingError(err))
		return
	}

	dept, err := h.service.UpdateDepartment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(dept))
}

func (h *Handler) PrepareDeletion(c *gin.Context) {
	ticket, err := h.service.PrepareDeletion(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(ticket))
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	if err := h.service.DeleteDepartment(c.Request.Context(), c.Param("id"), handler.ConfirmToken(c)); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "Department deleted successfully"}))
}

func (h *Handler) ListDepartments(c *gin.Context) {
	departments, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondView(c, departments)
}

func (h *Handler) ExportDepartments(c *gin.Context) {
	departments, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCSV(c, "departments", model.Department{}.Fields(), departments)
}

func (h *Handler) ListDepartmentDoctors(c *gin.Context) {
	doctors, err := h.service.ListDepartmentDoctors(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondTable(c, doctors)
}
