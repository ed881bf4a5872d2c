package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hims-api/internal/handler"
	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/repository"
	apperrors "github.com/jwalitptl/hims-api/pkg/errors"
)

var entities = map[string]bool{
	model.EntityDepartment:   true,
	model.EntityDoctor:       true,
	model.EntityPatient:      true,
	model.EntityPrescription: true,
	model.EntityMedicalTest:  true,
}

// Handler serves the write history of a record.
type Handler struct {
	repo repository.AuditRepository
}

func NewHandler(repo repository.AuditRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit/:entity/:id", h.GetEntityLogs)
}

// GetEntityLogs lists the audit entries of one record, oldest first. Entries
// outlive deleted records.
func (h *Handler) GetEntityLogs(c *gin.Context) {
	entity := c.Param("entity")
	if !entities[entity] {
		handler.RespondError(c, apperrors.BadRequest("unknown entity type", nil))
		return
	}

	logs, err := h.repo.ListByEntity(c.Request.Context(), entity, c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	if logs == nil {
		logs = []*model.AuditLog{}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(logs))
}
