package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-epp/internal/application/audit"
	"github.com/tu-usuario/bodega-epp/internal/application/dto"
)

// AuditHandler expone la bitácora para visualización (solo admin).
type AuditHandler struct {
	recorder *audit.Recorder
}

// NewAuditHandler construye el handler.
func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// List godoc
// @Summary      Listar la bitácora de acciones
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        pageNumber  query  int     false  "Página (>=1, default 1)"
// @Param        pageSize    query  int     false  "Tamaño de página (<=100, default 20)"
// @Param        searchTerm  query  string  false  "Búsqueda por acción o entidad"
// @Param        sortBy      query  string  false  "createdAt | action | entity"
// @Param        sortOrder   query  string  false  "asc | desc"
// @Success      200  {object}  query.Page[dto.AuditLogResponse]
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var in dto.ListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page, err := h.recorder.List(c.Context(), in.ToParams())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	out := make([]dto.AuditLogResponse, 0, len(page.Items))
	for _, l := range page.Items {
		out = append(out, dto.AuditLogResponse{
			ID:        l.ID,
			ActorID:   l.ActorID,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Detail:    l.Detail,
			CreatedAt: l.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{
		"items":       out,
		"total_count": page.TotalCount,
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total_pages": page.TotalPages,
	})
}
