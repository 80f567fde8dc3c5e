package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/application/usecase"
)

// ChangeLogHandler consulta de auditoría del tenant.
type ChangeLogHandler struct {
	uc *usecase.ChangeLogUseCase
}

// NewChangeLogHandler construye el handler.
func NewChangeLogHandler(uc *usecase.ChangeLogUseCase) *ChangeLogHandler {
	return &ChangeLogHandler{uc: uc}
}

// List godoc
// @Summary      Change log
// @Tags         changelog
// @Produce      json
// @Security     BearerAuth
// @Param        entity     query  string  false  "Customer, User, Document, Task, CustomerRelationship"
// @Param        entity_id  query  int     false  "ID de la entidad"
// @Param        limit      query  int     false  "límite (default 20)"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ChangeLogListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/changelog [get]
func (h *ChangeLogHandler) List(c *fiber.Ctx) error {
	entityID, err := queryInt64(c, "entity_id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), dto.ChangeLogFilter{
		PageRequest: pageFromQuery(c),
		EntityName:  c.Query("entity"),
		EntityID:    entityID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
