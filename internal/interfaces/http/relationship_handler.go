package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/advisor-crm/internal/application/dto"
	"github.com/jhoicas/advisor-crm/internal/application/usecase"
)

// RelationshipHandler relaciones entre clientes.
type RelationshipHandler struct {
	uc *usecase.RelationshipUseCase
}

// NewRelationshipHandler construye el handler.
func NewRelationshipHandler(uc *usecase.RelationshipUseCase) *RelationshipHandler {
	return &RelationshipHandler{uc: uc}
}

// Create godoc
// @Summary      Relacionar clientes
// @Description  Ambos clientes deben pertenecer al tenant de la petición.
// @Tags         relationships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int  true  "ID del cliente"
// @Param        body  body  dto.CreateRelationshipRequest  true  "cliente relacionado y tipo"
// @Success      201  {object}  dto.RelationshipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/relationships [post]
func (h *RelationshipHandler) Create(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateRelationshipRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), customerID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Relaciones de un cliente
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {array}   dto.RelationshipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/relationships [get]
func (h *RelationshipHandler) List(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListByCustomer(c.UserContext(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar relación
// @Tags         relationships
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la relación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/relationships/{id} [delete]
func (h *RelationshipHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
