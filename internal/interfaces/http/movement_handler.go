package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Muestras-api/internal/application/dto"
	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/pkg/logger"
)

// MovementHandler maneja las peticiones HTTP de movimientos del kardex (protegido).
type MovementHandler struct {
	uc  *inventory.LedgerUseCase
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.LedgerUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar movimiento
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "muestra_id, tipo_movimiento (ENTRADA|SALIDA), cantidad_movida, motivo"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse  "VALIDATION o INSUFFICIENT_STOCK"
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ApplyMovement(c.Context(), GetCaller(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Kardex general
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        muestra_id       query  string  false  "Muestra"
// @Param        tipo_movimiento  query  string  false  "ENTRADA | SALIDA"
// @Param        desde            query  string  false  "AAAA-MM-DD"
// @Param        hasta            query  string  false  "AAAA-MM-DD (inclusive)"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	q := dto.MovementListQuery{
		PageRequest: pageFromQuery(c),
		SampleID:    c.Query("muestra_id"),
		Type:        c.Query("tipo_movimiento"),
		From:        c.Query("desde"),
		To:          c.Query("hasta"),
	}
	out, err := h.uc.ListMovements(c.Context(), GetCaller(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento (ADMIN)
// @Description  Revierte la cantidad al valor anterior. Solo el último movimiento de la muestra y nunca uno de traslado.
// @Tags         movimientos
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteMovement(c.Context(), GetCaller(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "movimiento eliminado"})
}
