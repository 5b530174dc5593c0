package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Muestras-api/internal/application/dto"
	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/pkg/logger"
)

// TransferHandler maneja los traslados entre países (protegido).
type TransferHandler struct {
	uc  *inventory.TransferUseCase
	log *logger.Logger
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase, log *logger.Logger) *TransferHandler {
	return &TransferHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Enviar traslado
// @Description  Descuenta la cantidad del origen (SALIDA) y deja el traslado ENVIADO.
// @Tags         traslados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Traslado"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/traslados [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetCaller(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar traslados
// @Tags         traslados
// @Security     Bearer
// @Produce      json
// @Param        estado             query  string  false  "ENVIADO | COMPLETADO | RECHAZADO"
// @Param        muestra_origen_id  query  string  false  "Muestra de origen"
// @Success      200  {object}  dto.ListResponse[dto.TransferResponse]
// @Router       /api/traslados [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	q := dto.TransferListQuery{
		PageRequest:    pageFromQuery(c),
		State:          c.Query("estado"),
		OriginSampleID: c.Query("muestra_origen_id"),
	}
	out, err := h.uc.List(c.Context(), GetCaller(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener traslado
// @Tags         traslados
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Router       /api/traslados/{id} [get]
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Completar o rechazar traslado
// @Description  COMPLETADO crea la muestra destino; RECHAZADO devuelve la cantidad al origen.
// @Tags         traslados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del traslado"
// @Param        body  body  dto.ResolveTransferRequest  true  "estado y datos de destino"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/traslados/{id} [put]
func (h *TransferHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Resolve(c.Context(), GetCaller(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar traslado ENVIADO (ADMIN)
// @Tags         traslados
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Router       /api/traslados/{id}/cancelar [put]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar traslado terminal (ADMIN)
// @Tags         traslados
// @Security     Bearer
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/traslados/{id} [delete]
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCaller(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "traslado eliminado"})
}
