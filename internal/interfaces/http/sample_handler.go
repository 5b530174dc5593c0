package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Muestras-api/internal/application/dto"
	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/pkg/logger"
)

// SampleHandler maneja muestras y su kardex (protegido).
type SampleHandler struct {
	uc  *inventory.LedgerUseCase
	log *logger.Logger
}

// NewSampleHandler construye el handler.
func NewSampleHandler(uc *inventory.LedgerUseCase, log *logger.Logger) *SampleHandler {
	return &SampleHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Registrar muestra
// @Description  Genera el código <país><DD><MM><YY><NNN> y registra la ENTRADA inicial en el kardex.
// @Tags         muestras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSampleRequest  true  "Datos de la muestra"
// @Success      201   {object}  dto.SampleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/muestras [post]
func (h *SampleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSampleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterSample(c.Context(), GetCaller(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar muestras
// @Tags         muestras
// @Security     Bearer
// @Produce      json
// @Param        pais_id    query  string  false  "País"
// @Param        bodega_id  query  string  false  "Bodega"
// @Param        q          query  string  false  "Busca en código, material o lote"
// @Param        limit      query  int     false  "Máximo 100"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.SampleResponse]
// @Router       /api/muestras [get]
func (h *SampleHandler) List(c *fiber.Ctx) error {
	q := dto.SampleListQuery{
		PageRequest: pageFromQuery(c),
		CountryID:   c.Query("pais_id"),
		WarehouseID: c.Query("bodega_id"),
		Search:      c.Query("q"),
	}
	out, err := h.uc.ListSamples(c.Context(), GetCaller(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener muestra
// @Tags         muestras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la muestra"
// @Success      200  {object}  dto.SampleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/muestras/{id} [get]
func (h *SampleHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSample(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar atributos de una muestra
// @Description  Solo los campos presentes. La cantidad cambia únicamente por movimientos.
// @Tags         muestras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la muestra"
// @Param        body  body  dto.UpdateSampleRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.SampleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/muestras/{id} [patch]
func (h *SampleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSampleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSample(c.Context(), GetCaller(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Kardex godoc
// @Summary      Kardex de una muestra
// @Description  Movimientos en orden de ledger y verificación de que reproducen la cantidad actual.
// @Tags         muestras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la muestra"
// @Success      200  {object}  dto.KardexResponse
// @Router       /api/muestras/{id}/kardex [get]
func (h *SampleHandler) Kardex(c *fiber.Ctx) error {
	out, err := h.uc.GetKardex(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// KardexPDF godoc
// @Summary      Kardex imprimible
// @Tags         muestras
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la muestra"
// @Success      200  {file}  binary
// @Router       /api/muestras/{id}/kardex/pdf [get]
func (h *SampleHandler) KardexPDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.KardexPDF(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(doc)))
	return c.Send(doc)
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
}
