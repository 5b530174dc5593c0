package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Muestras-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *inventory.LedgerUseCase
	Transfers *inventory.TransferUseCase
	JWTSecret string
	Logger    *logger.Logger
	Metrics   *metrics.Recorder // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	if deps.Metrics != nil {
		app.Use(RequestMetrics(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Rutas protegidas (requieren Bearer Token con un rol conocido)
	api := app.Group("/api",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin, entity.RoleUser, entity.RoleCommercial),
	)
	adminOnly := RequireRole(entity.RoleAdmin)

	samples := api.Group("/muestras")
	sampleHandler := NewSampleHandler(deps.Ledger, log)
	samples.Post("/", sampleHandler.Register)
	samples.Get("/", sampleHandler.List)
	samples.Get("/:id", sampleHandler.Get)
	samples.Patch("/:id", sampleHandler.Update)
	samples.Get("/:id/kardex", sampleHandler.Kardex)
	samples.Get("/:id/kardex/pdf", sampleHandler.KardexPDF)

	movements := api.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.Ledger, log)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Delete("/:id", adminOnly, movementHandler.Delete)

	transfers := api.Group("/traslados")
	transferHandler := NewTransferHandler(deps.Transfers, log)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.Get)
	transfers.Put("/:id", transferHandler.Resolve)
	transfers.Put("/:id/cancelar", adminOnly, transferHandler.Cancel)
	transfers.Delete("/:id", adminOnly, transferHandler.Delete)
}
