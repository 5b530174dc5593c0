package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
	"github.com/jhoicas/Muestras-api/internal/infrastructure/memory"
	"github.com/jhoicas/Muestras-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Muestras-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Muestras-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Muestras-api/internal/interfaces/http"
	"github.com/jhoicas/Muestras-api/pkg/config"
	"github.com/jhoicas/Muestras-api/pkg/jwt"
	"github.com/jhoicas/Muestras-api/pkg/logger"
)

// stores persistencia elegida por STORE_DRIVER.
type stores struct {
	tx        inventory.TxRunner
	samples   repository.SampleRepository
	movements repository.MovementRepository
	transfers repository.TransferRepository
	close     func()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer st.close()

	var recorder *metrics.Recorder
	opts := []inventory.Option{
		inventory.WithLogger(log),
		inventory.WithCodeRetries(cfg.Inventory.CodeRetryAttempts),
		inventory.WithTransferPrefix(cfg.Inventory.TransferCodePrefix),
		// PDF: kardex imprimible con QR del código de la muestra
		inventory.WithPDFGenerator(infrapdf.NewKardexPDFGenerator(cfg.App.Name)),
	}
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder(cfg.Metrics.Namespace)
		opts = append(opts, inventory.WithMetrics(recorder))
	}

	ledgerUC := inventory.NewLedgerUseCase(st.tx, st.samples, st.movements, opts...)
	transferUC := inventory.NewTransferUseCase(st.tx, st.transfers, st.samples, opts...)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Muestras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledgerUC,
		Transfers: transferUC,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
		Metrics:   recorder,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DB.Driver == config.StoreDriverMemory {
		store := memory.NewStore()
		demo := memory.SeedDemo(store)
		log.Warn().
			Str("pais_co", demo.CountryCO).
			Str("pais_pe", demo.CountryPE).
			Str("bodega_co", demo.WarehouseCO).
			Str("ubicacion_co", demo.LocationCO).
			Str("responsable", demo.Responsible).
			Msg("almacén en memoria con datos de demostración; los datos se pierden al reiniciar")
		if cfg.App.Env == "development" {
			if tok, err := jwt.Generate(cfg.JWT.Secret, "demo-admin", entity.RoleAdmin, nil, cfg.JWT.Issuer, cfg.JWT.Expiration); err == nil {
				log.Info().Str("token", tok).Msg("token ADMIN de demostración")
			}
		}
		return &stores{
			tx:        store,
			samples:   store.Samples(),
			movements: store.Movements(),
			transfers: store.Transfers(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		tx:        postgres.NewTxRunner(pool),
		samples:   postgres.NewSampleRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		transfers: postgres.NewTransferRepository(pool),
		close:     pool.Close,
	}, nil
}
