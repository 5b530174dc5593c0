// Command migrate aplica las migraciones SQL embebidas con goose.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate status
//	go run ./cmd/migrate down
package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/Muestras-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/Muestras-api/pkg/config"
	"github.com/jhoicas/Muestras-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir conexión")
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("dialecto goose")
	}

	if err := goose.RunContext(context.Background(), command, db, ".", os.Args[min(2, len(os.Args)):]...); err != nil {
		log.Fatal().Err(err).Str("comando", command).Msg("migración")
	}
	log.Info().Str("comando", command).Msg("migraciones aplicadas")
}
