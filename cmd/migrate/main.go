// migrate aplica las migraciones SQL embebidas y termina.
//
// Uso: go run ./cmd/migrate
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Documentos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Documentos-api/pkg/config"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	st, err := postgres.Migrate(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if st.Dirty {
		log.Fatal().Uint("version", st.Version).Msg("base en estado dirty: revisar la última migración")
	}
	log.Info().Uint("version", st.Version).Bool("changed", st.Changed).Msg("migraciones al día")
}
