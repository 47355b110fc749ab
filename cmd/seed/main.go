// seed carga el catálogo de productos desde un CSV y crea el usuario administrador inicial.
//
// Uso: go run ./cmd/seed -file productos.csv [-encoding auto|utf8|latin1] [-sep ";"]
// El administrador se crea si ADMIN_EMAIL y ADMIN_PASSWORD están definidos; si ya existe se omite.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/jhoicas/Documentos-api/internal/application/auth"
	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/application/usecase"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/rbac"
	"github.com/jhoicas/Documentos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Documentos-api/pkg/config"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

func main() {
	file := flag.String("file", "", "CSV del catálogo (code;name;unit_price;tax_rate;unit_measure;description)")
	encoding := flag.String("encoding", EncodingAuto, "codificación del CSV: auto, utf8, latin1")
	sep := flag.String("sep", ";", "separador de columnas")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := seedAdmin(ctx, cfg, pool, log); err != nil {
		log.Fatal().Err(err).Msg("usuario administrador")
	}

	if *file == "" {
		log.Info().Msg("sin -file: no se carga catálogo")
		return
	}
	r, size := utf8.DecodeRuneInString(*sep)
	if r == utf8.RuneError || size != len(*sep) {
		log.Fatal().Str("sep", *sep).Msg("el separador debe ser un solo carácter")
	}
	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	products, err := readCatalog(f, *encoding, r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	var created, skipped int
	for _, p := range products {
		if _, err := productUC.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			log.Fatal().Err(err).Str("code", p.Code).Msg("crear producto")
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Str("file", *file).Msg("catálogo cargado")
}

func seedAdmin(ctx context.Context, cfg *config.Config, pool postgres.Querier, log *logger.Logger) error {
	email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}
	perms, err := postgres.NewRolePermissionRepository(pool).LoadAll(ctx)
	if err != nil {
		return err
	}
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), rbac.NewEvaluator(perms), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	_, err = authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
		IsAdmin:  true,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		log.Info().Str("email", email).Msg("administrador ya existe")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("administrador creado")
	return nil
}
