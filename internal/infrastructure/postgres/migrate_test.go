package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Documentos-api/internal/infrastructure/postgres"
)

func TestMigrationURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/docs?sslmode=disable", postgres.MigrationURL("postgres://u:p@db:5432/docs?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@db/docs", postgres.MigrationURL("postgresql://u:p@db/docs"))
	assert.Equal(t, "pgx5://ya/listo", postgres.MigrationURL("pgx5://ya/listo"))
}
