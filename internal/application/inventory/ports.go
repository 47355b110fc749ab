package inventory

import (
	"context"

	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		warehouseRepo repository.WarehouseRepository,
	) error) error
}
