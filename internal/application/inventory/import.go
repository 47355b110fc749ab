package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
	"github.com/jhoicas/Documentos-api/internal/domain/stock"
)

// Import registra una carga de stock: un movimiento positivo por producto en la bodega,
// en una sola transacción y con la fila de la bodega bloqueada.
func (uc *StockUseCase) Import(ctx context.Context, userID string, in dto.StockImportRequest) (*dto.StockImportResponse, error) {
	if in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: warehouse_id e items son requeridos", domain.ErrInvalidInput)
	}
	reqs := make([]stock.Requirement, 0, len(in.Items))
	for i, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: línea %d: quantity debe ser mayor que cero", domain.ErrInvalidInput, i+1)
		}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: línea %d: producto %s", domain.ErrNotFound, i+1, it.ProductID)
		}
		reqs = append(reqs, stock.Requirement{ProductID: p.ID, Quantity: it.Quantity})
	}
	reqs = stock.Merge(reqs)

	now := uc.now()
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, warehouseRepo repository.WarehouseRepository) error {
		w, err := warehouseRepo.GetForUpdate(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
		}
		movs := make([]*entity.StockMovement, 0, len(reqs))
		for _, r := range reqs {
			movs = append(movs, &entity.StockMovement{
				ProductID:   r.ProductID,
				WarehouseID: in.WarehouseID,
				Quantity:    r.Quantity,
				SourceType:  entity.MovementSourceImport,
				Reference:   in.Reference,
				CreatedBy:   userID,
				CreatedAt:   now,
			})
		}
		return movRepo.Append(ctx, movs...)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("warehouse_id", in.WarehouseID).
		Str("reference", in.Reference).
		Int("movements", len(reqs)).
		Str("user_id", userID).
		Msg("carga de stock registrada")
	return &dto.StockImportResponse{WarehouseID: in.WarehouseID, Reference: in.Reference, Movements: len(reqs)}, nil
}
