// Package inventory consultas de saldo sobre el libro de movimientos y cargas de stock.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
	"github.com/jhoicas/Documentos-api/internal/domain/stock"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

// Scope alcance de una consulta de saldo.
const (
	ScopeProduct   = "product"
	ScopeWarehouse = "warehouse"
)

// StockUseCase agrega el libro por producto o por bodega y registra cargas.
type StockUseCase struct {
	txRunner      TxRunner
	movRepo       repository.StockMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
	now           func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		movRepo:       movRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
		now:           time.Now,
	}
}

// Query parámetros de presentación: sortBy crudo de la petición y filtro de ceros.
type Query struct {
	SortBy           string
	IncludeZeroStock bool
}

func (q Query) filter() (stock.Filter, error) {
	sortBy, err := stock.ParseSortBy(q.SortBy)
	if err != nil {
		return stock.Filter{}, fmt.Errorf("%w: sortBy %q no soportado", err, q.SortBy)
	}
	return stock.Filter{SortBy: sortBy, IncludeZeroStock: q.IncludeZeroStock}, nil
}

// ForProduct saldo del producto en cada bodega.
func (uc *StockUseCase) ForProduct(ctx context.Context, productID string, q Query) (*dto.StockResponse, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	lines, err := uc.movRepo.ByWarehouseForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(ScopeProduct, productID, f, lines), nil
}

// ForWarehouse saldo de cada producto en la bodega.
func (uc *StockUseCase) ForWarehouse(ctx context.Context, warehouseID string, q Query) (*dto.StockResponse, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	w, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
	}
	lines, err := uc.movRepo.ByProductForWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(ScopeWarehouse, warehouseID, f, lines), nil
}

// toStockResponse el total se calcula antes de filtrar ceros.
func toStockResponse(scope, scopeID string, f stock.Filter, lines []stock.Line) *dto.StockResponse {
	total := stock.Total(lines)
	shown := stock.Apply(lines, f)
	out := &dto.StockResponse{
		Scope:   scope,
		ScopeID: scopeID,
		SortBy:  string(f.SortBy),
		Lines:   make([]dto.StockLineResponse, 0, len(shown)),
		Total:   total,
	}
	for _, l := range shown {
		out.Lines = append(out.Lines, dto.StockLineResponse{ID: l.ID, Code: l.Code, Name: l.Name, Quantity: l.Quantity})
	}
	return out
}

// Movements historial del libro para un producto, más reciente primero.
func (uc *StockUseCase) Movements(ctx context.Context, productID string, from, to *time.Time, page dto.PageRequest) (*dto.ListResponse[dto.StockMovementResponse], error) {
	page.DefaultPage()
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ListResponse[dto.StockMovementResponse]{
		Items: make([]dto.StockMovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range list {
		out.Items = append(out.Items, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Quantity:    m.Quantity,
		SourceType:  m.SourceType,
		SourceID:    m.SourceID,
		Reference:   m.Reference,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
