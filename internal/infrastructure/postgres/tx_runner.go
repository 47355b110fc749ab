package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/application/inventory"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

var _ documents.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunDocuments abre una transacción con todos los repos de documentos atados a ella.
// Si fn falla se hace Rollback; nada queda a medias.
func (r *TxRunner) RunDocuments(ctx context.Context, fn func(repos documents.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(documents.TxRepos{
			Sequences:     NewSequenceRepository(tx),
			States:        NewDocumentStateRepository(tx),
			Quotations:    NewQuotationRepository(tx),
			Invoices:      NewInvoiceRepository(tx),
			DeliveryNotes: NewDeliveryNoteRepository(tx),
			Transfers:     NewTransferRepository(tx),
			Movements:     NewStockMovementRepository(tx),
			Warehouses:    NewWarehouseRepository(tx),
		})
	})
}

// Run abre una transacción con el libro de inventario y las bodegas (cargas de stock).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx), NewWarehouseRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}

// NewReaders repositorios de lectura sobre el pool, fuera de transacción.
func NewReaders(pool *pgxpool.Pool) documents.Readers {
	return documents.Readers{
		Sequences:     NewSequenceRepository(pool),
		Quotations:    NewQuotationRepository(pool),
		Invoices:      NewInvoiceRepository(pool),
		DeliveryNotes: NewDeliveryNoteRepository(pool),
		Transfers:     NewTransferRepository(pool),
		Products:      NewProductRepository(pool),
		Customers:     NewCustomerRepository(pool),
		Warehouses:    NewWarehouseRepository(pool),
		Users:         NewUserRepository(pool),
	}
}
