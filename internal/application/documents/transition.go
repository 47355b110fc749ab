package documents

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/rbac"
	"github.com/jhoicas/Documentos-api/internal/domain/stock"
)

// Transition aplica action al documento id en una sola transacción:
// SELECT ... FOR UPDATE, cálculo puro del nuevo estado, UPDATE condicionado y efectos sobre
// el libro de inventario (entrega de remisión, traslado completado).
func (uc *UseCase) Transition(ctx context.Context, actor rbac.Subject, t document.Type, id string, action document.Action) (*dto.StatusChangeResponse, error) {
	if !t.Valid() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	var state *entity.DocumentState
	var next document.Status
	err := uc.tx.RunDocuments(ctx, func(repos TxRepos) error {
		var err error
		state, err = repos.States.GetForUpdate(ctx, t, id)
		if err != nil {
			return err
		}
		if state == nil {
			return domain.ErrNotFound
		}
		next, err = document.Transition(t, state.Status, action, actor.UserID, state.ApproverID)
		if err != nil {
			return fmt.Errorf("%s %s (%s): %w", action, state.Number, state.Status, err)
		}
		if err := repos.States.UpdateStatus(ctx, t, id, state.Status, next, now); err != nil {
			return err
		}
		switch {
		case t == document.TypeDeliveryNote && next == document.StatusDelivered:
			return uc.applyDelivery(ctx, repos, actor, id, now)
		case t == document.TypeTransfer && next == document.StatusCompleted:
			return uc.applyTransfer(ctx, repos, actor, id, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("type", string(t)).
		Str("id", id).
		Str("number", state.Number).
		Str("from", string(state.Status)).
		Str("to", string(next)).
		Str("user_id", actor.UserID).
		Msg("transición de documento")
	uc.publish(ctx, Event{
		Name:         EventStatusChanged,
		DocumentType: t,
		DocumentID:   id,
		Number:       state.Number,
		Action:       action,
		From:         state.Status,
		To:           next,
		ActorID:      actor.UserID,
		OccurredAt:   now,
	})
	return &dto.StatusChangeResponse{
		ID:        id,
		Type:      string(t),
		Number:    state.Number,
		Action:    string(action),
		From:      string(state.Status),
		To:        string(next),
		UpdatedAt: now,
	}, nil
}

// DeleteQuotation elimina una cotización solo si sigue en borrador.
func (uc *UseCase) DeleteQuotation(ctx context.Context, actor rbac.Subject, id string) error {
	var state *entity.DocumentState
	err := uc.tx.RunDocuments(ctx, func(repos TxRepos) error {
		var err error
		state, err = repos.States.GetForUpdate(ctx, document.TypeQuotation, id)
		if err != nil {
			return err
		}
		if state == nil {
			return domain.ErrNotFound
		}
		if state.Status != document.StatusDraft {
			return fmt.Errorf("%w: solo se eliminan cotizaciones en borrador (%s está en %s)",
				domain.ErrInvalidTransition, state.Number, state.Status)
		}
		return repos.Quotations.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("id", id).Str("number", state.Number).Str("user_id", actor.UserID).Msg("cotización eliminada")
	uc.publish(ctx, Event{
		Name:         EventDeleted,
		DocumentType: document.TypeQuotation,
		DocumentID:   id,
		Number:       state.Number,
		From:         state.Status,
		ActorID:      actor.UserID,
		OccurredAt:   uc.now(),
	})
	return nil
}

// applyDelivery descuenta las líneas de la remisión de su bodega. La fila de la bodega queda
// bloqueada hasta el commit para que dos salidas concurrentes no lean el mismo saldo.
func (uc *UseCase) applyDelivery(ctx context.Context, repos TxRepos, actor rbac.Subject, id string, now time.Time) error {
	dn, err := repos.DeliveryNotes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if dn == nil {
		return domain.ErrNotFound
	}
	if err := lockWarehouses(ctx, repos, dn.WarehouseID); err != nil {
		return err
	}
	reqs := merged(dn.Items)
	if err := ensureAvailable(ctx, repos, dn.WarehouseID, reqs); err != nil {
		return err
	}
	movs := make([]*entity.StockMovement, 0, len(reqs))
	for _, r := range reqs {
		movs = append(movs, &entity.StockMovement{
			ProductID:   r.ProductID,
			WarehouseID: dn.WarehouseID,
			Quantity:    r.Quantity.Neg(),
			SourceType:  entity.MovementSourceDelivery,
			SourceID:    dn.ID,
			Reference:   dn.Number,
			CreatedBy:   actor.UserID,
			CreatedAt:   now,
		})
	}
	return repos.Movements.Append(ctx, movs...)
}

// applyTransfer registra el par salida/entrada por producto. Las bodegas se bloquean en orden
// de ID para no provocar deadlocks entre traslados cruzados.
func (uc *UseCase) applyTransfer(ctx context.Context, repos TxRepos, actor rbac.Subject, id string, now time.Time) error {
	tr, err := repos.Transfers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tr == nil {
		return domain.ErrNotFound
	}
	if err := lockWarehouses(ctx, repos, tr.FromWarehouseID, tr.ToWarehouseID); err != nil {
		return err
	}
	reqs := merged(tr.Items)
	if err := ensureAvailable(ctx, repos, tr.FromWarehouseID, reqs); err != nil {
		return err
	}
	movs := make([]*entity.StockMovement, 0, 2*len(reqs))
	for _, r := range reqs {
		base := entity.StockMovement{
			ProductID:  r.ProductID,
			SourceType: entity.MovementSourceTransfer,
			SourceID:   tr.ID,
			Reference:  tr.Number,
			CreatedBy:  actor.UserID,
			CreatedAt:  now,
		}
		out, in := base, base
		out.WarehouseID, out.Quantity = tr.FromWarehouseID, r.Quantity.Neg()
		in.WarehouseID, in.Quantity = tr.ToWarehouseID, r.Quantity
		movs = append(movs, &out, &in)
	}
	return repos.Movements.Append(ctx, movs...)
}

func lockWarehouses(ctx context.Context, repos TxRepos, ids ...string) error {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	for _, wid := range sorted {
		w, err := repos.Warehouses.GetForUpdate(ctx, wid)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, wid)
		}
	}
	return nil
}

func merged(items []entity.StockItem) []stock.Requirement {
	reqs := make([]stock.Requirement, 0, len(items))
	for _, it := range items {
		reqs = append(reqs, stock.Requirement{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return stock.Merge(reqs)
}

func ensureAvailable(ctx context.Context, repos TxRepos, warehouseID string, reqs []stock.Requirement) error {
	for _, r := range reqs {
		available, err := repos.Movements.Balance(ctx, r.ProductID, warehouseID)
		if err != nil {
			return err
		}
		if available.LessThan(r.Quantity) {
			return fmt.Errorf("%w: producto %s disponible %s, requerido %s",
				domain.ErrInsufficientStock, r.ProductID, available.String(), r.Quantity.String())
		}
	}
	return nil
}
