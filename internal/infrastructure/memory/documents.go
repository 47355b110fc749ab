package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

var (
	_ repository.SequenceRepository      = sequenceRepo{}
	_ repository.DocumentStateRepository = stateRepo{}
	_ repository.QuotationRepository     = quotationRepo{}
	_ repository.InvoiceRepository       = invoiceRepo{}
	_ repository.DeliveryNoteRepository  = deliveryNoteRepo{}
	_ repository.TransferRepository      = transferRepo{}
)

// numbers números existentes del tipo t.
func (st *state) numbers(t document.Type) []string {
	var out []string
	switch t {
	case document.TypeQuotation:
		for _, d := range st.quotations {
			out = append(out, d.Number)
		}
	case document.TypeInvoice:
		for _, d := range st.invoices {
			out = append(out, d.Number)
		}
	case document.TypeDeliveryNote:
		for _, d := range st.deliveryNotes {
			out = append(out, d.Number)
		}
	case document.TypeTransfer:
		for _, d := range st.transfers {
			out = append(out, d.Number)
		}
	}
	return out
}

func (st *state) meta(t document.Type, id string) (*entity.DocumentMeta, string) {
	switch t {
	case document.TypeQuotation:
		if d, ok := st.quotations[id]; ok {
			return &d.DocumentMeta, d.ApproverID
		}
	case document.TypeInvoice:
		if d, ok := st.invoices[id]; ok {
			return &d.DocumentMeta, ""
		}
	case document.TypeDeliveryNote:
		if d, ok := st.deliveryNotes[id]; ok {
			return &d.DocumentMeta, ""
		}
	case document.TypeTransfer:
		if d, ok := st.transfers[id]; ok {
			return &d.DocumentMeta, ""
		}
	}
	return nil, ""
}

func (st *state) checkNumber(t document.Type, m *entity.DocumentMeta) error {
	if m.Number == "" {
		return fmt.Errorf("%w: número vacío", domain.ErrInvalidInput)
	}
	for _, n := range st.numbers(t) {
		if n == m.Number {
			return fmt.Errorf("%s number %s: %w", t, m.Number, domain.ErrConflict)
		}
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type sequenceRepo struct{ v view }

func (r sequenceRepo) Reserve(_ context.Context, t document.Type, now time.Time) (string, error) {
	if !r.v.tx {
		return "", fmt.Errorf("reserve %s fuera de transacción", t)
	}
	return r.next(t, now)
}

func (r sequenceRepo) Peek(_ context.Context, t document.Type, now time.Time) (string, error) {
	return r.next(t, now)
}

func (r sequenceRepo) next(t document.Type, now time.Time) (string, error) {
	if !t.Valid() {
		return "", domain.ErrInvalidInput
	}
	var number string
	err := r.v.with(func(st *state) error {
		prefix := document.BucketPrefix(t, now)
		var bucket []string
		for _, n := range st.numbers(t) {
			if strings.HasPrefix(n, prefix) {
				bucket = append(bucket, n)
			}
		}
		number = document.NextNumber(t, now, bucket)
		return nil
	})
	return number, err
}

type stateRepo struct{ v view }

func (r stateRepo) GetForUpdate(_ context.Context, t document.Type, id string) (*entity.DocumentState, error) {
	var out *entity.DocumentState
	err := r.v.with(func(st *state) error {
		m, approver := st.meta(t, id)
		if m != nil {
			out = &entity.DocumentState{ID: m.ID, Number: m.Number, Status: m.Status, ApproverID: approver}
		}
		return nil
	})
	return out, err
}

func (r stateRepo) UpdateStatus(_ context.Context, t document.Type, id string, from, to document.Status, at time.Time) error {
	return r.v.with(func(st *state) error {
		m, _ := st.meta(t, id)
		if m == nil || m.Status != from {
			return domain.ErrInvalidTransition
		}
		m.Status = to
		m.UpdatedAt = at
		return nil
	})
}

func byCreatedDesc(a, b *entity.DocumentMeta) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.Number > b.Number
	}
	return a.CreatedAt.After(b.CreatedAt)
}

type quotationRepo struct{ v view }

func (r quotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	return r.v.with(func(st *state) error {
		if err := st.checkNumber(document.TypeQuotation, &q.DocumentMeta); err != nil {
			return err
		}
		c := *q
		st.quotations[q.ID] = &c
		return nil
	})
}

func (r quotationRepo) GetByID(_ context.Context, id string) (*entity.Quotation, error) {
	var out *entity.Quotation
	err := r.v.with(func(st *state) error {
		if d, ok := st.quotations[id]; ok {
			c := *d
			out = &c
		}
		return nil
	})
	return out, err
}

func (r quotationRepo) List(_ context.Context, limit, offset int) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	err := r.v.with(func(st *state) error {
		out = page(sortedValues(st.quotations, func(a, b *entity.Quotation) bool {
			return byCreatedDesc(&a.DocumentMeta, &b.DocumentMeta)
		}), limit, offset)
		return nil
	})
	return out, err
}

func (r quotationRepo) Delete(_ context.Context, id string) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.quotations[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.quotations, id)
		return nil
	})
}

type invoiceRepo struct{ v view }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.v.with(func(st *state) error {
		if err := st.checkNumber(document.TypeInvoice, &inv.DocumentMeta); err != nil {
			return err
		}
		c := *inv
		st.invoices[inv.ID] = &c
		return nil
	})
}

func (r invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.v.with(func(st *state) error {
		if d, ok := st.invoices[id]; ok {
			c := *d
			out = &c
		}
		return nil
	})
	return out, err
}

func (r invoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.v.with(func(st *state) error {
		out = page(sortedValues(st.invoices, func(a, b *entity.Invoice) bool {
			return byCreatedDesc(&a.DocumentMeta, &b.DocumentMeta)
		}), limit, offset)
		return nil
	})
	return out, err
}

type deliveryNoteRepo struct{ v view }

func (r deliveryNoteRepo) Create(_ context.Context, dn *entity.DeliveryNote) error {
	return r.v.with(func(st *state) error {
		if err := st.checkNumber(document.TypeDeliveryNote, &dn.DocumentMeta); err != nil {
			return err
		}
		c := *dn
		st.deliveryNotes[dn.ID] = &c
		return nil
	})
}

func (r deliveryNoteRepo) GetByID(_ context.Context, id string) (*entity.DeliveryNote, error) {
	var out *entity.DeliveryNote
	err := r.v.with(func(st *state) error {
		if d, ok := st.deliveryNotes[id]; ok {
			c := *d
			out = &c
		}
		return nil
	})
	return out, err
}

func (r deliveryNoteRepo) List(_ context.Context, limit, offset int) ([]*entity.DeliveryNote, error) {
	var out []*entity.DeliveryNote
	err := r.v.with(func(st *state) error {
		out = page(sortedValues(st.deliveryNotes, func(a, b *entity.DeliveryNote) bool {
			return byCreatedDesc(&a.DocumentMeta, &b.DocumentMeta)
		}), limit, offset)
		return nil
	})
	return out, err
}

type transferRepo struct{ v view }

func (r transferRepo) Create(_ context.Context, tr *entity.Transfer) error {
	return r.v.with(func(st *state) error {
		if err := st.checkNumber(document.TypeTransfer, &tr.DocumentMeta); err != nil {
			return err
		}
		c := *tr
		st.transfers[tr.ID] = &c
		return nil
	})
}

func (r transferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	err := r.v.with(func(st *state) error {
		if d, ok := st.transfers[id]; ok {
			c := *d
			out = &c
		}
		return nil
	})
	return out, err
}

func (r transferRepo) List(_ context.Context, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	err := r.v.with(func(st *state) error {
		out = page(sortedValues(st.transfers, func(a, b *entity.Transfer) bool {
			return byCreatedDesc(&a.DocumentMeta, &b.DocumentMeta)
		}), limit, offset)
		return nil
	})
	return out, err
}
