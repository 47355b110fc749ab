package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
	"github.com/jhoicas/Documentos-api/internal/domain/stock"
)

var (
	_ repository.ProductRepository        = productRepo{}
	_ repository.WarehouseRepository      = warehouseRepo{}
	_ repository.CustomerRepository       = customerRepo{}
	_ repository.UserRepository           = userRepo{}
	_ repository.RolePermissionRepository = permRepo{}
	_ repository.StockMovementRepository  = movementRepo{}
)

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

type productRepo struct{ v view }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.with(func(st *state) error {
		for _, ex := range st.products {
			if ex.Code == p.Code {
				return fmt.Errorf("product code %s: %w", p.Code, domain.ErrDuplicate)
			}
		}
		ensureID(&p.ID)
		c := *p
		st.products[p.ID] = &c
		return nil
	})
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

func (r productRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(st *state) error {
		for _, p := range st.products {
			if p.Code == code {
				c := *p
				out = &c
			}
		}
		return nil
	})
	return out, err
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		c := *p
		st.products[p.ID] = &c
		return nil
	})
}

func (r productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.with(func(st *state) error {
		out = page(sortedValues(st.products, func(a, b *entity.Product) bool { return a.Code < b.Code }), limit, offset)
		return nil
	})
	return out, err
}

type warehouseRepo struct{ v view }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.v.with(func(st *state) error {
		for _, ex := range st.warehouses {
			if ex.Code == w.Code {
				return fmt.Errorf("warehouse code %s: %w", w.Code, domain.ErrDuplicate)
			}
		}
		ensureID(&w.ID)
		c := *w
		st.warehouses[w.ID] = &c
		return nil
	})
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.with(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			c := *w
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de una transacción el mutex del Store ya serializa el acceso.
func (r warehouseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.GetByID(ctx, id)
}

func (r warehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.warehouses[w.ID]; !ok {
			return domain.ErrNotFound
		}
		c := *w
		st.warehouses[w.ID] = &c
		return nil
	})
}

func (r warehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.v.with(func(st *state) error {
		out = page(sortedValues(st.warehouses, func(a, b *entity.Warehouse) bool { return a.Code < b.Code }), limit, offset)
		return nil
	})
	return out, err
}

type customerRepo struct{ v view }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.with(func(st *state) error {
		for _, ex := range st.customers {
			if ex.TaxID == c.TaxID {
				return fmt.Errorf("customer tax_id %s: %w", c.TaxID, domain.ErrDuplicate)
			}
		}
		ensureID(&c.ID)
		cp := *c
		st.customers[c.ID] = &cp
		return nil
	})
}

func (r customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.with(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r customerRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.with(func(st *state) error {
		for _, c := range st.customers {
			if c.TaxID == taxID {
				cp := *c
				out = &cp
			}
		}
		return nil
	})
	return out, err
}

func (r customerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.v.with(func(st *state) error {
		out = page(sortedValues(st.customers, func(a, b *entity.Customer) bool { return a.Name < b.Name }), limit, offset)
		return nil
	})
	return out, err
}

type userRepo struct{ v view }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.with(func(st *state) error {
		u.Email = strings.ToLower(strings.TrimSpace(u.Email))
		for _, ex := range st.users {
			if ex.Email == u.Email {
				return fmt.Errorf("user email %s: %w", u.Email, domain.ErrDuplicate)
			}
		}
		ensureID(&u.ID)
		c := *u
		st.users[u.ID] = &c
		return nil
	})
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.with(func(st *state) error {
		if u, ok := st.users[id]; ok {
			c := *u
			out = &c
		}
		return nil
	})
	return out, err
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var out *entity.User
	err := r.v.with(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				c := *u
				out = &c
			}
		}
		return nil
	})
	return out, err
}

type permRepo struct{ v view }

func (r permRepo) LoadAll(_ context.Context) (map[string][]string, error) {
	out := map[string][]string{}
	err := r.v.with(func(st *state) error {
		for k, v := range st.permissions {
			out[k] = append([]string(nil), v...)
		}
		return nil
	})
	return out, err
}

type movementRepo struct{ v view }

func (r movementRepo) Append(_ context.Context, movements ...*entity.StockMovement) error {
	return r.v.with(func(st *state) error {
		for _, m := range movements {
			if m.Quantity.IsZero() {
				return fmt.Errorf("%w: movimiento con cantidad cero", domain.ErrInvalidInput)
			}
			ensureID(&m.ID)
			if m.CreatedAt.IsZero() {
				m.CreatedAt = time.Now()
			}
			c := *m
			st.movements = append(st.movements, &c)
		}
		return nil
	})
}

func (st *state) balance(productID, warehouseID string) decimal.Decimal {
	total := decimal.Zero
	for _, m := range st.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			total = total.Add(m.Quantity)
		}
	}
	return total
}

func (r movementRepo) Balance(_ context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := r.v.with(func(st *state) error {
		out = st.balance(productID, warehouseID)
		return nil
	})
	return out, err
}

func (r movementRepo) ByWarehouseForProduct(_ context.Context, productID string) ([]stock.Line, error) {
	var out []stock.Line
	err := r.v.with(func(st *state) error {
		for _, w := range st.warehouses {
			out = append(out, stock.Line{ID: w.ID, Code: w.Code, Name: w.Name, Quantity: st.balance(productID, w.ID)})
		}
		return nil
	})
	return out, err
}

func (r movementRepo) ByProductForWarehouse(_ context.Context, warehouseID string) ([]stock.Line, error) {
	var out []stock.Line
	err := r.v.with(func(st *state) error {
		for _, p := range st.products {
			out = append(out, stock.Line{ID: p.ID, Code: p.Code, Name: p.Name, Quantity: st.balance(p.ID, warehouseID)})
		}
		return nil
	})
	return out, err
}

func (r movementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.v.with(func(st *state) error {
		var list []*entity.StockMovement
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.ProductID != productID {
				continue
			}
			if from != nil && m.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && m.CreatedAt.After(*to) {
				continue
			}
			c := *m
			list = append(list, &c)
		}
		out = page(list, limit, offset)
		return nil
	})
	return out, err
}
