// Package memory implementación en memoria de los repositorios y del TxRunner.
// Las transacciones se serializan con un mutex y se revierten restaurando una copia
// del estado; sirve para tests de casos de uso y handlers sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/application/inventory"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

var (
	_ documents.TxRunner = (*Store)(nil)
	_ inventory.TxRunner = (*Store)(nil)
)

type state struct {
	quotations    map[string]*entity.Quotation
	invoices      map[string]*entity.Invoice
	deliveryNotes map[string]*entity.DeliveryNote
	transfers     map[string]*entity.Transfer
	movements     []*entity.StockMovement
	products      map[string]*entity.Product
	warehouses    map[string]*entity.Warehouse
	customers     map[string]*entity.Customer
	users         map[string]*entity.User
	permissions   map[string][]string
}

func newState() *state {
	return &state{
		quotations:    map[string]*entity.Quotation{},
		invoices:      map[string]*entity.Invoice{},
		deliveryNotes: map[string]*entity.DeliveryNote{},
		transfers:     map[string]*entity.Transfer{},
		products:      map[string]*entity.Product{},
		warehouses:    map[string]*entity.Warehouse{},
		customers:     map[string]*entity.Customer{},
		users:         map[string]*entity.User{},
		permissions:   map[string][]string{},
	}
}

func cloneMap[T any](src map[string]*T) map[string]*T {
	out := make(map[string]*T, len(src))
	for k, v := range src {
		c := *v
		out[k] = &c
	}
	return out
}

func (st *state) clone() *state {
	movs := make([]*entity.StockMovement, len(st.movements))
	copy(movs, st.movements)
	perms := make(map[string][]string, len(st.permissions))
	for k, v := range st.permissions {
		perms[k] = append([]string(nil), v...)
	}
	return &state{
		quotations:    cloneMap(st.quotations),
		invoices:      cloneMap(st.invoices),
		deliveryNotes: cloneMap(st.deliveryNotes),
		transfers:     cloneMap(st.transfers),
		movements:     movs,
		products:      cloneMap(st.products),
		warehouses:    cloneMap(st.warehouses),
		customers:     cloneMap(st.customers),
		users:         cloneMap(st.users),
		permissions:   perms,
	}
}

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view acceso al estado: dentro de una transacción el mutex ya está tomado.
type view struct {
	s  *Store
	tx bool
}

func (v view) with(fn func(st *state) error) error {
	if v.tx {
		return fn(v.s.st)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.st)
}

func (s *Store) inTx(fn func(v view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.st.clone()
	if err := fn(view{s: s, tx: true}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) txRepos(v view) documents.TxRepos {
	return documents.TxRepos{
		Sequences:     sequenceRepo{v},
		States:        stateRepo{v},
		Quotations:    quotationRepo{v},
		Invoices:      invoiceRepo{v},
		DeliveryNotes: deliveryNoteRepo{v},
		Transfers:     transferRepo{v},
		Movements:     movementRepo{v},
		Warehouses:    warehouseRepo{v},
	}
}

// RunDocuments ejecuta fn con todos los repositorios de documentos en una transacción.
func (s *Store) RunDocuments(_ context.Context, fn func(repos documents.TxRepos) error) error {
	return s.inTx(func(v view) error { return fn(s.txRepos(v)) })
}

// Run ejecuta fn con los repositorios de inventario en una transacción.
func (s *Store) Run(_ context.Context, fn func(movRepo repository.StockMovementRepository, warehouseRepo repository.WarehouseRepository) error) error {
	return s.inTx(func(v view) error { return fn(movementRepo{v}, warehouseRepo{v}) })
}

// Readers repositorios fuera de transacción para documents.NewUseCase.
func (s *Store) Readers() documents.Readers {
	v := view{s: s}
	return documents.Readers{
		Sequences:     sequenceRepo{v},
		Quotations:    quotationRepo{v},
		Invoices:      invoiceRepo{v},
		DeliveryNotes: deliveryNoteRepo{v},
		Transfers:     transferRepo{v},
		Products:      productRepo{v},
		Customers:     customerRepo{v},
		Warehouses:    warehouseRepo{v},
		Users:         userRepo{v},
	}
}

func (s *Store) Products() repository.ProductRepository               { return productRepo{view{s: s}} }
func (s *Store) Warehouses() repository.WarehouseRepository           { return warehouseRepo{view{s: s}} }
func (s *Store) Customers() repository.CustomerRepository             { return customerRepo{view{s: s}} }
func (s *Store) Users() repository.UserRepository                     { return userRepo{view{s: s}} }
func (s *Store) Movements() repository.StockMovementRepository        { return movementRepo{view{s: s}} }
func (s *Store) RolePermissions() repository.RolePermissionRepository { return permRepo{view{s: s}} }
func (s *Store) States() repository.DocumentStateRepository           { return stateRepo{view{s: s}} }

// SetRolePermissions reemplaza la tabla rol → permisos.
func (s *Store) SetRolePermissions(perms map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.permissions = make(map[string][]string, len(perms))
	for k, v := range perms {
		s.st.permissions[k] = append([]string(nil), v...)
	}
}

// sortedValues valores del mapa ordenados por less.
func sortedValues[T any](m map[string]*T, less func(a, b *T) bool) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		c := *v
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func page[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return []*T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
