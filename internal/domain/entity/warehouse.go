package entity

import "time"

// Warehouse bodega donde se almacena inventario.
type Warehouse struct {
	ID        string
	Code      string // único
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
