package entity

import "time"

// Customer cliente destinatario de cotizaciones, facturas y remisiones.
type Customer struct {
	ID        string
	Name      string
	TaxID     string // NIT o Cédula
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
