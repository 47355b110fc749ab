// Package document contiene las reglas puras de los documentos comerciales:
// tipos, numeración secuencial y máquina de estados. No accede a la base de datos.
package document

import "github.com/jhoicas/Documentos-api/internal/domain"

// Type identifica un tipo de documento comercial.
type Type string

const (
	TypeQuotation    Type = "quotation"
	TypeInvoice      Type = "invoice"
	TypeDeliveryNote Type = "delivery_note"
	TypeTransfer     Type = "transfer"
)

type typeInfo struct {
	prefix  string
	table   string
	segment string
}

// registry fija prefijo, tabla y segmento de URL por tipo. Las tablas solo salen de aquí,
// nunca de la entrada del usuario.
var registry = map[Type]typeInfo{
	TypeQuotation:    {prefix: "QUO", table: "quotations", segment: "quotations"},
	TypeInvoice:      {prefix: "INV", table: "invoices", segment: "invoices"},
	TypeDeliveryNote: {prefix: "DN", table: "delivery_notes", segment: "delivery-notes"},
	TypeTransfer:     {prefix: "TRF", table: "transfers", segment: "transfers"},
}

// Types devuelve los tipos soportados en orden estable.
func Types() []Type {
	return []Type{TypeQuotation, TypeInvoice, TypeDeliveryNote, TypeTransfer}
}

// Valid indica si t es un tipo registrado.
func (t Type) Valid() bool {
	_, ok := registry[t]
	return ok
}

// Prefix devuelve el prefijo del número (QUO, INV, DN, TRF).
func (t Type) Prefix() string { return registry[t].prefix }

// Table devuelve la tabla donde se persiste el tipo.
func (t Type) Table() string { return registry[t].table }

// Segment devuelve el segmento de ruta HTTP (ej. "delivery-notes").
func (t Type) Segment() string { return registry[t].segment }

// Resource devuelve el nombre de recurso usado en los permisos "resource:action".
func (t Type) Resource() string { return string(t) }

// ParseSegment resuelve un segmento de ruta HTTP a su tipo.
func ParseSegment(segment string) (Type, error) {
	for t, info := range registry {
		if info.segment == segment {
			return t, nil
		}
	}
	return "", domain.ErrInvalidInput
}
