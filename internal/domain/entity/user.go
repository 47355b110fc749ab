package entity

import "time"

// Roles por defecto. La tabla role_permissions puede definir otros.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca texto plano
	Name         string
	Role         string
	IsAdmin      bool // omite toda verificación de permisos
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
