package repository

import "context"

// RolePermissionRepository lee la tabla rol → permisos. Se consulta solo al arrancar.
type RolePermissionRepository interface {
	LoadAll(ctx context.Context) (map[string][]string, error)
}
