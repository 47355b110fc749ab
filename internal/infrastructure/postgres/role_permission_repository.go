package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

var _ repository.RolePermissionRepository = (*RolePermissionRepo)(nil)

// RolePermissionRepo lee role_permissions(role, permission).
type RolePermissionRepo struct {
	q Querier
}

// NewRolePermissionRepository construye el adaptador.
func NewRolePermissionRepository(q Querier) *RolePermissionRepo {
	return &RolePermissionRepo{q: q}
}

// LoadAll devuelve la tabla completa agrupada por rol.
func (r *RolePermissionRepo) LoadAll(ctx context.Context) (map[string][]string, error) {
	rows, err := r.q.Query(ctx, `SELECT role, permission FROM role_permissions ORDER BY role, permission`)
	if err != nil {
		return nil, wrapErr("load role permissions", err)
	}
	defer rows.Close()
	table := map[string][]string{}
	for rows.Next() {
		var role, perm string
		if err := rows.Scan(&role, &perm); err != nil {
			return nil, fmt.Errorf("scan role permission: %w", err)
		}
		table[role] = append(table[role], perm)
	}
	return table, rows.Err()
}
