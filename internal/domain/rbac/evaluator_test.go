package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Documentos-api/internal/domain/rbac"
)

func table() map[string][]string {
	return map[string][]string{
		"vendedor":  {"quotation:view", "quotation:create", "quotation:submit", "invoice:*"},
		"bodeguero": {"stock:view", "stock:import", "transfer:*", "delivery_note:deliver"},
		"auditor":   {"*:*"},
	}
}

func TestCan_PermisoExacto(t *testing.T) {
	e := rbac.NewEvaluator(table())
	s := rbac.Subject{Role: "vendedor"}
	assert.True(t, e.Can(s, "quotation:create"))
	assert.False(t, e.Can(s, "quotation:approve"))
	assert.False(t, e.Can(s, "stock:view"))
}

func TestCan_ComodinDeRecurso(t *testing.T) {
	e := rbac.NewEvaluator(table())
	s := rbac.Subject{Role: "vendedor"}
	assert.True(t, e.Can(s, "invoice:pay"))
	assert.True(t, e.Can(s, "invoice:create"))
	assert.False(t, e.Can(s, "delivery_note:create"))
}

func TestCan_ComodinTotal(t *testing.T) {
	e := rbac.NewEvaluator(table())
	assert.True(t, e.Can(rbac.Subject{Role: "auditor"}, "transfer:complete"))
}

func TestCan_RolDesconocido(t *testing.T) {
	e := rbac.NewEvaluator(table())
	assert.False(t, e.Can(rbac.Subject{Role: "invitado"}, "quotation:view"))
	assert.False(t, e.Can(rbac.Subject{}, "quotation:view"))
}

func TestCan_AdminSiemprePasa(t *testing.T) {
	e := rbac.NewEvaluator(nil)
	admin := rbac.Subject{Role: "invitado", IsAdmin: true}
	assert.True(t, e.Can(admin, "cualquier:cosa"))
	assert.True(t, e.CanAll(admin, "a:b", "c:d"))
	assert.True(t, e.CanAny(admin))
}

func TestCanAnyCanAll(t *testing.T) {
	e := rbac.NewEvaluator(table())
	s := rbac.Subject{Role: "bodeguero"}
	assert.True(t, e.CanAny(s, "quotation:view", "stock:view"))
	assert.False(t, e.CanAny(s, "quotation:view", "invoice:view"))
	assert.False(t, e.CanAny(s))
	assert.True(t, e.CanAll(s, "stock:view", "transfer:create"))
	assert.False(t, e.CanAll(s, "stock:view", "quotation:view"))
	assert.True(t, e.CanAll(s))
}

// La tabla de origen puede mutarse sin afectar al evaluador.
func TestNewEvaluator_EsInmutable(t *testing.T) {
	src := table()
	e := rbac.NewEvaluator(src)
	src["vendedor"] = append(src["vendedor"], "stock:view")
	src["nuevo"] = []string{"*:*"}

	assert.False(t, e.Can(rbac.Subject{Role: "vendedor"}, "stock:view"))
	assert.False(t, e.Can(rbac.Subject{Role: "nuevo"}, "stock:view"))
}

func TestPermissions_Ordenados(t *testing.T) {
	e := rbac.NewEvaluator(table())
	assert.Equal(t,
		[]string{"delivery_note:deliver", "stock:import", "stock:view", "transfer:*"},
		e.Permissions(rbac.Subject{Role: "bodeguero"}))
	assert.Equal(t, []string{"*:*"}, e.Permissions(rbac.Subject{IsAdmin: true}))
	assert.Empty(t, e.Permissions(rbac.Subject{Role: "nadie"}))
	assert.Equal(t, []string{"auditor", "bodeguero", "vendedor"}, e.Roles())
}

func TestHasRole(t *testing.T) {
	e := rbac.NewEvaluator(table())
	assert.True(t, e.HasRole("bodeguero"))
	assert.False(t, e.HasRole("nadie"))
}
