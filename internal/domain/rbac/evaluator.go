// Package rbac evalúa permisos "recurso:acción" a partir de una tabla rol → permisos
// cargada una vez al arrancar. La tabla es inmutable después de construir el Evaluator.
package rbac

import (
	"sort"
	"strings"
)

// Wildcard comodín de recurso o acción.
const Wildcard = "*"

// Subject identidad resuelta del usuario que hace la petición.
type Subject struct {
	UserID  string
	Role    string
	IsAdmin bool
}

// Evaluator responde Can/CanAny/CanAll sobre una tabla rol → permisos inmutable.
type Evaluator struct {
	grants map[string]map[string]struct{}
}

// NewEvaluator copia la tabla recibida; modificarla después no afecta al evaluador.
func NewEvaluator(table map[string][]string) *Evaluator {
	grants := make(map[string]map[string]struct{}, len(table))
	for role, perms := range table {
		set := make(map[string]struct{}, len(perms))
		for _, p := range perms {
			p = strings.TrimSpace(p)
			if p != "" {
				set[p] = struct{}{}
			}
		}
		grants[role] = set
	}
	return &Evaluator{grants: grants}
}

// Can indica si s tiene permission. IsAdmin siempre pasa.
// Se aceptan los comodines "recurso:*" y "*:*" en la tabla.
func (e *Evaluator) Can(s Subject, permission string) bool {
	if s.IsAdmin {
		return true
	}
	set, ok := e.grants[s.Role]
	if !ok {
		return false
	}
	if _, ok := set[permission]; ok {
		return true
	}
	resource, _, found := strings.Cut(permission, ":")
	if !found {
		return false
	}
	if _, ok := set[resource+":"+Wildcard]; ok {
		return true
	}
	_, ok = set[Wildcard+":"+Wildcard]
	return ok
}

// CanAny corta en el primer permiso concedido. Sin permisos devuelve false (salvo admin).
func (e *Evaluator) CanAny(s Subject, permissions ...string) bool {
	if s.IsAdmin {
		return true
	}
	for _, p := range permissions {
		if e.Can(s, p) {
			return true
		}
	}
	return false
}

// CanAll corta en el primer permiso denegado.
func (e *Evaluator) CanAll(s Subject, permissions ...string) bool {
	if s.IsAdmin {
		return true
	}
	for _, p := range permissions {
		if !e.Can(s, p) {
			return false
		}
	}
	return true
}

// Permissions devuelve el conjunto ordenado concedido al rol de s.
// Para administradores devuelve "*:*".
func (e *Evaluator) Permissions(s Subject) []string {
	if s.IsAdmin {
		return []string{Wildcard + ":" + Wildcard}
	}
	set := e.grants[s.Role]
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HasRole indica si el rol tiene entrada en la tabla.
func (e *Evaluator) HasRole(role string) bool {
	_, ok := e.grants[role]
	return ok
}

// Roles devuelve los roles conocidos ordenados.
func (e *Evaluator) Roles() []string {
	out := make([]string, 0, len(e.grants))
	for r := range e.grants {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
