package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain/rbac"
)

// permissionChecker es el contrato mínimo que necesita el middleware.
// Lo implementa *rbac.Evaluator.
type permissionChecker interface {
	CanAll(s rbac.Subject, permissions ...string) bool
}

// RequirePermission verifica que el sujeto del token tenga todos los permisos "recurso:acción".
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 UNAUTHORIZED si no hay identidad en el contexto.
//   - 403 FORBIDDEN si falta alguno de los permisos.
func RequirePermission(checker permissionChecker, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, checker, permissions...)
	}
}

func authorize(c *fiber.Ctx, checker permissionChecker, permissions ...string) error {
	subject := GetSubject(c)
	if subject.UserID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:  "UNAUTHORIZED",
			Error: "user_id no encontrado en el token",
		})
	}
	if !checker.CanAll(subject, permissions...) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:  "FORBIDDEN",
			Error: "permiso requerido: " + strings.Join(permissions, ", "),
		})
	}
	return c.Next()
}
