package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Documentos-api/internal/application/auth"
	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/rbac"
	"github.com/jhoicas/Documentos-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Documentos-api/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	ev := rbac.NewEvaluator(map[string][]string{
		entity.RoleVendedor:  {"quotation:create", "quotation:view"},
		entity.RoleBodeguero: {"stock:*"},
	})
	return auth.NewAuthUseCase(s.Users(), ev, auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "test"}), s
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Example.com", Password: "secreto-123", Role: entity.RoleBodeguero})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, entity.UserStatusActive, u.Status)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreto-123"})
	require.NoError(t, err)
	assert.Equal(t, 1800, res.ExpiresIn)

	claims, err := pkgjwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleBodeguero, claims.Role)
	assert.False(t, claims.IsAdmin)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreto-123", Role: "auditor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreto-123"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.CO", Password: "secreto-123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_Rechazos(t *testing.T) {
	uc, s := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "luis@example.com", Password: "secreto-123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "luis@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "secreto-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "mismo error que password incorrecta")

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto-123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.Users().Create(ctx, &entity.User{Email: "baja@example.com", PasswordHash: string(hash), Status: entity.UserStatusInactive}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@example.com", Password: "secreto-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "usuario inactivo")
}

func TestPermissions(t *testing.T) {
	uc, _ := newAuth(t)

	p := uc.Permissions(rbac.Subject{UserID: "u1", Role: entity.RoleVendedor})
	assert.Equal(t, []string{"quotation:create", "quotation:view"}, p.Permissions)

	p = uc.Permissions(rbac.Subject{UserID: "root", Role: entity.RoleAdmin, IsAdmin: true})
	assert.Equal(t, []string{"*:*"}, p.Permissions)
	assert.True(t, p.IsAdmin)
}
