package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/application/ports"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/rbac"
	apphttp "github.com/jhoicas/Documentos-api/internal/interfaces/http"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestErrorHandler_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrInvalidTransition, http.StatusBadRequest, "INVALID_TRANSITION"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrStoreUnavailable, http.StatusInternalServerError, "STORE_UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error {
				return fmt.Errorf("submit QUO/2025/05/001 (draft): %w", tc.err)
			})
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tc.code, body.Code)
			if tc.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Error, "QUO/2025/05/001", "los 500 no exponen el detalle")
			} else {
				assert.Contains(t, body.Error, "QUO/2025/05/001")
			}
		})
	}
}

func TestErrorHandler_RutaInexistente(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ROUTE_NOT_FOUND", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func permissionApp(perms ...string) *fiber.App {
	eval := rbac.NewEvaluator(map[string][]string{
		"vendedor":  {"quotation:view", "quotation:create"},
		"bodeguero": {"stock:*"},
	})
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(eval, perms...),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	)
	return app
}

func TestRequirePermission(t *testing.T) {
	cases := []struct {
		name   string
		perms  []string
		role   string
		status int
	}{
		{"permiso directo", []string{"quotation:view"}, "vendedor", http.StatusNoContent},
		{"todos los permisos", []string{"quotation:view", "quotation:create"}, "vendedor", http.StatusNoContent},
		{"falta uno", []string{"quotation:view", "quotation:approve"}, "vendedor", http.StatusForbidden},
		{"comodín de recurso", []string{"stock:import"}, "bodeguero", http.StatusNoContent},
		{"rol desconocido", []string{"quotation:view"}, "invitado", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, permissionApp(tc.perms...), tokenForRole(t, tc.role))
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequirePermission_AdminOmiteTabla(t *testing.T) {
	app := permissionApp("quotation:delete")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el rol admin sin is_admin depende de la tabla")

	tok := adminToken(t)
	resp = doRequest(t, app, tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRequirePermission_SinIdentidad(t *testing.T) {
	eval := rbac.NewEvaluator(nil)
	app := fiber.New()
	app.Get("/protected", apphttp.RequirePermission(eval, "quotation:view"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotency
// ──────────────────────────────────────────────────────────────────────────────

// memIdem IdempotencyStore en memoria con el mismo contrato que el de Redis.
type memIdem struct {
	mu      sync.Mutex
	entries map[string]*ports.IdempotentResponse
	aborted int
}

func newMemIdem() *memIdem { return &memIdem{entries: map[string]*ports.IdempotentResponse{}} }

func (m *memIdem) Begin(_ context.Context, key string) (*ports.IdempotentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.entries[key]
	if !ok {
		m.entries[key] = nil
		return nil, nil
	}
	if prev == nil {
		return nil, ports.ErrIdempotencyInProgress
	}
	return prev, nil
}

func (m *memIdem) Complete(_ context.Context, key string, resp ports.IdempotentResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = &resp
	return nil
}

func (m *memIdem) Abort(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	m.aborted++
	return nil
}

func idempotentApp(store ports.IdempotencyStore, status *int, calls *int) *fiber.App {
	app := fiber.New()
	app.Post("/things",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.Idempotency(store, logger.Nop()),
		func(c *fiber.Ctx) error {
			*calls++
			return c.Status(*status).JSON(fiber.Map{"n": *calls})
		},
	)
	return app
}

func postThing(t *testing.T, app *fiber.App, auth, key string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	if key != "" {
		req.Header.Set(apphttp.HeaderIdempotencyKey, key)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return resp, fmt.Sprint(body["n"])
}

func TestIdempotency_RepiteRespuestaGuardada(t *testing.T) {
	store := newMemIdem()
	status, calls := http.StatusCreated, 0
	app := idempotentApp(store, &status, &calls)
	auth := tokenForRole(t, "vendedor")

	first, n1 := postThing(t, app, auth, "k-1")
	second, n2 := postThing(t, app, auth, "k-1")

	assert.Equal(t, http.StatusCreated, first.StatusCode)
	assert.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Equal(t, n1, n2, "la segunda respuesta es la guardada")
	assert.Equal(t, 1, calls, "el handler corre una sola vez")
	assert.Equal(t, "true", second.Header.Get(apphttp.HeaderIdempotentReplay))
	assert.Empty(t, first.Header.Get(apphttp.HeaderIdempotentReplay))

	_, n3 := postThing(t, app, auth, "k-2")
	assert.Equal(t, "2", n3, "otra clave es otra petición")
}

func TestIdempotency_ClaveAisladaPorUsuario(t *testing.T) {
	store := newMemIdem()
	status, calls := http.StatusCreated, 0
	app := idempotentApp(store, &status, &calls)

	postThing(t, app, tokenForRole(t, "vendedor"), "k-1")
	other, err := jwtFor("otro-usuario", "vendedor")
	require.NoError(t, err)
	postThing(t, app, other, "k-1")

	assert.Equal(t, 2, calls)
}

func TestIdempotency_ErrorLiberaLaClave(t *testing.T) {
	store := newMemIdem()
	status, calls := http.StatusConflict, 0
	app := idempotentApp(store, &status, &calls)
	auth := tokenForRole(t, "vendedor")

	resp, _ := postThing(t, app, auth, "k-1")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, 1, store.aborted)

	status = http.StatusCreated
	resp, _ = postThing(t, app, auth, "k-1")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 2, calls, "tras un error la misma clave se puede reintentar")
}

func TestIdempotency_EnCurso409(t *testing.T) {
	store := newMemIdem()
	status, calls := http.StatusCreated, 0
	app := idempotentApp(store, &status, &calls)
	scoped := testUserID + ":POST:/things:k-1"
	_, err := store.Begin(context.Background(), scoped)
	require.NoError(t, err)

	resp, _ := postThing(t, app, tokenForRole(t, "vendedor"), "k-1")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, 0, calls)
}

func TestIdempotency_SinClaveOSinAlmacen(t *testing.T) {
	status, calls := http.StatusCreated, 0
	app := idempotentApp(newMemIdem(), &status, &calls)
	auth := tokenForRole(t, "vendedor")
	postThing(t, app, auth, "")
	postThing(t, app, auth, "")
	assert.Equal(t, 2, calls)

	calls = 0
	app = idempotentApp(nil, &status, &calls)
	postThing(t, app, auth, "k-1")
	postThing(t, app, auth, "k-1")
	assert.Equal(t, 2, calls)
}
