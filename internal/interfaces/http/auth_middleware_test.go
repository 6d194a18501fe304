package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/mitiendita-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/mitiendita-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "mitiendita-test"
	testExpMin    = 60
)

// buildProtectedApp construye una aplicación Fiber mínima con AuthMiddleware y
// un handler dummy que devuelve el UserID cargado en locals.
func buildProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func doProtectedRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoCargaUserID(t *testing.T) {
	app := buildProtectedApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doProtectedRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), testUserID, "el handler debe ver el UserID del token")
}

func TestAuthMiddleware_SinHeaderDevuelve401(t *testing.T) {
	app := buildProtectedApp()

	resp := doProtectedRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalidoDevuelve401(t *testing.T) {
	app := buildProtectedApp()

	for _, header := range []string{"token-sin-esquema", "Basic abc123"} {
		resp := doProtectedRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q debe rechazarse", header)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_TokenInvalidoDevuelve401(t *testing.T) {
	app := buildProtectedApp()

	resp := doProtectedRequest(t, app, "Bearer no-es-un-jwt")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FirmaIncorrectaDevuelve401(t *testing.T) {
	app := buildProtectedApp()
	tok, err := pkgjwt.Generate("otro-secret-distinto", testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doProtectedRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpiradoDevuelve401(t *testing.T) {
	app := buildProtectedApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -5)
	require.NoError(t, err)

	resp := doProtectedRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
