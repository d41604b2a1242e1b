package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	apphttp "github.com/jhoicas/taller-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/taller-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "taller-api-test"
	testExpMin    = 60
)

// fakeAuthenticator resuelve tokens contra un map en memoria, igual que el
// AuthUseCase real resuelve el subject contra la DB.
type fakeAuthenticator struct {
	byToken map[string]*entity.User
}

func (a *fakeAuthenticator) Authenticate(token string) (*entity.User, error) {
	user, ok := a.byToken[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para resolver el token a un usuario
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(authn *fakeAuthenticator, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(authn),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetUser(c).Role,
			})
		},
	)
	return app
}

func authnForRole(role string) *fakeAuthenticator {
	return &fakeAuthenticator{byToken: map[string]*entity.User{
		"tok-" + role: {ID: testUserID, Email: role + "@x.com", Role: role},
	}}
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
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
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Matriz de autorización: para cada rol y conjunto permitido, el acceso se
// concede solo si el rol pertenece al conjunto (403 en caso contrario).
func TestRequireRole_MatrizDeRoles(t *testing.T) {
	roles := []string{entity.RoleCustomer, entity.RoleMechanic, entity.RoleAdmin}
	allowedSets := map[string][]string{
		"solo admin":       {entity.RoleAdmin},
		"mecanico o admin": {entity.RoleMechanic, entity.RoleAdmin},
		"cliente o admin":  {entity.RoleCustomer, entity.RoleAdmin},
	}

	for name, allowed := range allowedSets {
		inSet := map[string]bool{}
		for _, r := range allowed {
			inSet[r] = true
		}
		for _, role := range roles {
			authn := authnForRole(role)
			app := buildTestApp(authn, allowed...)
			resp := doRequest(t, app, "Bearer tok-"+role)
			want := http.StatusForbidden
			if inSet[role] {
				want = http.StatusOK
			}
			assert.Equalf(t, want, resp.StatusCode,
				"ruta %q con rol %s: se esperaba %d", name, role, want)
			resp.Body.Close()
		}
	}
}

func TestRequireRole_RolPermitido_Responde200(t *testing.T) {
	authn := authnForRole(entity.RoleAdmin)
	app := buildTestApp(authn, entity.RoleAdmin)

	resp := doRequest(t, app, "Bearer tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequireRole_RolBloqueado_Responde403(t *testing.T) {
	authn := authnForRole(entity.RoleCustomer)
	app := buildTestApp(authn, entity.RoleAdmin)

	resp := doRequest(t, app, "Bearer tok-customer")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"customer no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

func TestAuthMiddleware_SinAuthHeader_Responde401(t *testing.T) {
	app := buildTestApp(authnForRole(entity.RoleAdmin), entity.RoleAdmin)
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido_Responde401(t *testing.T) {
	app := buildTestApp(authnForRole(entity.RoleAdmin), entity.RoleAdmin)
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenNoResuelve_Responde401(t *testing.T) {
	// Token bien formado pero cuyo subject ya no existe: el middleware debe
	// rechazarlo porque la autenticación re-resuelve contra la DB.
	app := buildTestApp(&fakeAuthenticator{byToken: map[string]*entity.User{}}, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-de-usuario-borrado")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — decode estricto del payload
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleMechanic, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, entity.RoleMechanic, role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_TokenSinRol_RetornaError(t *testing.T) {
	// El payload es una estructura fija: un token sin el claim de rol se
	// rechaza en el parse, no se tolera con lookups best-effort.
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token sin rol debe rechazarse")
}
