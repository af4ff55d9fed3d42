package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/thelab-panel/internal/client"
	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
	"github.com/tu-usuario/thelab-panel/internal/session"
	"github.com/tu-usuario/thelab-panel/pkg/logger"
)

// buildTestApp arma el panel completo (router + guard) contra un backend de
// prueba. Los tests de esta suite solo recorren rutas que terminan en
// redirecciones, así que no hace falta motor de vistas.
func buildTestApp(backendURL string) (*fiber.App, *session.Codec) {
	codec := session.NewCodec("secreto-de-prueba", "thelab-panel", time.Hour)
	sessions := NewSessions(codec, time.Hour)
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	base := client.New(backendURL, time.Second)
	app := fiber.New()
	Router(app, RouterDeps{
		Sessions: sessions,
		Auth:     client.NewAuth(base),
		Users:    client.NewUsers(base),
		Products: client.NewProducts(base),
		Log:      log,
	})
	return app, codec
}

// sessionCookie emite una cookie de sesión válida para el perfil dado.
func sessionCookie(t *testing.T, codec *session.Codec, fullName, role string) *http.Cookie {
	t.Helper()
	token, err := codec.Encode(entity.UserProfile{
		ID:        7,
		FullName:  fullName,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	return &http.Cookie{Name: session.StorageKey, Value: token}
}

func TestGuardRedirigeAlLoginSinSesion(t *testing.T) {
	// Sin sesión, cualquier ruta protegida redirige al login recordando la
	// ruta pedida para volver a ella tras autenticarse
	app, _ := buildTestApp("http://127.0.0.1:0")

	for _, path := range []string{"/products", "/users", "/products/42", "/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login?from="+url.QueryEscape(path), resp.Header.Get("Location"), path)
	}
}

func TestGuardRechazaCapacidadInsuficiente(t *testing.T) {
	// Un perfil sin la capacidad de la sección vuelve a la portada, nunca ve
	// contenido vedado ni una página en blanco
	app, codec := buildTestApp("http://127.0.0.1:0")

	cases := []struct {
		role string
		path string
	}{
		{entity.RoleManager, "/users"},
		{entity.RoleAdmin, "/users"},
		{entity.RoleService, "/products"},
		{entity.RoleService, "/users"},
		{"becario", "/products"}, // rol desconocido: cero capacidades
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.AddCookie(sessionCookie(t, codec, "Laura", tc.role))
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode, "%s %s", tc.role, tc.path)
		assert.Equal(t, "/", resp.Header.Get("Location"), "%s %s", tc.role, tc.path)
	}
}

func TestLoginRedirigeALaRutaOriginal(t *testing.T) {
	// Tras autenticarse, el usuario aterriza en la ruta que pidió antes de
	// que el guard lo mandara al login
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/auth/login" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"user":{"id":3,"fullName":"Laura","type":"manager"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer backend.Close()

	app, _ := buildTestApp(backend.URL)

	form := url.Values{}
	form.Set("fullName", "Laura")
	form.Set("password", "1234")
	form.Set("from", "/products")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))

	var sessionSet bool
	for _, ck := range resp.Cookies() {
		if ck.Name == session.StorageKey && ck.Value != "" {
			sessionSet = true
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.True(t, sessionSet, "la sesión debe quedar persistida en la cookie")
}

func TestLoginSaneaRutasExternas(t *testing.T) {
	// Un from que apunta fuera del panel se descarta y se aterriza en la
	// portada
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":1,"fullName":"Ana","type":"sysadmin"}}`))
	}))
	defer backend.Close()

	app, _ := buildTestApp(backend.URL)

	for _, from := range []string{"//evil.example", "https://evil.example", ""} {
		form := url.Values{}
		form.Set("fullName", "Ana")
		form.Set("from", from)
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode, from)
		assert.Equal(t, "/", resp.Header.Get("Location"), from)
	}
}

func TestLoginConNombreVacioNoEnviaNada(t *testing.T) {
	// Validación local: sin nombre no hay petición al backend ni mensaje de
	// error, solo la vuelta al formulario
	var backendHits int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHits++
	}))
	defer backend.Close()

	app, _ := buildTestApp(backend.URL)

	form := url.Values{}
	form.Set("fullName", "   ")
	form.Set("from", "/products")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?from=%2Fproducts", resp.Header.Get("Location"))
	assert.Zero(t, backendHits)
}

func TestLogoutLimpiaLaSesion(t *testing.T) {
	app, codec := buildTestApp("http://127.0.0.1:0")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(sessionCookie(t, codec, "Laura", entity.RoleSysadmin))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	var cleared bool
	for _, ck := range resp.Cookies() {
		if ck.Name == session.StorageKey && ck.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "la cookie de sesión debe quedar vaciada")
}

func TestComodinVuelveALaPortada(t *testing.T) {
	app, codec := buildTestApp("http://127.0.0.1:0")

	req := httptest.NewRequest(http.MethodGet, "/no-existe", nil)
	req.AddCookie(sessionCookie(t, codec, "Laura", entity.RoleSysadmin))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestCookieManipuladaEquivaleASinSesion(t *testing.T) {
	app, _ := buildTestApp("http://127.0.0.1:0")

	otherCodec := session.NewCodec("otro-secreto", "thelab-panel", time.Hour)
	token, err := otherCodec.Encode(entity.UserProfile{ID: 1, FullName: "Ana", Role: entity.RoleSysadmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: session.StorageKey, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?from=%2Fusers", resp.Header.Get("Location"))
}

func TestSanitizeReturnPath(t *testing.T) {
	cases := map[string]string{
		"/products":           "/products",
		"/users":              "/users",
		"":                    "/",
		"//evil.example":      "/",
		"https://evil.com":    "/",
		"productos-sin-barra": "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeReturnPath(in), in)
	}
}
