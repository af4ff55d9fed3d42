package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/thelab-panel/internal/client"
	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
	"github.com/tu-usuario/thelab-panel/pkg/logger"
)

// AuthHandler login y logout del panel.
type AuthHandler struct {
	sessions *Sessions
	auth     *client.Auth
	users    *client.Users
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(sessions *Sessions, auth *client.Auth, users *client.Users, log *logger.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, auth: auth, users: users, log: log}
}

// Show GET /login. Con sesión activa redirige a la portada; si no, pinta el
// formulario con el selector de perfiles que expone el backend de prototipo.
func (h *AuthHandler) Show(c *fiber.Ctx) error {
	if h.sessions.Store(c).Current() != nil {
		return c.Redirect("/", fiber.StatusFound)
	}
	from := sanitizeReturnPath(c.Query("from"))

	var loadErr string
	profiles, err := h.users.List(c.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("cargar perfiles para el login")
		loadErr = err.Error()
	}
	return h.renderLogin(c, fiber.Map{
		"Users": profiles,
		"From":  from,
		"Error": loadErr,
	})
}

// Login POST /login. Valida contra el backend, puebla el Session Store y
// navega a la ruta originalmente pedida (o a la portada).
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	store := h.sessions.Store(c)
	if store.Current() != nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	fullName := strings.TrimSpace(c.FormValue("fullName"))
	password := c.FormValue("password")
	from := sanitizeReturnPath(c.FormValue("from"))

	if fullName == "" {
		// Rechazo de validación: sin petición y sin mensaje de error.
		return c.Redirect("/login?from="+url.QueryEscape(from), fiber.StatusFound)
	}

	profile, err := h.auth.Login(c.Context(), fullName, password)
	if err != nil {
		h.log.Warn().Err(err).Str("fullName", fullName).Msg("login rechazado")
		profiles, _ := h.users.List(c.Context())
		return h.renderLogin(c, fiber.Map{
			"Users":    profiles,
			"From":     from,
			"FullName": fullName,
			"Error":    err.Error(),
		})
	}

	if err := store.Login(*profile); err != nil {
		h.log.Error().Err(err).Msg("persistir sesión")
		return h.renderLogin(c, fiber.Map{
			"From":  from,
			"Error": "No se pudo iniciar sesion",
		})
	}

	h.log.Info().Int64("userId", profile.ID).Str("role", profile.Role).Msg("sesión iniciada")
	return c.Redirect(from, fiber.StatusFound)
}

// Logout POST /logout. Limpia la sesión y vuelve al login.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Store(c).Logout()
	return c.Redirect("/login", fiber.StatusFound)
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, bind fiber.Map) error {
	if _, ok := bind["Users"]; !ok {
		bind["Users"] = []entity.UserProfile(nil)
	}
	return c.Render("login", bind, "layouts/auth")
}
