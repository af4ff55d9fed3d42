package http

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
	"github.com/tu-usuario/thelab-panel/internal/session"
)

// Locals key para el perfil autenticado en Fiber.
const LocalUser = "current_user"

// cookieJar adapta las cookies de la petición al Storage del Session Store:
// la sesión persiste del lado del cliente en una única cookie firmada.
type cookieJar struct {
	c   *fiber.Ctx
	ttl time.Duration
}

func (j cookieJar) Read(key string) (string, bool) {
	v := j.c.Cookies(key)
	return v, v != ""
}

func (j cookieJar) Write(key, value string) {
	j.c.Cookie(&fiber.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(j.ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (j cookieJar) Delete(key string) {
	j.c.Cookie(&fiber.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Sessions fabrica el Store de sesión ligado a cada petición. Se inyecta en
// los handlers en lugar de existir un singleton global.
type Sessions struct {
	codec *session.Codec
	ttl   time.Duration
}

// NewSessions construye la fábrica.
func NewSessions(codec *session.Codec, ttl time.Duration) *Sessions {
	return &Sessions{codec: codec, ttl: ttl}
}

// Store devuelve el Session Store sobre la cookie jar de la petición.
func (s *Sessions) Store(c *fiber.Ctx) *session.Store {
	return session.New(s.codec, cookieJar{c: c, ttl: s.ttl})
}

// RequireSession guardia de rutas protegidas. Se evalúa en cada navegación,
// nunca se cachea: sin sesión redirige al login recordando la ruta pedida para
// volver a ella tras autenticarse; con sesión deja el perfil en c.Locals.
func RequireSession(sessions *Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := sessions.Store(c).Current()
		if profile == nil {
			return c.Redirect("/login?from="+url.QueryEscape(c.Path()), fiber.StatusFound)
		}
		c.Locals(LocalUser, profile)
		return c.Next()
	}
}

// RequireCapability autoriza contra la Role Policy central. Un perfil sin la
// capacidad vuelve a la portada; jamás se muestra contenido vedado ni una
// página en blanco. Debe usarse DESPUÉS de RequireSession.
func RequireCapability(allowed func(entity.Capabilities) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !allowed(user.Capabilities()) {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// CurrentUser devuelve el perfil del contexto (después de RequireSession).
func CurrentUser(c *fiber.Ctx) *entity.UserProfile {
	v := c.Locals(LocalUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.UserProfile)
	return u
}

// sanitizeReturnPath acepta solo rutas internas del panel; cualquier otra cosa
// vuelve a la portada.
func sanitizeReturnPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/"
	}
	return p
}
