package http

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

// flashCookie cookie efímera para mensajes de una sola petición ("Producto
// creado", "Producto actualizado"): se escribe en el redirect y se consume en
// el siguiente render.
const flashCookie = "thelab-flash"

// SetFlash deja el mensaje para el siguiente render.
func SetFlash(c *fiber.Ctx, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		Expires:  time.Now().Add(time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// TakeFlash lee y limpia el mensaje pendiente; vacío si no hay.
func TakeFlash(c *fiber.Ctx) string {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}
