package http

import "github.com/gofiber/fiber/v2"

// render pinta una vista añadiendo lo que toda página necesita: el perfil
// autenticado, sus capacidades (para el menú condicionado por rol) y el flash
// pendiente.
func render(c *fiber.Ctx, name string, bind fiber.Map, layouts ...string) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	user := CurrentUser(c)
	bind["User"] = user
	bind["Caps"] = user.Capabilities()
	if _, ok := bind["Flash"]; !ok {
		bind["Flash"] = TakeFlash(c)
	}
	return c.Render(name, bind, layouts...)
}
