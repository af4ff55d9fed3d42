package http

import "github.com/gofiber/fiber/v2"

// DashboardHandler portada del panel con accesos rápidos condicionados por
// las capacidades del rol (misma Role Policy que el guard, sin listas ad hoc).
type DashboardHandler struct{}

// NewDashboardHandler construye el handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Show GET /.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	return render(c, "dashboard", fiber.Map{})
}
