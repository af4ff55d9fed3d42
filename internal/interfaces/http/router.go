package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/thelab-panel/internal/client"
	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
	"github.com/tu-usuario/thelab-panel/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions *Sessions
	Auth     *client.Auth
	Users    *client.Users
	Products *client.Products
	Log      *logger.Logger
}

// Router registra las rutas del panel. El guard se evalúa en cada navegación:
// primero sesión, luego capacidad por sección.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	// Auth (público)
	authHandler := NewAuthHandler(deps.Sessions, deps.Auth, deps.Users, deps.Log)
	app.Get("/login", authHandler.Show)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren sesión)
	protected := app.Group("/", RequireSession(deps.Sessions))

	dashboardHandler := NewDashboardHandler()
	protected.Get("/", dashboardHandler.Show)

	// Productos (sysadmin, admin, manager)
	products := protected.Group("/products", RequireCapability(func(caps entity.Capabilities) bool {
		return caps.CanViewProducts
	}))
	productHandler := NewProductHandler(deps.Products, deps.Log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.QuickAdd)
	products.Get("/:id", productHandler.Detail)
	products.Post("/:id", productHandler.Update)
	products.Post("/:id/delete", productHandler.Delete)

	// Usuarios (solo sysadmin)
	users := protected.Group("/users", RequireCapability(func(caps entity.Capabilities) bool {
		return caps.CanViewUsers
	}))
	userHandler := NewUserHandler(deps.Users, deps.Log)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Post("/:id", userHandler.Update)
	users.Post("/:id/delete", userHandler.Delete)

	// Comodín: cualquier otra ruta vuelve a la portada.
	app.Use(func(c *fiber.Ctx) error {
		return c.Redirect("/", fiber.StatusFound)
	})
}

// RequestLogger deja una línea estructurada por petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("petición")
		return err
	}
}
