package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/tu-usuario/thelab-panel/internal/client"
	apphttp "github.com/tu-usuario/thelab-panel/internal/interfaces/http"
	"github.com/tu-usuario/thelab-panel/internal/session"
	"github.com/tu-usuario/thelab-panel/pkg/config"
	"github.com/tu-usuario/thelab-panel/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando panel")

	codec := session.NewCodec(cfg.Session.Secret, cfg.App.Name, cfg.Session.TTL)
	sessions := apphttp.NewSessions(codec, cfg.Session.TTL)

	base := client.New(cfg.API.BaseURL, cfg.API.Timeout)
	authClient := client.NewAuth(base)
	usersClient := client.NewUsers(base)
	productsClient := client.NewProducts(base)

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		Views:        engine,
		ViewsLayout:  "layouts/main",
	})
	app.Use(recover.New())

	apphttp.Router(app, apphttp.RouterDeps{
		Sessions: sessions,
		Auth:     authClient,
		Users:    usersClient,
		Products: productsClient,
		Log:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("panel detenido")
}
