package app

import (
	"context"
	"fmt"
	"strings"

	"skill-passport/internal/config"
	"skill-passport/internal/database/seeder"
	"skill-passport/internal/delivery/http/handler"
	"skill-passport/internal/delivery/http/middleware"
	"skill-passport/internal/delivery/http/routes"
	"skill-passport/internal/logging"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the fiber app around an already constructed container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger logging.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.App.SeedDemo {
		err := seeder.Runner{Seeders: seeder.Defaults()}.Run(ctx, seeder.Deps{
			Auth:   c.Auth,
			Skills: c.Skill,
			Users:  c.Users,
			Logger: c.Logger,
		})
		if err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger logging.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	checks := map[string]handler.Pinger{}
	if c.Config.Redis.Enabled {
		checks["redis"] = c.Cache
	}
	if c.DB != nil {
		checks["postgres"] = c.DB
	}

	session := middleware.NewSessionMiddleware(c.Gate, c.Config.Session.CookieName)
	registry := routes.NewRegistry(
		handler.NewHealthHandler(checks),
		handler.NewAuthHandler(c.Auth, session, handler.CookieConfig{
			Name:   c.Config.Session.CookieName,
			Secure: c.Config.IsProduction(),
		}),
		handler.NewSkillHandler(c.Skill),
		session,
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
