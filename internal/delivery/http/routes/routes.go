package routes

import (
	"skill-passport/internal/delivery/http/handler"
	"skill-passport/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	auth    *handler.AuthHandler
	skill   *handler.SkillHandler
	session *middleware.SessionMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	skill *handler.SkillHandler,
	session *middleware.SessionMiddleware,
) *Registry {
	return &Registry{health: health, auth: auth, skill: skill, session: session}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1 := app.Group("/api").Group("/v1")

	if r.auth != nil {
		r.auth.RegisterRoutes(v1.Group("/auth"))
	}
	if r.skill != nil {
		r.skill.RegisterRoutes(v1, r.session)
	}
}
