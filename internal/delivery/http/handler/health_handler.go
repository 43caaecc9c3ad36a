package handler

import (
	"context"
	"time"

	"skill-passport/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is any backend whose reachability the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health answers 200 while the process serves requests. Backend state is
// reported in data and never fails the check.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	if len(h.checks) == 0 {
		return response.OK(c, nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			status[name] = "down"
			continue
		}
		status[name] = "up"
	}
	return response.OK(c, status)
}
