package seeder

import (
	"context"
	"errors"
	"fmt"

	"skill-passport/internal/logging"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, deps Deps) error {
	if deps.Auth == nil || deps.Skills == nil || deps.Users == nil {
		return errors.New("seeder: missing dependencies")
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, deps); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		deps.Logger.Info(ctx, "seeder finished", "seeder", s.Name())
	}
	return nil
}
