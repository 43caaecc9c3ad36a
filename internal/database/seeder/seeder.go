// Package seeder loads demo accounts and skill records for local runs. Data
// goes through the use cases, so it works against any store driver.
package seeder

import (
	"context"

	"skill-passport/internal/domain/user"
	"skill-passport/internal/logging"
	ucauth "skill-passport/internal/usecase/auth"
	ucskill "skill-passport/internal/usecase/skill"
)

type Deps struct {
	Auth   ucauth.AuthUsecase
	Skills ucskill.SkillUsecase
	Users  user.Repository
	Logger logging.Logger
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, deps Deps) error
}
