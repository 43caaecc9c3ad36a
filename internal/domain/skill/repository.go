package skill

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("skill not found")
	ErrNotPending = errors.New("skill already verified")
)

// Repository is the skill half of the record store. Listing methods return
// skills in insertion order.
type Repository interface {
	CreateSkill(ctx context.Context, s Skill) (Skill, error)
	GetSkillByID(ctx context.Context, id uuid.UUID) (Skill, error)
	GetSkillsByStudentID(ctx context.Context, studentID uuid.UUID) ([]Skill, error)
	GetPendingSkills(ctx context.Context) ([]Skill, error)
	GetAllApprovedSkills(ctx context.Context) ([]Skill, error)

	ApproveSkill(ctx context.Context, id uuid.UUID, verifiedBy string, at time.Time) (Skill, error)
	RejectSkill(ctx context.Context, id uuid.UUID, verifiedBy, reason string, at time.Time) (Skill, error)
}
