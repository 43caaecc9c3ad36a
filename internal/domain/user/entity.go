package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleEmployer Role = "employer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleEmployer:
		return true
	default:
		return false
	}
}

// User is keyed by Email for every lookup. Role never changes after creation.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         Role

	Program    string
	Department string
	Company    string
	GitHub     string
	LinkedIn   string

	CreatedAt time.Time
}

func (u User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
