package dto

import (
	"time"

	"skill-passport/internal/domain/user"

	"github.com/google/uuid"
)

// UserResponse is the public view of a user. It never carries the password
// hash.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Program    string    `json:"program,omitempty"`
	Department string    `json:"department,omitempty"`
	Company    string    `json:"company,omitempty"`
	GitHub     string    `json:"github,omitempty"`
	LinkedIn   string    `json:"linkedin,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		Program:    u.Program,
		Department: u.Department,
		Company:    u.Company,
		GitHub:     u.GitHub,
		LinkedIn:   u.LinkedIn,
		CreatedAt:  u.CreatedAt,
	}
}
