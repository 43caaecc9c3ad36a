package dto

import (
	"time"

	"skill-passport/internal/domain/skill"
	"skill-passport/internal/search"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID              uuid.UUID  `json:"id"`
	StudentID       uuid.UUID  `json:"studentId"`
	StudentName     string     `json:"studentName"`
	StudentEmail    string     `json:"studentEmail"`
	StudentProgram  string     `json:"studentProgram"`
	SkillName       string     `json:"skillName"`
	Category        string     `json:"category"`
	Description     string     `json:"description"`
	Evidence        string     `json:"evidence"`
	Issuer          string     `json:"issuer"`
	IssuedBy        string     `json:"issuedBy"`
	IssuedByEmail   string     `json:"issuedByEmail"`
	Status          string     `json:"status"`
	DateRequested   time.Time  `json:"dateRequested"`
	DateVerified    *time.Time `json:"dateVerified,omitempty"`
	VerifiedBy      string     `json:"verifiedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

type StudentResponse struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Program string          `json:"program"`
	Skills  []SkillResponse `json:"skills"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{
		ID:              s.ID,
		StudentID:       s.StudentID,
		StudentName:     s.StudentName,
		StudentEmail:    s.StudentEmail,
		StudentProgram:  s.StudentProgram,
		SkillName:       s.SkillName,
		Category:        s.Category,
		Description:     s.Description,
		Evidence:        s.Evidence,
		Issuer:          s.Issuer,
		IssuedBy:        s.IssuedBy,
		IssuedByEmail:   s.IssuedByEmail,
		Status:          string(s.Status),
		DateRequested:   s.DateRequested,
		DateVerified:    s.DateVerified,
		VerifiedBy:      s.VerifiedBy,
		RejectionReason: s.RejectionReason,
	}
}

func NewSkillResponses(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewSkillResponse(it))
	}
	return out
}

func NewStudentResponses(items []search.StudentSummary) []StudentResponse {
	out := make([]StudentResponse, 0, len(items))
	for _, it := range items {
		out = append(out, StudentResponse{
			ID:      it.ID,
			Name:    it.Name,
			Email:   it.Email,
			Program: it.Program,
			Skills:  NewSkillResponses(it.Skills),
		})
	}
	return out
}
