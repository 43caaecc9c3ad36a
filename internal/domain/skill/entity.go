package skill

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

const DefaultRejectionReason = "No reason provided"

// Skill is a single endorsement request. The Student* fields are a snapshot
// of the owning student taken when the request was created and are not
// refreshed afterwards.
type Skill struct {
	ID uuid.UUID

	StudentID      uuid.UUID
	StudentName    string
	StudentEmail   string
	StudentProgram string

	SkillName     string
	Category      string
	Description   string
	Evidence      string
	Issuer        string
	IssuedBy      string
	IssuedByEmail string

	Status          Status
	DateRequested   time.Time
	DateVerified    *time.Time
	VerifiedBy      string
	RejectionReason string
}

func (s Skill) IsTerminal() bool {
	return s.Status == StatusApproved || s.Status == StatusRejected
}

// Approve moves a pending skill to approved.
func (s *Skill) Approve(verifiedBy string, at time.Time) error {
	if s.Status != StatusPending {
		return ErrNotPending
	}
	t := at.UTC()
	s.Status = StatusApproved
	s.DateVerified = &t
	s.VerifiedBy = verifiedBy
	return nil
}

// Reject moves a pending skill to rejected. A blank reason is replaced with
// DefaultRejectionReason.
func (s *Skill) Reject(verifiedBy, reason string, at time.Time) error {
	if s.Status != StatusPending {
		return ErrNotPending
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectionReason
	}
	t := at.UTC()
	s.Status = StatusRejected
	s.DateVerified = &t
	s.VerifiedBy = verifiedBy
	s.RejectionReason = reason
	return nil
}
