// Package events publishes skill status changes to a message broker so that
// other services (mailers, audit) can react to them.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSkillRequested Type = "skill.requested"
	TypeSkillApproved  Type = "skill.approved"
	TypeSkillRejected  Type = "skill.rejected"
)

type SkillEvent struct {
	Type         Type      `json:"type"`
	SkillID      uuid.UUID `json:"skill_id"`
	SkillName    string    `json:"skill_name"`
	StudentID    uuid.UUID `json:"student_id"`
	StudentEmail string    `json:"student_email"`
	Actor        string    `json:"actor"`
	Reason       string    `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishSkillEvent(ctx context.Context, evt SkillEvent) error
	Close() error
}

type Noop struct{}

func (Noop) PublishSkillEvent(context.Context, SkillEvent) error { return nil }
func (Noop) Close() error                                        { return nil }
