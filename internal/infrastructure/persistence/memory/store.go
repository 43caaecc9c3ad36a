// Package memory holds the process-lifetime record store. All users and
// skills live in one Store value and are lost when it is closed or the
// process exits.
package memory

import (
	"context"
	"sync"
	"time"

	"skill-passport/internal/domain/skill"
	"skill-passport/internal/domain/user"

	"github.com/google/uuid"
)

// Store implements user.Repository and skill.Repository. One lock guards
// both collections so a reader never sees a half-applied mutation.
type Store struct {
	mu sync.RWMutex

	users  map[string]user.User
	skills []skill.Skill
	byID   map[uuid.UUID]int
}

var (
	_ user.Repository  = (*Store)(nil)
	_ skill.Repository = (*Store)(nil)
)

func New() *Store {
	return &Store{
		users: make(map[string]user.User),
		byID:  make(map[uuid.UUID]int),
	}
}

// Close drops every record. The store stays usable and empty afterwards.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]user.User)
	s.skills = nil
	s.byID = make(map[uuid.UUID]int)
	return nil
}

func (s *Store) CreateUser(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return user.ErrDuplicateEmail
	}
	s.users[u.Email] = u
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *Store) CreateSkill(_ context.Context, sk skill.Skill) (skill.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.skills = append(s.skills, cloneSkill(sk))
	// first insert wins for GetSkillByID
	if _, ok := s.byID[sk.ID]; !ok {
		s.byID[sk.ID] = len(s.skills) - 1
	}
	return cloneSkill(sk), nil
}

func (s *Store) GetSkillByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return skill.Skill{}, skill.ErrNotFound
	}
	return cloneSkill(s.skills[idx]), nil
}

func (s *Store) GetSkillsByStudentID(_ context.Context, studentID uuid.UUID) ([]skill.Skill, error) {
	return s.filter(func(sk skill.Skill) bool { return sk.StudentID == studentID }), nil
}

func (s *Store) GetPendingSkills(_ context.Context) ([]skill.Skill, error) {
	return s.filter(func(sk skill.Skill) bool { return sk.Status == skill.StatusPending }), nil
}

func (s *Store) GetAllApprovedSkills(_ context.Context) ([]skill.Skill, error) {
	return s.filter(func(sk skill.Skill) bool { return sk.Status == skill.StatusApproved }), nil
}

func (s *Store) ApproveSkill(_ context.Context, id uuid.UUID, verifiedBy string, at time.Time) (skill.Skill, error) {
	return s.transition(id, func(sk *skill.Skill) error {
		return sk.Approve(verifiedBy, at)
	})
}

func (s *Store) RejectSkill(_ context.Context, id uuid.UUID, verifiedBy, reason string, at time.Time) (skill.Skill, error) {
	return s.transition(id, func(sk *skill.Skill) error {
		return sk.Reject(verifiedBy, reason, at)
	})
}

// transition applies fn to a copy and writes it back only on success, so a
// refused transition leaves the stored record untouched.
func (s *Store) transition(id uuid.UUID, fn func(*skill.Skill) error) (skill.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return skill.Skill{}, skill.ErrNotFound
	}

	next := cloneSkill(s.skills[idx])
	if err := fn(&next); err != nil {
		return skill.Skill{}, err
	}
	s.skills[idx] = next
	return cloneSkill(next), nil
}

func (s *Store) filter(keep func(skill.Skill) bool) []skill.Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]skill.Skill, 0)
	for _, sk := range s.skills {
		if keep(sk) {
			out = append(out, cloneSkill(sk))
		}
	}
	return out
}

func cloneSkill(sk skill.Skill) skill.Skill {
	if sk.DateVerified != nil {
		t := *sk.DateVerified
		sk.DateVerified = &t
	}
	return sk
}
