package skill

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-passport/internal/domain/skill"
	"skill-passport/internal/domain/user"
	"skill-passport/internal/infrastructure/events"
	"skill-passport/internal/logging"
	"skill-passport/internal/search"
	"skill-passport/internal/usecase/access"

	"github.com/google/uuid"
)

const unknownProgram = "Unknown"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("skill not found")
	ErrAlreadyVerified = errors.New("skill already verified")
	ErrInternal        = errors.New("internal error")
)

type RequestInput struct {
	SkillName     string
	Category      string
	Description   string
	Evidence      string
	Issuer        string
	IssuedBy      string
	IssuedByEmail string
}

type SkillUsecase interface {
	RequestSkill(ctx context.Context, actor user.User, in RequestInput) (skill.Skill, error)
	ListOwnSkills(ctx context.Context, actor user.User) ([]skill.Skill, error)
	ListPending(ctx context.Context, actor user.User) ([]skill.Skill, error)
	ApproveSkill(ctx context.Context, actor user.User, skillID string) (skill.Skill, error)
	RejectSkill(ctx context.Context, actor user.User, skillID, reason string) (skill.Skill, error)
	SearchSkills(ctx context.Context, actor user.User, query string) ([]search.StudentSummary, error)
}

type Service struct {
	skills    skill.Repository
	cache     SearchCache
	publisher events.Publisher
	logger    logging.Logger

	now func() time.Time
}

var _ SkillUsecase = (*Service)(nil)

// NewService wires the skill use case. cache and publisher may be nil.
func NewService(skills skill.Repository, cache SearchCache, publisher events.Publisher, logger logging.Logger) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		skills:    skills,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) RequestSkill(ctx context.Context, actor user.User, in RequestInput) (skill.Skill, error) {
	if err := access.RequireRole(actor, user.RoleStudent); err != nil {
		return skill.Skill{}, err
	}

	in = trimRequestInput(in)
	if in.SkillName == "" || in.Category == "" || in.Description == "" ||
		in.Issuer == "" || in.IssuedBy == "" || in.IssuedByEmail == "" {
		return skill.Skill{}, ErrInvalidInput
	}

	program := strings.TrimSpace(actor.Program)
	if program == "" {
		program = unknownProgram
	}

	created, err := s.skills.CreateSkill(ctx, skill.Skill{
		ID:             uuid.New(),
		StudentID:      actor.ID,
		StudentName:    actor.Name,
		StudentEmail:   actor.Email,
		StudentProgram: program,
		SkillName:      in.SkillName,
		Category:       in.Category,
		Description:    in.Description,
		Evidence:       in.Evidence,
		Issuer:         in.Issuer,
		IssuedBy:       in.IssuedBy,
		IssuedByEmail:  in.IssuedByEmail,
		Status:         skill.StatusPending,
		DateRequested:  s.now().UTC(),
	})
	if err != nil {
		s.logger.Error(ctx, "create skill failed", "student_id", actor.ID, "error", err)
		return skill.Skill{}, ErrInternal
	}

	s.publish(ctx, events.TypeSkillRequested, created, actor.Email)
	return created, nil
}

func (s *Service) ListOwnSkills(ctx context.Context, actor user.User) ([]skill.Skill, error) {
	if err := access.RequireRole(actor, user.RoleStudent); err != nil {
		return nil, err
	}
	items, err := s.skills.GetSkillsByStudentID(ctx, actor.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Service) ListPending(ctx context.Context, actor user.User) ([]skill.Skill, error) {
	if err := access.RequireRole(actor, user.RoleLecturer); err != nil {
		return nil, err
	}
	items, err := s.skills.GetPendingSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Service) ApproveSkill(ctx context.Context, actor user.User, skillID string) (skill.Skill, error) {
	if err := access.RequireRole(actor, user.RoleLecturer); err != nil {
		return skill.Skill{}, err
	}
	id, err := parseSkillID(skillID)
	if err != nil {
		return skill.Skill{}, err
	}

	updated, err := s.skills.ApproveSkill(ctx, id, actor.Email, s.now())
	if err != nil {
		return skill.Skill{}, mapTransitionError(err)
	}

	s.invalidateSearchCache(ctx)
	s.publish(ctx, events.TypeSkillApproved, updated, actor.Email)
	return updated, nil
}

func (s *Service) RejectSkill(ctx context.Context, actor user.User, skillID, reason string) (skill.Skill, error) {
	if err := access.RequireRole(actor, user.RoleLecturer); err != nil {
		return skill.Skill{}, err
	}
	id, err := parseSkillID(skillID)
	if err != nil {
		return skill.Skill{}, err
	}

	updated, err := s.skills.RejectSkill(ctx, id, actor.Email, reason, s.now())
	if err != nil {
		return skill.Skill{}, mapTransitionError(err)
	}

	s.publish(ctx, events.TypeSkillRejected, updated, actor.Email)
	return updated, nil
}

// SearchSkills returns approved skills matching query, grouped by student.
func (s *Service) SearchSkills(ctx context.Context, actor user.User, query string) ([]search.StudentSummary, error) {
	if err := access.RequireRole(actor, user.RoleEmployer); err != nil {
		return nil, err
	}

	gen, err := s.cache.GetInt64(ctx, searchGenKey)
	if err != nil {
		s.logger.Debug(ctx, "search cache generation read failed", "error", err)
		return s.runSearch(ctx, query)
	}

	key := SearchCacheKey(gen, query)
	var cached []search.StudentSummary
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit && cached != nil {
		return cached, nil
	}

	out, err := s.runSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	// A result computed before a concurrent approval lands under the old
	// generation and is never read again.
	if err := s.cache.SetJSON(ctx, key, out, 0); err != nil {
		s.logger.Debug(ctx, "search cache write failed", "error", err)
	}
	return out, nil
}

func (s *Service) runSearch(ctx context.Context, query string) ([]search.StudentSummary, error) {
	approved, err := s.skills.GetAllApprovedSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return search.Run(approved, query), nil
}

// invalidateSearchCache bumps the generation before dropping stored results.
func (s *Service) invalidateSearchCache(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, searchGenKey); err != nil {
		s.logger.Warn(ctx, "search cache generation bump failed", "error", err)
	}
	if err := s.cache.DeleteByPattern(ctx, searchKeyPattern); err != nil {
		s.logger.Warn(ctx, "search cache invalidation failed", "error", err)
	}
}

func (s *Service) publish(ctx context.Context, typ events.Type, sk skill.Skill, actor string) {
	evt := events.SkillEvent{
		Type:         typ,
		SkillID:      sk.ID,
		SkillName:    sk.SkillName,
		StudentID:    sk.StudentID,
		StudentEmail: sk.StudentEmail,
		Actor:        actor,
		Reason:       sk.RejectionReason,
		OccurredAt:   s.now().UTC(),
	}
	if err := s.publisher.PublishSkillEvent(ctx, evt); err != nil {
		s.logger.Warn(ctx, "publish skill event failed", "type", typ, "skill_id", sk.ID, "error", err)
	}
}

func parseSkillID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, ErrInvalidInput
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		// No stored skill can carry a malformed id.
		return uuid.Nil, ErrNotFound
	}
	return id, nil
}

func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, skill.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, skill.ErrNotPending):
		return ErrAlreadyVerified
	default:
		return ErrInternal
	}
}

func trimRequestInput(in RequestInput) RequestInput {
	in.SkillName = strings.TrimSpace(in.SkillName)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.Evidence = strings.TrimSpace(in.Evidence)
	in.Issuer = strings.TrimSpace(in.Issuer)
	in.IssuedBy = strings.TrimSpace(in.IssuedBy)
	in.IssuedByEmail = strings.TrimSpace(in.IssuedByEmail)
	return in
}
