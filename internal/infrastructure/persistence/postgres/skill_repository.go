package postgres

import (
	"context"
	"time"

	"skill-passport/internal/database"
	pg "skill-passport/internal/database/postgres"
	"skill-passport/internal/domain/skill"

	"github.com/google/uuid"
)

const skillColumns = `id, student_id, student_name, student_email, student_program,
	skill_name, category, description, evidence, issuer, issued_by, issued_by_email,
	status, date_requested, date_verified, verified_by, rejection_reason`

type SkillRepository struct {
	db database.DB
}

var _ skill.Repository = (*SkillRepository)(nil)

func NewSkillRepository(db database.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) CreateSkill(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (`+skillColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+skillColumns,
		s.ID, s.StudentID, s.StudentName, s.StudentEmail, s.StudentProgram,
		s.SkillName, s.Category, s.Description, s.Evidence, s.Issuer, s.IssuedBy, s.IssuedByEmail,
		string(s.Status), s.DateRequested, s.DateVerified, s.VerifiedBy, s.RejectionReason,
	)
	return scanSkill(row)
}

// GetSkillByID returns the earliest inserted skill with id.
func (r *SkillRepository) GetSkillByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = $1 ORDER BY seq LIMIT 1`, id)
	s, err := scanSkill(row)
	if err != nil {
		if pg.IsNoRows(err) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *SkillRepository) GetSkillsByStudentID(ctx context.Context, studentID uuid.UUID) ([]skill.Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills WHERE student_id = $1 ORDER BY seq`, studentID)
}

func (r *SkillRepository) GetPendingSkills(ctx context.Context) ([]skill.Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills WHERE status = $1 ORDER BY seq`, string(skill.StatusPending))
}

func (r *SkillRepository) GetAllApprovedSkills(ctx context.Context) ([]skill.Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills WHERE status = $1 ORDER BY seq`, string(skill.StatusApproved))
}

func (r *SkillRepository) ApproveSkill(ctx context.Context, id uuid.UUID, verifiedBy string, at time.Time) (skill.Skill, error) {
	return r.transition(ctx, id, func(s *skill.Skill) error {
		return s.Approve(verifiedBy, at)
	})
}

func (r *SkillRepository) RejectSkill(ctx context.Context, id uuid.UUID, verifiedBy, reason string, at time.Time) (skill.Skill, error) {
	return r.transition(ctx, id, func(s *skill.Skill) error {
		return s.Reject(verifiedBy, reason, at)
	})
}

// transition applies fn to the stored skill and persists the result only if
// the row is still pending, so concurrent transitions cannot both win.
func (r *SkillRepository) transition(ctx context.Context, id uuid.UUID, fn func(*skill.Skill) error) (skill.Skill, error) {
	current, err := r.GetSkillByID(ctx, id)
	if err != nil {
		return skill.Skill{}, err
	}
	if err := fn(&current); err != nil {
		return skill.Skill{}, err
	}

	row := r.db.QueryRow(ctx,
		`UPDATE skills
		SET status = $2, date_verified = $3, verified_by = $4, rejection_reason = $5
		WHERE seq = (SELECT seq FROM skills WHERE id = $1 ORDER BY seq LIMIT 1)
		  AND status = 'pending'
		RETURNING `+skillColumns,
		id, string(current.Status), current.DateVerified, current.VerifiedBy, current.RejectionReason,
	)
	updated, err := scanSkill(row)
	if err != nil {
		if pg.IsNoRows(err) {
			return skill.Skill{}, skill.ErrNotPending
		}
		return skill.Skill{}, err
	}
	return updated, nil
}

func (r *SkillRepository) list(ctx context.Context, query string, args ...any) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSkill(row database.Row) (skill.Skill, error) {
	var (
		s            skill.Skill
		status       string
		dateVerified *time.Time
	)
	err := row.Scan(
		&s.ID, &s.StudentID, &s.StudentName, &s.StudentEmail, &s.StudentProgram,
		&s.SkillName, &s.Category, &s.Description, &s.Evidence, &s.Issuer, &s.IssuedBy, &s.IssuedByEmail,
		&status, &s.DateRequested, &dateVerified, &s.VerifiedBy, &s.RejectionReason,
	)
	if err != nil {
		return skill.Skill{}, err
	}
	s.Status = skill.Status(status)
	s.DateRequested = s.DateRequested.UTC()
	if dateVerified != nil {
		t := dateVerified.UTC()
		s.DateVerified = &t
	}
	return s, nil
}
