package postgres

import (
	"context"

	"skill-passport/internal/database"
	pg "skill-passport/internal/database/postgres"
	"skill-passport/internal/domain/user"
)

const userColumns = `id, email, name, password_hash, role, program, department, company, github, linkedin, created_at`

type UserRepository struct {
	db database.DB
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role),
		u.Program, u.Department, u.Company, u.GitHub, u.LinkedIn, u.CreatedAt,
	)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return user.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	var (
		u    user.User
		role string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role,
		&u.Program, &u.Department, &u.Company, &u.GitHub, &u.LinkedIn, &u.CreatedAt,
	)
	if err != nil {
		if pg.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
