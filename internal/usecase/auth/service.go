package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-passport/internal/domain/user"
	"skill-passport/internal/logging"
	"skill-passport/internal/usecase/access"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrLinkedInRequired   = errors.New("linkedin is required for lecturers")
	ErrInternal           = errors.New("internal error")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string

	Program    string
	Department string
	Company    string
	GitHub     string
	LinkedIn   string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, access.Session, error)
	Login(ctx context.Context, in LoginInput) (user.User, access.Session, error)
	Me(ctx context.Context, token string) (user.User, error)
	Logout(ctx context.Context, token string) error
}

type Service struct {
	users  user.Repository
	gate   *access.Gate
	logger logging.Logger

	hashCost int
	now      func() time.Time
}

var _ AuthUsecase = (*Service)(nil)

func NewService(users user.Repository, gate *access.Gate, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		users:    users,
		gate:     gate,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, access.Session, error) {
	in = trimRegisterInput(in)
	role := user.Role(in.Role)

	if in.Email == "" || in.Password == "" || in.Name == "" || in.Role == "" {
		return user.User{}, access.Session{}, ErrInvalidInput
	}
	if !role.Valid() {
		return user.User{}, access.Session{}, ErrInvalidInput
	}
	if role == user.RoleLecturer && in.LinkedIn == "" {
		return user.User{}, access.Session{}, ErrLinkedInRequired
	}

	_, err := s.users.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return user.User{}, access.Session{}, ErrDuplicateEmail
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, access.Session{}, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return user.User{}, access.Session{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         role,
		Program:      in.Program,
		Department:   in.Department,
		Company:      in.Company,
		GitHub:       in.GitHub,
		LinkedIn:     in.LinkedIn,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return user.User{}, access.Session{}, ErrDuplicateEmail
		}
		return user.User{}, access.Session{}, ErrInternal
	}

	sess, err := s.gate.Issue(u)
	if err != nil {
		return user.User{}, access.Session{}, ErrInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return sanitizeUser(u), sess, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, access.Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, access.Session{}, ErrInvalidInput
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, access.Session{}, ErrInvalidCredentials
		}
		return user.User{}, access.Session{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, access.Session{}, ErrInvalidCredentials
	}

	sess, err := s.gate.Issue(u)
	if err != nil {
		return user.User{}, access.Session{}, ErrInternal
	}

	s.logger.Info(ctx, "user logged in", "user_id", u.ID, "role", u.Role)
	return sanitizeUser(u), sess, nil
}

func (s *Service) Me(ctx context.Context, token string) (user.User, error) {
	u, err := s.gate.Resolve(ctx, token)
	if err != nil {
		return user.User{}, err
	}
	return sanitizeUser(u), nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.gate.Revoke(ctx, token)
}

func trimRegisterInput(in RegisterInput) RegisterInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	in.Program = strings.TrimSpace(in.Program)
	in.Department = strings.TrimSpace(in.Department)
	in.Company = strings.TrimSpace(in.Company)
	in.GitHub = strings.TrimSpace(in.GitHub)
	in.LinkedIn = strings.TrimSpace(in.LinkedIn)
	return in
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
