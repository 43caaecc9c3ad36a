// Package access resolves session tokens to users and enforces role-based
// access before a use case proceeds.
package access

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-passport/internal/domain/user"
	"skill-passport/internal/logging"
	"skill-passport/internal/pkg/jwt"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInternal        = errors.New("internal error")
)

// Revocations records logged-out session tokens by token id.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Session struct {
	Token     string
	ExpiresAt time.Time
}

type Gate struct {
	users       user.Repository
	tokens      jwt.Service
	revocations Revocations
	logger      logging.Logger
}

func NewGate(users user.Repository, tokens jwt.Service, revocations Revocations, logger logging.Logger) *Gate {
	if revocations == nil {
		revocations = NewMemoryRevocations()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Gate{users: users, tokens: tokens, revocations: revocations, logger: logger}
}

// Issue creates a session token for u.
func (g *Gate) Issue(u user.User) (Session, error) {
	tok, err := g.tokens.GenerateSessionToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return Session{}, ErrInternal
	}
	return Session{Token: tok, ExpiresAt: time.Now().Add(g.tokens.TTL())}, nil
}

// Resolve returns the user behind token. Any failure to identify a live,
// existing user is ErrUnauthenticated.
func (g *Gate) Resolve(ctx context.Context, token string) (user.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.User{}, ErrUnauthenticated
	}

	claims, err := g.tokens.ValidateToken(token)
	if err != nil {
		return user.User{}, ErrUnauthenticated
	}

	revoked, err := g.revocations.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		g.logger.Warn(ctx, "session revocation check failed", "error", err)
	} else if revoked {
		return user.User{}, ErrUnauthenticated
	}

	u, err := g.users.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnauthenticated
		}
		return user.User{}, ErrInternal
	}
	if u.ID != claims.UserID {
		return user.User{}, ErrUnauthenticated
	}
	return u, nil
}

// Authorize resolves token and checks that the user holds one of roles.
// With no roles any authenticated user passes.
func (g *Gate) Authorize(ctx context.Context, token string, roles ...user.Role) (user.User, error) {
	u, err := g.Resolve(ctx, token)
	if err != nil {
		return user.User{}, err
	}
	if len(roles) == 0 {
		return u, nil
	}
	if err := RequireRole(u, roles...); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Revoke invalidates token until it expires. Unknown or already invalid
// tokens are ignored.
func (g *Gate) Revoke(ctx context.Context, token string) error {
	claims, err := g.tokens.ValidateToken(strings.TrimSpace(token))
	if err != nil {
		return nil
	}
	if err := g.revocations.Revoke(ctx, claims.TokenID(), claims.ExpiresAt()); err != nil {
		g.logger.Error(ctx, "session revoke failed", "user_id", claims.UserID, "error", err)
		return ErrInternal
	}
	return nil
}

// RequireRole reports ErrForbidden unless u holds one of roles.
func RequireRole(u user.User, roles ...user.Role) error {
	if !u.HasRole(roles...) {
		return ErrForbidden
	}
	return nil
}
