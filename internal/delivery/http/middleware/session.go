package middleware

import (
	"context"
	"errors"
	"strings"

	"skill-passport/internal/domain/user"
	"skill-passport/internal/usecase/access"

	"github.com/gofiber/fiber/v3"
)

const CtxUserKey = "user"

type SessionResolver interface {
	Authorize(ctx context.Context, token string, roles ...user.Role) (user.User, error)
}

// SessionMiddleware authenticates requests carrying a session token in the
// session cookie or an Authorization bearer header.
type SessionMiddleware struct {
	gate       SessionResolver
	cookieName string
}

func NewSessionMiddleware(gate SessionResolver, cookieName string) *SessionMiddleware {
	if strings.TrimSpace(cookieName) == "" {
		cookieName = "session"
	}
	return &SessionMiddleware{gate: gate, cookieName: cookieName}
}

// Middleware resolves the session and, when roles are given, requires one of
// them. The resolved user is stored in Locals under CtxUserKey.
func (m *SessionMiddleware) Middleware(roles ...user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := m.Token(c)
		if token == "" {
			return NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, access.ErrUnauthenticated)
		}

		u, err := m.gate.Authorize(c.Context(), token, roles...)
		if err != nil {
			switch {
			case errors.Is(err, access.ErrUnauthenticated):
				return NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, err)
			case errors.Is(err, access.ErrForbidden):
				return NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
			default:
				return NewAppError(fiber.StatusInternalServerError, "", nil, err)
			}
		}

		c.Locals(CtxUserKey, u)
		return c.Next()
	}
}

func (m *SessionMiddleware) CookieName() string {
	return m.cookieName
}

// Token returns the session token from the cookie, falling back to a bearer
// header.
func (m *SessionMiddleware) Token(c fiber.Ctx) string {
	if tok := strings.TrimSpace(c.Cookies(m.cookieName)); tok != "" {
		return tok
	}
	tok, _ := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
	return tok
}

func CurrentUser(c fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(CtxUserKey).(user.User)
	return u, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
