package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"skill-passport/internal/domain/user"
	"skill-passport/internal/logging"
	"skill-passport/internal/pkg/response"
	"skill-passport/internal/usecase/access"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	token string
	user  user.User
}

func (s stubResolver) Authorize(_ context.Context, token string, roles ...user.Role) (user.User, error) {
	if token != s.token {
		return user.User{}, access.ErrUnauthenticated
	}
	if len(roles) > 0 && !s.user.HasRole(roles...) {
		return user.User{}, access.ErrForbidden
	}
	return s.user, nil
}

func newApp(t *testing.T, register func(app *fiber.App)) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(NewErrorMiddleware(logging.Discard()).Middleware())
	register(app)
	return app
}

func call(t *testing.T, app *fiber.App, req *http.Request) (int, response.SemanticResponse) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env response.SemanticResponse
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestErrorMiddleware(t *testing.T) {
	app := newApp(t, func(app *fiber.App) {
		app.Get("/conflict", func(c fiber.Ctx) error {
			return NewAppError(fiber.StatusConflict, "Email already registered", nil, errors.New("dup"))
		})
		app.Get("/internal", func(c fiber.Ctx) error {
			return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("boom"))
		})
		app.Get("/plain", func(c fiber.Ctx) error {
			return errors.New("plain")
		})
		app.Get("/fiber", func(c fiber.Ctx) error {
			return fiber.NewError(fiber.StatusBadRequest, "")
		})
		app.Get("/panic", func(c fiber.Ctx) error {
			panic("kaboom")
		})
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/conflict", http.StatusConflict, "Email already registered"},
		{"/internal", http.StatusInternalServerError, response.MessageInternalServerError},
		{"/plain", http.StatusInternalServerError, response.MessageInternalServerError},
		{"/fiber", http.StatusBadRequest, response.MessageBadRequest},
		{"/panic", http.StatusInternalServerError, response.MessageInternalServerError},
		{"/missing", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			status, env := call(t, app, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.status, env.Status)
			if tc.message != "" {
				assert.Equal(t, tc.message, env.Message)
			}
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	resolver := stubResolver{
		token: "good",
		user:  user.User{Email: "a@x.edu", Role: user.RoleStudent},
	}
	sess := NewSessionMiddleware(resolver, "")
	assert.Equal(t, "session", sess.CookieName())

	app := newApp(t, func(app *fiber.App) {
		app.Get("/any", sess.Middleware(), func(c fiber.Ctx) error {
			u, ok := CurrentUser(c)
			if !ok {
				return errors.New("no user")
			}
			return response.OK(c, u.Email)
		})
		app.Get("/lecturer", sess.Middleware(user.RoleLecturer), func(c fiber.Ctx) error {
			return response.OK(c, nil)
		})
	})

	cookieReq := httptest.NewRequest(http.MethodGet, "/any", nil)
	cookieReq.AddCookie(&http.Cookie{Name: "session", Value: "good"})
	status, env := call(t, app, cookieReq)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@x.edu", env.Data)

	bearerReq := httptest.NewRequest(http.MethodGet, "/any", nil)
	bearerReq.Header.Set("Authorization", "bearer good")
	status, _ = call(t, app, bearerReq)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, httptest.NewRequest(http.MethodGet, "/any", nil))
	assert.Equal(t, http.StatusUnauthorized, status)

	badReq := httptest.NewRequest(http.MethodGet, "/any", nil)
	badReq.Header.Set("Authorization", "Basic good")
	status, _ = call(t, app, badReq)
	assert.Equal(t, http.StatusUnauthorized, status)

	forbidden := httptest.NewRequest(http.MethodGet, "/lecturer", nil)
	forbidden.AddCookie(&http.Cookie{Name: "session", Value: "good"})
	status, _ = call(t, app, forbidden)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAccessLogSetsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(nil).Middleware())
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "rid-1", resp.Header.Get(HeaderRequestID))
}
