package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-passport/internal/domain/user"
	"skill-passport/internal/infrastructure/persistence/memory"
	"skill-passport/internal/logging"
	"skill-passport/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRevocations struct{}

func (failingRevocations) Revoke(context.Context, string, time.Time) error {
	return errors.New("down")
}
func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("down")
}

type failingUsers struct{}

func (failingUsers) CreateUser(context.Context, user.User) error { return nil }
func (failingUsers) GetUserByEmail(context.Context, string) (user.User, error) {
	return user.User{}, errors.New("db down")
}

func newGate(t *testing.T) (*Gate, *memory.Store) {
	t.Helper()
	store := memory.New()
	tokens := jwt.NewHMACService("secret", time.Hour, "test")
	return NewGate(store, tokens, NewMemoryRevocations(), logging.Discard()), store
}

func addUser(t *testing.T, store *memory.Store, email string, role user.Role) user.User {
	t.Helper()
	u := user.User{ID: uuid.New(), Email: email, Name: email, Role: role}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func TestGate_Resolve(t *testing.T) {
	ctx := context.Background()
	g, store := newGate(t)
	u := addUser(t, store, "a@x.edu", user.RoleStudent)

	sess, err := g.Issue(u)
	require.NoError(t, err)
	assert.True(t, sess.ExpiresAt.After(time.Now()))

	got, err := g.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, user.RoleStudent, got.Role)
}

func TestGate_Resolve_Unauthenticated(t *testing.T) {
	ctx := context.Background()
	g, store := newGate(t)

	_, err := g.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = g.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	ghost := user.User{ID: uuid.New(), Email: "ghost@x.edu", Role: user.RoleStudent}
	sess, err := g.Issue(ghost)
	require.NoError(t, err)
	_, err = g.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// same email, different identity
	addUser(t, store, "ghost@x.edu", user.RoleStudent)
	_, err = g.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGate_Authorize(t *testing.T) {
	ctx := context.Background()
	g, store := newGate(t)
	lecturer := addUser(t, store, "l@x.edu", user.RoleLecturer)
	sess, err := g.Issue(lecturer)
	require.NoError(t, err)

	_, err = g.Authorize(ctx, sess.Token, user.RoleLecturer)
	assert.NoError(t, err)

	_, err = g.Authorize(ctx, sess.Token, user.RoleStudent, user.RoleEmployer)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = g.Authorize(ctx, sess.Token)
	assert.NoError(t, err)

	_, err = g.Authorize(ctx, "", user.RoleLecturer)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGate_Revoke(t *testing.T) {
	ctx := context.Background()
	g, store := newGate(t)
	u := addUser(t, store, "e@x.edu", user.RoleEmployer)
	sess, err := g.Issue(u)
	require.NoError(t, err)
	other, err := g.Issue(u)
	require.NoError(t, err)

	require.NoError(t, g.Revoke(ctx, sess.Token))

	_, err = g.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = g.Resolve(ctx, other.Token)
	assert.NoError(t, err)

	assert.NoError(t, g.Revoke(ctx, "garbage"))
}

func TestGate_RevocationBackendDown(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	g := NewGate(store, jwt.NewHMACService("secret", time.Hour, ""), failingRevocations{}, logging.Discard())
	u := addUser(t, store, "s@x.edu", user.RoleStudent)
	sess, err := g.Issue(u)
	require.NoError(t, err)

	_, err = g.Resolve(ctx, sess.Token)
	assert.NoError(t, err)

	assert.ErrorIs(t, g.Revoke(ctx, sess.Token), ErrInternal)
}

func TestGate_UserLookupFailure(t *testing.T) {
	g := NewGate(failingUsers{}, jwt.NewHMACService("secret", time.Hour, ""), nil, nil)
	sess, err := g.Issue(user.User{ID: uuid.New(), Email: "s@x.edu", Role: user.RoleStudent})
	require.NoError(t, err)

	_, err = g.Resolve(context.Background(), sess.Token)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRequireRole(t *testing.T) {
	u := user.User{Role: user.RoleEmployer}
	assert.NoError(t, RequireRole(u, user.RoleEmployer))
	assert.ErrorIs(t, RequireRole(u, user.RoleStudent), ErrForbidden)
	assert.ErrorIs(t, RequireRole(u), ErrForbidden)
}

func TestMemoryRevocations_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRevocations()
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, m.Revoke(ctx, "past", now.Add(-time.Minute)))

	ok, err := m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = m.IsRevoked(ctx, "past")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = m.IsRevoked(ctx, "a")
	assert.False(t, ok)
}
