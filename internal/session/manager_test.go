package session

import (
	"context"
	"testing"
	"time"

	"github.com/ghaggin/cryptodash/internal/authapi"
	"github.com/ghaggin/cryptodash/internal/model"
	"github.com/ghaggin/cryptodash/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth struct {
	resp  *authapi.LoginResponse
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*authapi.LoginResponse, error) {
	f.calls++
	return f.resp, f.err
}

type navRecorder struct {
	routes []string
}

func (n *navRecorder) NavigateTo(route string) {
	n.routes = append(n.routes, route)
}

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return token
}

func newTestManager(auth AuthClient) (*Manager, store.Store, *navRecorder) {
	s := store.NewMemory()
	nav := &navRecorder{}
	m := New(Params{
		Log:   zap.NewNop(),
		Store: s,
		Auth:  auth,
		Nav:   nav,
	})
	return m, s, nav
}

func Test_Login(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	token := mintToken(t, jwt.MapClaims{
		"roles": []string{"CLIENT"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	auth := &fakeAuth{resp: &authapi.LoginResponse{Username: "a@b.com", Token: token}}
	m, s, _ := newTestManager(auth)

	var notified []*model.Session
	m.Subscribe(ctx, func(sess *model.Session) {
		notified = append(notified, sess)
	})

	sess, err := m.Login(ctx, "a@b.com", "x")
	require.NoError(err)
	assert.Equal("a@b.com", sess.Username)
	assert.Equal([]string{"CLIENT"}, sess.Roles())

	creds, err := s.Load(ctx)
	require.NoError(err)
	assert.Equal(token, creds.Token)
	assert.Equal("a@b.com", creds.Username)

	// One replay at subscribe (empty), one change on login.
	require.Len(notified, 2)
	assert.False(notified[0].LoggedIn())
	assert.True(notified[1].LoggedIn())

	assert.True(m.IsLoggedIn(ctx))
	assert.Equal([]string{"CLIENT"}, m.Roles(ctx))
	assert.Equal("a@b.com", m.Username(ctx))
}

func Test_Login_failure(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	auth := &fakeAuth{err: &authapi.AuthError{StatusCode: 401, Message: "invalid username or password"}}
	m, s, _ := newTestManager(auth)

	_, err := m.Login(ctx, "a@b.com", "wrong")
	require.Error(err)

	var authErr *authapi.AuthError
	require.ErrorAs(err, &authErr)
	assert.Equal("invalid username or password", authErr.Message)

	// No partial persistence on failure.
	_, err = s.Load(ctx)
	assert.ErrorIs(err, store.ErrNotFound)
	assert.False(m.IsLoggedIn(ctx))
}

func Test_IsLoggedIn_expiredTokenClearsStorage(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	m, s, nav := newTestManager(&fakeAuth{})

	expired := mintToken(t, jwt.MapClaims{
		"roles": []string{"CLIENT"},
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	require.NoError(s.Save(ctx, store.Credentials{Token: expired, Username: "a@b.com"}))

	assert.False(m.IsLoggedIn(ctx))

	// Expiry triggers an implicit logout: storage cleared, one
	// navigation to the login route.
	_, err := s.Load(ctx)
	assert.ErrorIs(err, store.ErrNotFound)
	assert.Empty(m.Roles(ctx))
	assert.Equal([]string{model.LoginRoute}, nav.routes)
}

func Test_IsLoggedIn_malformedTokenDoesNotLogout(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	m, s, nav := newTestManager(&fakeAuth{})
	require.NoError(s.Save(ctx, store.Credentials{Token: "garbage", Username: "a@b.com"}))

	assert.False(m.IsLoggedIn(ctx))
	assert.Empty(m.Roles(ctx))

	// Decode failure degrades to "no session" without the logout
	// side effect.
	_, err := s.Load(ctx)
	assert.NoError(err)
	assert.Empty(nav.routes)
}

func Test_Logout_idempotent(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	token := mintToken(t, jwt.MapClaims{"roles": []string{"CLIENT"}})
	auth := &fakeAuth{resp: &authapi.LoginResponse{Username: "a@b.com", Token: token}}
	m, _, nav := newTestManager(auth)

	_, err := m.Login(ctx, "a@b.com", "x")
	require.NoError(err)

	var notifications int
	m.Subscribe(ctx, func(*model.Session) { notifications++ })

	m.Logout(ctx)
	m.Logout(ctx)

	// One replay plus exactly one logout notification; the second
	// call produced no navigation event.
	assert.Equal(2, notifications)
	assert.Equal([]string{model.LoginRoute}, nav.routes)
	assert.False(m.IsLoggedIn(ctx))
}

func Test_Subscribe_replaysCurrentSession(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	token := mintToken(t, jwt.MapClaims{"roles": []string{"CLIENT"}})
	auth := &fakeAuth{resp: &authapi.LoginResponse{Username: "a@b.com", Token: token}}
	m, _, _ := newTestManager(auth)

	_, err := m.Login(ctx, "a@b.com", "x")
	require.NoError(err)

	var replayed *model.Session
	cancel := m.Subscribe(ctx, func(s *model.Session) { replayed = s })

	require.NotNil(replayed)
	assert.Equal("a@b.com", replayed.Username)

	// A cancelled subscription sees no further changes.
	cancel()
	replayed = nil
	m.Logout(ctx)
	assert.Nil(replayed)
}

func Test_Username_fallback(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	m, _, _ := newTestManager(&fakeAuth{})
	assert.Equal("Anonymous", m.Username(ctx))
}

func Test_sessionSurvivesRestart(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	token := mintToken(t, jwt.MapClaims{
		"roles": []string{"CLIENT"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	s := store.NewMemory()
	require.NoError(s.Save(ctx, store.Credentials{Token: token, Username: "a@b.com"}))

	// A fresh manager over the same store sees the session.
	m := New(Params{Log: zap.NewNop(), Store: s, Auth: &fakeAuth{}, Nav: &navRecorder{}})
	assert.True(m.IsLoggedIn(ctx))
	assert.Equal([]string{"CLIENT"}, m.Roles(ctx))
}
