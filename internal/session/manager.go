// Package session owns the credential lifecycle: login, logout,
// liveness, and role queries, plus change notifications for the UI
// layer. The store is the single source of truth; claims are decoded
// from the stored token on every query so they can never go stale.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ghaggin/cryptodash/internal/authapi"
	"github.com/ghaggin/cryptodash/internal/claims"
	"github.com/ghaggin/cryptodash/internal/model"
	"github.com/ghaggin/cryptodash/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const anonymousUser = "Anonymous"

// AuthClient is the slice of the auth backend the manager needs.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (*authapi.LoginResponse, error)
}

// Navigator is the navigation collaborator. The manager calls it on
// logout; the access guard's caller uses it to honor deny decisions.
type Navigator interface {
	NavigateTo(route string)
}

// NavigatorFunc is a function adapter for Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) NavigateTo(route string) {
	f(route)
}

// Manager is an explicitly constructed session manager. All mutation
// funnels through it, making it the store's only writer.
type Manager struct {
	log   *zap.Logger
	store store.Store
	auth  AuthClient
	nav   Navigator

	mu      sync.Mutex
	subs    map[int]func(*model.Session)
	nextSub int
}

// Params are the fx dependencies for the Manager.
type Params struct {
	fx.In

	Log   *zap.Logger
	Store store.Store
	Auth  AuthClient
	Nav   Navigator
}

// New constructs a Manager and logs whether a persisted session
// survived from a previous run.
func New(p Params) *Manager {
	m := &Manager{
		log:   p.Log,
		store: p.Store,
		auth:  p.Auth,
		nav:   p.Nav,
		subs:  map[int]func(*model.Session){},
	}

	if s := m.load(context.Background()); s.LoggedIn() {
		m.log.Info("restored persisted session", zap.String("username", s.Username))
	}

	return m
}

// Login authenticates against the backend and, on success, persists
// the credential pair atomically and notifies subscribers. Failures
// leave no partial state behind.
func (m *Manager) Login(ctx context.Context, username, password string) (*model.Session, error) {
	resp, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	creds := store.Credentials{
		Token:    resp.Token,
		Username: resp.Username,
	}
	// The pair is stored atomically; a backend that omits the display
	// identifier gets the login identifier instead.
	if creds.Username == "" {
		creds.Username = username
	}
	if err := m.store.Save(ctx, creds); err != nil {
		return nil, err
	}

	s := sessionFromCreds(&creds)
	m.log.Info("logged in", zap.String("username", s.Username))
	m.notify(s)

	return s, nil
}

// Logout clears the persisted credential pair. It is idempotent:
// when no session is live it neither notifies subscribers nor emits a
// second navigation event.
func (m *Manager) Logout(ctx context.Context) {
	hadSession := m.hasCredentials(ctx)

	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn("failed clearing credential store", zap.Error(err))
	}

	if !hadSession {
		return
	}

	m.log.Info("logged out")
	m.notify(nil)
	m.nav.NavigateTo(model.LoginRoute)
}

// IsLoggedIn reports session liveness. An expired credential is
// observed via the pure Claims.Expired check and answered with an
// explicit Logout before returning false.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	creds, err := m.store.Load(ctx)
	if err != nil {
		return false
	}

	c, err := claims.Decode(creds.Token)
	if err != nil {
		return false
	}

	if c.Expired(time.Now()) {
		m.log.Info("session expired", zap.String("username", creds.Username))
		m.Logout(ctx)
		return false
	}

	return true
}

// Roles returns the decoded role set, or nil when no usable
// credential is stored. Unlike IsLoggedIn this never mutates state.
func (m *Manager) Roles(ctx context.Context) []string {
	creds, err := m.store.Load(ctx)
	if err != nil {
		return nil
	}

	c, err := claims.Decode(creds.Token)
	if err != nil {
		return nil
	}

	return c.Roles
}

// Username returns the stored display identifier.
func (m *Manager) Username(ctx context.Context) string {
	creds, err := m.store.Load(ctx)
	if err != nil || creds.Username == "" {
		return anonymousUser
	}
	return creds.Username
}

// Current returns the live session for access decisions, or nil when
// none exists. Expiry encountered here triggers the same implicit
// logout as IsLoggedIn.
func (m *Manager) Current(ctx context.Context) *model.Session {
	if !m.IsLoggedIn(ctx) {
		return nil
	}
	return m.load(ctx)
}

// Subscribe registers fn for session changes. The current session is
// replayed immediately; the returned cancel removes the registration.
func (m *Manager) Subscribe(ctx context.Context, fn func(*model.Session)) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	fn(m.load(ctx))

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// load reads the store and decodes claims. Any failure degrades to
// an empty session.
func (m *Manager) load(ctx context.Context) *model.Session {
	creds, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.log.Warn("failed loading credentials", zap.Error(err))
		}
		return nil
	}
	return sessionFromCreds(creds)
}

func (m *Manager) hasCredentials(ctx context.Context) bool {
	_, err := m.store.Load(ctx)
	return err == nil
}

// notify invokes subscribers outside the registry lock, after the
// state change has been committed to the store.
func (m *Manager) notify(s *model.Session) {
	m.mu.Lock()
	fns := make([]func(*model.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func sessionFromCreds(creds *store.Credentials) *model.Session {
	s := &model.Session{
		Token:    creds.Token,
		Username: creds.Username,
	}

	// A token that no longer decodes still counts as a stored
	// session; its claims are simply absent.
	if c, err := claims.Decode(creds.Token); err == nil {
		s.Claims = c
	}

	return s
}
