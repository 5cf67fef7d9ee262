// ABOUTME: Tests for the navigation guard decision order
// ABOUTME: Each step verified in isolation plus the full redirect-target flow

package nav

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragops/kbconsole/internal/credstore"
)

// fakeSession is a scriptable Session.
type fakeSession struct {
	authenticated bool
	hasUser       bool
	storedToken   string
	permissions   []string

	initAuthErr   error
	initAuthCalls int
	logoutCalls   int
}

func (s *fakeSession) IsAuthenticated() bool { return s.authenticated }
func (s *fakeSession) HasUser() bool         { return s.hasUser }
func (s *fakeSession) StoredToken() string   { return s.storedToken }

func (s *fakeSession) HasPermission(permission string) bool {
	for _, p := range s.permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (s *fakeSession) InitAuth(ctx context.Context) error {
	s.initAuthCalls++
	if s.initAuthErr != nil {
		return s.initAuthErr
	}
	s.authenticated = true
	s.hasUser = true
	return nil
}

func (s *fakeSession) Logout() {
	s.logoutCalls++
	s.authenticated = false
	s.hasUser = false
	s.storedToken = ""
}

// mapPrefs is an in-memory PrefStore.
type mapPrefs map[string]string

func (p mapPrefs) Get(key string) string { return p[key] }
func (p mapPrefs) Set(key, value string) { p[key] = value }
func (p mapPrefs) Delete(key string)     { delete(p, key) }

// fakeNotifier records denial notices.
type fakeNotifier struct {
	titles   []string
	messages []string
}

func (n *fakeNotifier) Notify(title, message string) {
	n.titles = append(n.titles, title)
	n.messages = append(n.messages, message)
}

// setupGuard wires a guard over the default table with fakes.
func setupGuard(t *testing.T, session *fakeSession) (*Guard, mapPrefs, *fakeNotifier, *string) {
	t.Helper()
	prefs := mapPrefs{}
	notifier := &fakeNotifier{}
	title := new(string)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	guard := NewGuard(session, DefaultTable(), prefs, notifier,
		func(s string) { *title = s }, logger)
	return guard, prefs, notifier, title
}

func TestGuard_RootUnauthenticatedRedirectsToLogin(t *testing.T) {
	guard, _, _, _ := setupGuard(t, &fakeSession{})

	d := guard.Decide(context.Background(), "/")
	assert.Equal(t, RedirectTo(LoginPath), d)
}

func TestGuard_RootAuthenticatedProceeds(t *testing.T) {
	guard, _, _, title := setupGuard(t, &fakeSession{authenticated: true, hasUser: true})

	d := guard.Decide(context.Background(), "/")
	assert.Equal(t, Proceed(), d)
	assert.Equal(t, "Knowledge Base Console", *title)
}

func TestGuard_AuthenticatedNeverSeesAuthSection(t *testing.T) {
	guard, _, _, _ := setupGuard(t, &fakeSession{authenticated: true, hasUser: true})

	d := guard.Decide(context.Background(), LoginPath)
	assert.Equal(t, RedirectTo("/"), d)
}

func TestGuard_UnauthenticatedMaySeeLogin(t *testing.T) {
	guard, _, _, title := setupGuard(t, &fakeSession{})

	d := guard.Decide(context.Background(), LoginPath)
	assert.Equal(t, Proceed(), d)
	assert.Equal(t, "Login", *title)
}

func TestGuard_LoginAliasRedirects(t *testing.T) {
	guard, _, _, _ := setupGuard(t, &fakeSession{})

	d := guard.Decide(context.Background(), "/login")
	assert.Equal(t, RedirectTo(LoginPath), d)
}

func TestGuard_UnknownPathRedirects(t *testing.T) {
	guard, _, _, _ := setupGuard(t, &fakeSession{})
	assert.Equal(t, RedirectTo(LoginPath), guard.Decide(context.Background(), "/no/such/screen"))

	guard, _, _, _ = setupGuard(t, &fakeSession{authenticated: true, hasUser: true})
	assert.Equal(t, RedirectTo("/"), guard.Decide(context.Background(), "/no/such/screen"))
}

func TestGuard_RequiresAuthPersistsTargetAndRedirects(t *testing.T) {
	guard, prefs, _, _ := setupGuard(t, &fakeSession{})

	d := guard.Decide(context.Background(), "/admin/rbac/users")
	assert.Equal(t, RedirectTo(LoginPath), d)
	assert.Equal(t, "/admin/rbac/users", prefs[credstore.KeyRedirectTarget])
}

func TestGuard_MissingPermissionDenies(t *testing.T) {
	session := &fakeSession{authenticated: true, hasUser: true, permissions: []string{"chat.use"}}
	guard, _, notifier, title := setupGuard(t, session)

	d := guard.Decide(context.Background(), "/admin/rbac/users")
	assert.Equal(t, Deny(), d)
	require.Len(t, notifier.titles, 1)
	assert.Equal(t, "Access Restricted", notifier.titles[0])
	assert.Empty(t, *title) // no title side effect on a denied transition
}

func TestGuard_HeldPermissionProceeds(t *testing.T) {
	session := &fakeSession{authenticated: true, hasUser: true, permissions: []string{"rbac.user.read"}}
	guard, _, notifier, title := setupGuard(t, session)

	d := guard.Decide(context.Background(), "/admin/rbac/users")
	assert.Equal(t, Proceed(), d)
	assert.Empty(t, notifier.titles)
	assert.Equal(t, "Users", *title)
}

func TestGuard_RestoresStaleSession(t *testing.T) {
	session := &fakeSession{storedToken: "tok-persisted"}
	guard, _, _, _ := setupGuard(t, session)

	d := guard.Decide(context.Background(), "/admin/settings")
	assert.Equal(t, Proceed(), d)
	assert.Equal(t, 1, session.initAuthCalls)
}

func TestGuard_FailedRestoreForcesLogout(t *testing.T) {
	session := &fakeSession{
		storedToken: "tok-stale",
		initAuthErr: errors.New("token rejected"),
	}
	guard, _, _, _ := setupGuard(t, session)

	d := guard.Decide(context.Background(), "/admin/settings")
	assert.Equal(t, RedirectTo(LoginPath), d)
	assert.Equal(t, 1, session.logoutCalls)
}

func TestGuard_RestoreSkippedWhenUserConfirmed(t *testing.T) {
	session := &fakeSession{authenticated: true, hasUser: true, storedToken: "tok"}
	guard, _, _, _ := setupGuard(t, session)

	guard.Decide(context.Background(), "/")
	assert.Zero(t, session.initAuthCalls)
}

func TestGuard_AfterNavigateClearsTarget(t *testing.T) {
	guard, prefs, _, _ := setupGuard(t, &fakeSession{})
	prefs[credstore.KeyRedirectTarget] = "/admin/documents"

	// Arrival at the login route keeps the pending target
	guard.AfterNavigate(LoginPath)
	assert.Equal(t, "/admin/documents", prefs[credstore.KeyRedirectTarget])

	guard.AfterNavigate("/admin/documents")
	assert.Empty(t, prefs[credstore.KeyRedirectTarget])
}

func TestGuard_PostLoginTargetFallsBackToRoot(t *testing.T) {
	guard, prefs, _, _ := setupGuard(t, &fakeSession{})

	assert.Equal(t, "/", guard.PostLoginTarget())

	prefs[credstore.KeyRedirectTarget] = "/admin/chat"
	assert.Equal(t, "/admin/chat", guard.PostLoginTarget())
}

// The full round trip: a gated path visited while logged out is revisited
// automatically after login.
func TestGuard_RedirectTargetFlow(t *testing.T) {
	session := &fakeSession{}
	guard, prefs, _, _ := setupGuard(t, session)
	ctx := context.Background()

	d := guard.Decide(ctx, "/admin/rbac/users")
	require.Equal(t, RedirectTo(LoginPath), d)
	require.Equal(t, "/admin/rbac/users", prefs[credstore.KeyRedirectTarget])
	guard.AfterNavigate(LoginPath)

	// Login succeeds with the needed permission
	session.authenticated = true
	session.hasUser = true
	session.permissions = []string{"rbac.user.read"}

	target := guard.PostLoginTarget()
	require.Equal(t, "/admin/rbac/users", target)

	d = guard.Decide(ctx, target)
	assert.Equal(t, Proceed(), d)
	guard.AfterNavigate(target)
	assert.Empty(t, prefs[credstore.KeyRedirectTarget])
}
