// ABOUTME: Session manager: token lifecycle, permission cache, predicates
// ABOUTME: Generation counter discards async completions superseded by logout

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/ragops/kbconsole/internal/credstore"
	"github.com/ragops/kbconsole/internal/gateway"
)

// ErrSuperseded is returned when an async completion is discarded because
// the session changed while the request was in flight.
var ErrSuperseded = errors.New("session superseded")

// Manager is the authoritative in-memory session, write-through mirrored to
// the credential store. Safe for concurrent use.
type Manager struct {
	client *gateway.Client
	store  *credstore.Store
	logger *slog.Logger

	mu             sync.Mutex
	token          string
	user           *gateway.User
	permissions    []string
	generation     uint64
	onForcedLogout func()
}

// New creates a session manager. The gateway client's unauthorized handler
// is installed so that any 401 anywhere forces a logout.
func New(client *gateway.Client, store *credstore.Store, logger *slog.Logger) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		logger: logger.With("component", "session"),
	}
	client.SetUnauthorizedHandler(m.forcedLogout)
	return m
}

// SetForcedLogoutHandler installs a callback fired after a 401-triggered
// logout. The application uses it to route back to the login screen.
func (m *Manager) SetForcedLogoutHandler(fn func()) {
	m.mu.Lock()
	m.onForcedLogout = fn
	m.mu.Unlock()
}

// forcedLogout handles a session-invalid signal from the gateway.
func (m *Manager) forcedLogout() {
	m.mu.Lock()
	hadToken := m.token != ""
	hook := m.onForcedLogout
	m.mu.Unlock()

	if !hadToken {
		return
	}
	m.logger.Warn("session rejected by gateway, logging out")
	m.Logout()
	if hook != nil {
		hook()
	}
}

// Login authenticates against the gateway. On success the token and user
// are installed and persisted and the permission set is refreshed. On
// credential rejection the returned error carries the gateway's message and
// no state changes. rememberMe only controls the remembered-username
// preference.
func (m *Manager) Login(ctx context.Context, username, password string, rememberMe bool) error {
	m.mu.Lock()
	gen := m.generation
	m.mu.Unlock()

	resp, err := m.client.Login(ctx, username, password, rememberMe)
	if err != nil {
		m.logger.Warn("login rejected", "username", username, "error", err)
		return err
	}

	m.mu.Lock()
	if m.generation != gen {
		m.mu.Unlock()
		m.logger.Warn("discarding login completion, session changed while in flight", "username", username)
		return ErrSuperseded
	}
	m.generation++
	m.token = resp.AccessToken
	m.user = resp.User
	m.permissions = nil
	m.persistLocked()
	m.mu.Unlock()

	m.client.SetToken(resp.AccessToken)

	if rememberMe {
		m.store.Set(credstore.KeyRememberedUsername, username)
	} else {
		m.store.Delete(credstore.KeyRememberedUsername)
	}

	m.logger.Info("logged in", "username", username)

	if err := m.RefreshPermissions(ctx); err != nil {
		// Stale-but-usable: the login itself succeeded.
		m.logger.Warn("initial permission fetch failed", "error", err)
	}
	return nil
}

// RefreshPermissions replaces the permission set with the gateway's current
// answer. Without a token it is a no-op. On failure the previous value is
// retained: the fetch is retried on the next call, never cleared.
func (m *Manager) RefreshPermissions(ctx context.Context) error {
	m.mu.Lock()
	token := m.token
	gen := m.generation
	username := ""
	if m.user != nil {
		username = m.user.Username
	}
	m.mu.Unlock()

	if token == "" {
		return nil
	}

	perms, err := m.client.UserPermissions(ctx, username)
	if err != nil {
		m.logger.Warn("permission fetch failed, retaining cached permissions", "error", err)
		return fmt.Errorf("fetching permissions: %w", err)
	}
	if perms == nil {
		perms = []string{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		return ErrSuperseded
	}
	m.permissions = perms
	m.persistLocked()
	return nil
}

// RefreshUser replaces the user record with the gateway's current answer.
// On failure the previous value is retained and the error returned; the
// caller decides whether a 401 warrants a logout.
func (m *Manager) RefreshUser(ctx context.Context) error {
	m.mu.Lock()
	token := m.token
	gen := m.generation
	m.mu.Unlock()

	if token == "" {
		return nil
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		m.logger.Warn("user refresh failed, retaining cached user", "error", err)
		return fmt.Errorf("fetching user: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		return ErrSuperseded
	}
	m.user = user
	m.persistLocked()
	return nil
}

// InitAuth adopts the persisted session at startup and refreshes it against
// the gateway. It returns an error only when the gateway rejected the token;
// transient failures leave the adopted (possibly stale) session in place.
func (m *Manager) InitAuth(ctx context.Context) error {
	snap := m.store.Load()
	if snap.Token == "" {
		return nil
	}

	if info, err := InspectToken(snap.Token); err == nil && info.Expired {
		m.logger.Warn("persisted token is past its expiry", "subject", info.Subject, "expired_at", info.ExpiresAt)
	}

	m.mu.Lock()
	m.generation++
	m.token = snap.Token
	m.user = snap.User
	m.permissions = snap.Permissions
	m.mu.Unlock()

	m.client.SetToken(snap.Token)

	if snap.User == nil {
		if err := m.RefreshUser(ctx); err != nil && errors.Is(err, gateway.ErrUnauthorized) {
			return fmt.Errorf("restoring session: %w", err)
		}
	}

	if err := m.RefreshPermissions(ctx); err != nil && errors.Is(err, gateway.ErrUnauthorized) {
		return fmt.Errorf("restoring session: %w", err)
	}
	return nil
}

// Logout clears the session atomically: memory, durable mirror and the
// client's bearer token. The remembered-username preference survives.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.generation++
	wasAuthenticated := m.token != ""
	m.token = ""
	m.user = nil
	m.permissions = nil
	m.mu.Unlock()

	m.client.ClearToken()
	m.store.Clear()

	if wasAuthenticated {
		m.logger.Info("logged out")
	}
}

// persistLocked writes the current session through to the credential store.
// Callers must hold m.mu.
func (m *Manager) persistLocked() {
	m.store.Save(m.token, m.user, m.permissions)
}

// StoredToken returns the persisted token without touching in-memory state.
// The navigation guard uses it to detect a restorable session at startup.
func (m *Manager) StoredToken() string {
	return m.store.Load().Token
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// HasUser reports whether the user record has been confirmed.
func (m *Manager) HasUser() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// User returns the confirmed user record, or nil.
func (m *Manager) User() *gateway.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Token returns the current bearer token, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Permissions returns a copy of the current permission set.
func (m *Manager) Permissions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.permissions)
}

// HasPermission reports whether the session holds the named permission.
func (m *Manager) HasPermission(permission string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.permissions, permission)
}

// HasAllPermissions reports whether every named permission is held.
func (m *Manager) HasAllPermissions(permissions []string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range permissions {
		if !slices.Contains(m.permissions, p) {
			return false
		}
	}
	return true
}

// HasAnyPermission reports whether at least one named permission is held.
func (m *Manager) HasAnyPermission(permissions []string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range permissions {
		if slices.Contains(m.permissions, p) {
			return true
		}
	}
	return false
}

// Roles returns the names of the user's roles.
func (m *Manager) Roles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	names := make([]string, len(m.user.Roles))
	for i, r := range m.user.Roles {
		names[i] = r.Name
	}
	return names
}

// HasRole reports whether the user holds the named role.
func (m *Manager) HasRole(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return false
	}
	for _, r := range m.user.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the admin role.
func (m *Manager) IsAdmin() bool {
	return m.HasRole("admin")
}
