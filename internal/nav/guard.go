// ABOUTME: Navigation guard: the pre-transition decision function
// ABOUTME: Ordered short-circuit checks against session state and route metadata

package nav

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ragops/kbconsole/internal/credstore"
)

// Session is what the guard needs to know about the authentication state.
// *session.Manager satisfies it.
type Session interface {
	IsAuthenticated() bool
	HasUser() bool
	StoredToken() string
	HasPermission(permission string) bool
	InitAuth(ctx context.Context) error
	Logout()
}

// PrefStore persists the post-login redirect target. *credstore.Store
// satisfies it.
type PrefStore interface {
	Get(key string) string
	Set(key, value string)
	Delete(key string)
}

// Notifier surfaces a user-visible notice when a transition is denied.
type Notifier interface {
	Notify(title, message string)
}

// Guard decides whether each screen transition proceeds, redirects or is
// denied. It is constructed once at startup and holds no per-transition
// state; the post-login target lives in the preference store.
type Guard struct {
	session  Session
	table    *Table
	prefs    PrefStore
	notifier Notifier
	setTitle func(title string)
	logger   *slog.Logger
}

// NewGuard creates a guard. notifier and setTitle may be nil, in which
// case denial notices and titles are dropped.
func NewGuard(session Session, table *Table, prefs PrefStore, notifier Notifier, setTitle func(string), logger *slog.Logger) *Guard {
	return &Guard{
		session:  session,
		table:    table,
		prefs:    prefs,
		notifier: notifier,
		setTitle: setTitle,
		logger:   logger.With("component", "nav"),
	}
}

// Decide evaluates a transition to path. Checks run in a fixed priority
// order and short-circuit; each is evaluated against the session as the
// previous step left it.
func (g *Guard) Decide(ctx context.Context, path string) Decision {
	// A persisted token without a confirmed user means the session has not
	// been restored yet. A failed restore is the one place the guard
	// demotes the session itself.
	if g.session.StoredToken() != "" && !g.session.HasUser() {
		if err := g.session.InitAuth(ctx); err != nil {
			g.logger.Warn("session restore failed", "error", err)
			g.session.Logout()
			return RedirectTo(LoginPath)
		}
	}

	route, ok := g.table.Lookup(path)
	if !ok {
		if g.session.IsAuthenticated() {
			return RedirectTo("/")
		}
		return RedirectTo(LoginPath)
	}
	if route.Redirect != "" {
		return RedirectTo(route.Redirect)
	}

	authenticated := g.session.IsAuthenticated()

	if path == "/" && !authenticated {
		return RedirectTo(LoginPath)
	}

	if authenticated && strings.HasPrefix(path, "/auth/") {
		return RedirectTo("/")
	}

	if route.Meta.RequiresAuth && !authenticated {
		g.prefs.Set(credstore.KeyRedirectTarget, path)
		return RedirectTo(LoginPath)
	}

	if authenticated && route.Meta.Permission != "" && !g.session.HasPermission(route.Meta.Permission) {
		g.logger.Warn("access denied",
			"path", path,
			"permission", route.Meta.Permission)
		if g.notifier != nil {
			g.notifier.Notify("Access Restricted",
				"You do not have permission to access this feature. Please contact an administrator.")
		}
		return Deny()
	}

	if route.Meta.Title != "" && g.setTitle != nil {
		g.setTitle(route.Meta.Title)
	}
	return Proceed()
}

// AfterNavigate records arrival at path. Arrival anywhere other than the
// login route clears the persisted post-login target: it has either been
// consumed or is no longer relevant.
func (g *Guard) AfterNavigate(path string) {
	if path != LoginPath {
		g.prefs.Delete(credstore.KeyRedirectTarget)
	}
}

// PostLoginTarget returns the persisted redirect target, or "/" when none
// is pending. The target is cleared by AfterNavigate on arrival, not here.
func (g *Guard) PostLoginTarget() string {
	if target := g.prefs.Get(credstore.KeyRedirectTarget); target != "" {
		return target
	}
	return "/"
}
