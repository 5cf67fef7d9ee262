// ABOUTME: Route descriptors and the mutable route table
// ABOUTME: The default table mirrors the admin screen tree

package nav

import (
	"slices"
	"sync"
)

// LoginPath is the route every unauthenticated redirect lands on.
const LoginPath = "/auth/login"

// Meta is the guard-relevant metadata attached to a route.
type Meta struct {
	Title        string
	RequiresAuth bool
	Permission   string
}

// Route describes one navigable screen. A non-empty Redirect makes the
// route a pure alias; no screen is rendered at its path.
type Route struct {
	Path     string
	Name     string
	Redirect string
	Meta     Meta
}

// Table is the set of registered routes. It is mutable only through Add,
// which the Registrar uses after login; lookups are concurrent-safe.
type Table struct {
	mu     sync.RWMutex
	routes []Route
	byPath map[string]int
	byName map[string]int
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		byPath: make(map[string]int),
		byName: make(map[string]int),
	}
}

// DefaultTable builds the static route tree present before any login.
func DefaultTable() *Table {
	t := NewTable()
	for _, r := range []Route{
		{Path: LoginPath, Name: "Login", Meta: Meta{Title: "Login"}},
		{Path: "/login", Name: "LoginAlias", Redirect: LoginPath},
		{Path: "/", Name: "Home", Meta: Meta{Title: "Knowledge Base Console"}},
		{Path: "/admin/knowledge", Name: "Knowledge", Meta: Meta{Title: "Knowledge Bases", RequiresAuth: true, Permission: "knowledge.library.read"}},
		{Path: "/admin/documents", Name: "Documents", Meta: Meta{Title: "Documents", RequiresAuth: true, Permission: "document.read"}},
		{Path: "/admin/chat", Name: "Chat", Meta: Meta{Title: "Chat", RequiresAuth: true, Permission: "chat.use"}},
		{Path: "/admin/models", Name: "Models", Meta: Meta{Title: "Models", RequiresAuth: true, Permission: "model.manage"}},
		{Path: "/admin/rbac/users", Name: "Users", Meta: Meta{Title: "Users", RequiresAuth: true, Permission: "rbac.user.read"}},
		{Path: "/admin/rbac/roles", Name: "Roles", Meta: Meta{Title: "Roles", RequiresAuth: true, Permission: "rbac.role.read"}},
		{Path: "/admin/rbac/permissions", Name: "Permissions", Meta: Meta{Title: "Permissions", RequiresAuth: true, Permission: "rbac.permission.read"}},
		{Path: "/admin/settings", Name: "Settings", Meta: Meta{Title: "Settings", RequiresAuth: true}},
		{Path: "/unauthorized", Name: "Unauthorized", Meta: Meta{Title: "Access Restricted", RequiresAuth: true}},
	} {
		t.Add(r)
	}
	return t
}

// Add registers a route. A route with an already-registered path or name
// is ignored; registration is idempotent.
func (t *Table) Add(route Route) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byPath[route.Path]; ok {
		return
	}
	if _, ok := t.byName[route.Name]; ok {
		return
	}
	t.routes = append(t.routes, route)
	t.byPath[route.Path] = len(t.routes) - 1
	t.byName[route.Name] = len(t.routes) - 1
}

// Lookup returns the route registered at path.
func (t *Table) Lookup(path string) (Route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i, ok := t.byPath[path]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Has reports whether a route with the given name is registered.
func (t *Table) Has(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byName[name]
	return ok
}

// Routes returns the registered routes in registration order.
func (t *Table) Routes() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.routes)
}
