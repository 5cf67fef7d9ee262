// ABOUTME: Post-login registration of permission-gated menu shortcuts
// ABOUTME: Idempotent; users without a permission never get the route at all

package nav

import "log/slog"

// PermissionChecker is the slice of the session the registrar needs.
type PermissionChecker interface {
	HasPermission(permission string) bool
}

// menuRoutes are the top-level shortcuts registered after login for
// sessions holding the matching menu permission.
var menuRoutes = []Route{
	{Path: "/knowledge", Name: "KnowledgeMenu", Meta: Meta{Title: "Knowledge Bases", RequiresAuth: true, Permission: "menu:knowledge"}},
	{Path: "/document", Name: "DocumentMenu", Meta: Meta{Title: "Documents", RequiresAuth: true, Permission: "menu:document"}},
	{Path: "/chat", Name: "ChatMenu", Meta: Meta{Title: "Chat", RequiresAuth: true, Permission: "menu:chat"}},
	{Path: "/model", Name: "ModelMenu", Meta: Meta{Title: "Models", RequiresAuth: true, Permission: "menu:model"}},
	{Path: "/settings", Name: "SettingsMenu", Meta: Meta{Title: "Settings", RequiresAuth: true, Permission: "menu:settings"}},
}

// Registrar adds gated menu routes to the table once per login.
type Registrar struct {
	table   *Table
	session PermissionChecker
	logger  *slog.Logger
}

// NewRegistrar creates a registrar over table for the given session.
func NewRegistrar(table *Table, session PermissionChecker, logger *slog.Logger) *Registrar {
	return &Registrar{
		table:   table,
		session: session,
		logger:  logger.With("component", "nav"),
	}
}

// Register adds each candidate menu route the session holds the permission
// for, skipping routes already registered. It returns the number of routes
// added and may be called repeatedly.
func (r *Registrar) Register() int {
	added := 0
	for _, route := range menuRoutes {
		if r.table.Has(route.Name) {
			continue
		}
		if !r.session.HasPermission(route.Meta.Permission) {
			continue
		}
		r.table.Add(route)
		added++
	}
	if added > 0 {
		r.logger.Info("registered menu routes", "count", added)
	}
	return added
}
