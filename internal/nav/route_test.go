// ABOUTME: Tests for the route table
// ABOUTME: Covers lookup, duplicate handling and registration order

package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AddAndLookup(t *testing.T) {
	table := NewTable()
	table.Add(Route{Path: "/a", Name: "A", Meta: Meta{Title: "A"}})

	route, ok := table.Lookup("/a")
	require.True(t, ok)
	assert.Equal(t, "A", route.Name)

	_, ok = table.Lookup("/missing")
	assert.False(t, ok)
}

func TestTable_DuplicatesIgnored(t *testing.T) {
	table := NewTable()
	table.Add(Route{Path: "/a", Name: "A", Meta: Meta{Title: "first"}})
	table.Add(Route{Path: "/a", Name: "A2", Meta: Meta{Title: "same path"}})
	table.Add(Route{Path: "/b", Name: "A", Meta: Meta{Title: "same name"}})

	assert.Len(t, table.Routes(), 1)
	route, _ := table.Lookup("/a")
	assert.Equal(t, "first", route.Meta.Title)
}

func TestDefaultTable_CoversAdminTree(t *testing.T) {
	table := DefaultTable()

	for _, path := range []string{
		LoginPath, "/", "/admin/knowledge", "/admin/documents", "/admin/chat",
		"/admin/models", "/admin/rbac/users", "/admin/rbac/roles",
		"/admin/rbac/permissions", "/admin/settings", "/unauthorized",
	} {
		_, ok := table.Lookup(path)
		assert.True(t, ok, "missing route %s", path)
	}

	alias, ok := table.Lookup("/login")
	require.True(t, ok)
	assert.Equal(t, LoginPath, alias.Redirect)
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "proceed", Proceed().String())
	assert.Equal(t, "redirect(/auth/login)", RedirectTo(LoginPath).String())
	assert.Equal(t, "deny", Deny().String())
}
