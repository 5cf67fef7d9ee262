// ABOUTME: Tests for the post-login route registrar
// ABOUTME: Covers permission gating and idempotent re-registration

package nav

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistrar_AddsOnlyHeldPermissions(t *testing.T) {
	table := DefaultTable()
	session := &fakeSession{permissions: []string{"menu:chat", "menu:knowledge"}}

	added := NewRegistrar(table, session, discardLogger()).Register()
	assert.Equal(t, 2, added)

	assert.True(t, table.Has("ChatMenu"))
	assert.True(t, table.Has("KnowledgeMenu"))
	assert.False(t, table.Has("ModelMenu"))

	route, ok := table.Lookup("/chat")
	require.True(t, ok)
	assert.Equal(t, "menu:chat", route.Meta.Permission)
}

func TestRegistrar_NoPermissionsAddsNothing(t *testing.T) {
	table := DefaultTable()
	before := len(table.Routes())

	added := NewRegistrar(table, &fakeSession{permissions: []string{"chat.use"}}, discardLogger()).Register()
	assert.Zero(t, added)
	assert.Len(t, table.Routes(), before)
}

func TestRegistrar_Idempotent(t *testing.T) {
	table := DefaultTable()
	session := &fakeSession{permissions: []string{"menu:chat"}}
	registrar := NewRegistrar(table, session, discardLogger())

	assert.Equal(t, 1, registrar.Register())
	assert.Equal(t, 0, registrar.Register())

	// A permission granted between logins is picked up by the next run
	session.permissions = append(session.permissions, "menu:settings")
	assert.Equal(t, 1, registrar.Register())
}

// A gated route never enters the navigable set for a session lacking the
// permission, independently of the guard's per-transition deny.
func TestRegistrar_DeniedRouteStaysUnregistered(t *testing.T) {
	table := DefaultTable()
	session := &fakeSession{authenticated: true, hasUser: true, permissions: []string{"chat.use"}}

	NewRegistrar(table, session, discardLogger()).Register()

	_, ok := table.Lookup("/knowledge")
	assert.False(t, ok)
}
