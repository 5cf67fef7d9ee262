// ABOUTME: Tests for presentation-level state
// ABOUTME: Covers preference persistence, the dialog and startup demotion

package appstate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragops/kbconsole/internal/credstore"
	"github.com/ragops/kbconsole/internal/gateway"
	"github.com/ragops/kbconsole/internal/session"
)

func setupState(t *testing.T, handler http.Handler) (*State, *credstore.Store, *session.Manager) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := credstore.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.New(gateway.New(srv.URL), store, logger)
	return New(store, sess, logger), store, sess
}

func okHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(gateway.User{ID: 1, Username: "admin"})
	})
	mux.HandleFunc("/auth/user-permissions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode([]string{"chat.use"})
	})
	return mux
}

func TestState_TogglesPersist(t *testing.T) {
	state, store, _ := setupState(t, okHandler())

	assert.False(t, state.DarkMode())
	assert.True(t, state.ToggleDarkMode())
	assert.Equal(t, "dark", store.Get(credstore.KeyTheme))
	assert.False(t, state.ToggleDarkMode())
	assert.Equal(t, "light", store.Get(credstore.KeyTheme))

	assert.True(t, state.ToggleSidebar())
	assert.Equal(t, "true", store.Get(credstore.KeySidebarCollapsed))
}

func TestState_InitializeLoadsPreferences(t *testing.T) {
	state, store, _ := setupState(t, okHandler())
	store.Set(credstore.KeyTheme, "dark")
	store.Set(credstore.KeySidebarCollapsed, "true")

	require.NoError(t, state.Initialize(context.Background()))
	assert.True(t, state.DarkMode())
	assert.True(t, state.SidebarCollapsed())
	assert.False(t, state.Loading())
}

func TestState_InitializeRestoresSession(t *testing.T) {
	state, store, sess := setupState(t, okHandler())
	store.Save("tok-good", nil, nil)

	require.NoError(t, state.Initialize(context.Background()))
	assert.True(t, sess.IsAuthenticated())
	require.NotNil(t, sess.User())
	assert.Equal(t, "admin", sess.User().Username)
}

func TestState_InitializeDemotesRejectedToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	})
	state, store, sess := setupState(t, mux)
	store.Save("tok-stale", &gateway.User{ID: 1, Username: "admin"}, nil)

	err := state.Initialize(context.Background())
	require.Error(t, err)
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, store.Load().Token)
}

func TestState_Dialog(t *testing.T) {
	state, _, _ := setupState(t, okHandler())

	open, _, _ := state.Dialog()
	assert.False(t, open)

	state.Notify("Access Restricted", "You do not have permission to access this feature.")
	open, title, message := state.Dialog()
	assert.True(t, open)
	assert.Equal(t, "Access Restricted", title)
	assert.NotEmpty(t, message)

	state.CloseDialog()
	open, title, _ = state.Dialog()
	assert.False(t, open)
	assert.Empty(t, title)
}

func TestState_Title(t *testing.T) {
	state, _, _ := setupState(t, okHandler())
	state.SetTitle("Users")
	assert.Equal(t, "Users", state.Title())
}
