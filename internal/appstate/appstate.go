// ABOUTME: UI-adjacent application state: theme, sidebar, dialog, title
// ABOUTME: Preferences write through to the credential store

package appstate

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ragops/kbconsole/internal/credstore"
	"github.com/ragops/kbconsole/internal/session"
)

// Version is the application version reported by /version and the dialog
// footer.
const Version = "1.0.0"

// State holds the presentation-level application state. It implements
// nav's Notifier through OpenDialog and owns the screen title.
type State struct {
	store   *credstore.Store
	session *session.Manager
	logger  *slog.Logger

	mu               sync.Mutex
	darkMode         bool
	sidebarCollapsed bool
	loading          bool
	title            string

	dialogOpen    bool
	dialogTitle   string
	dialogMessage string
}

// New creates the application state.
func New(store *credstore.Store, sess *session.Manager, logger *slog.Logger) *State {
	return &State{
		store:   store,
		session: sess,
		logger:  logger.With("component", "appstate"),
	}
}

// Initialize restores the session and loads preferences. A rejected
// persisted token demotes to logged-out rather than failing startup;
// the returned error is reserved for that demotion so the caller can
// route to the login screen.
func (s *State) Initialize(ctx context.Context) error {
	s.SetLoading(true)
	defer s.SetLoading(false)

	var initErr error
	if err := s.session.InitAuth(ctx); err != nil {
		s.logger.Warn("persisted session rejected", "error", err)
		s.session.Logout()
		initErr = errors.New("session expired, please log in again")
	}

	s.loadPreferences()
	return initErr
}

// loadPreferences adopts the persisted theme and sidebar settings.
func (s *State) loadPreferences() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = s.store.Get(credstore.KeyTheme) == "dark"
	s.sidebarCollapsed = s.store.Get(credstore.KeySidebarCollapsed) == "true"
}

// DarkMode reports whether the dark theme is active.
func (s *State) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// ToggleDarkMode flips the theme and persists the choice.
func (s *State) ToggleDarkMode() bool {
	s.mu.Lock()
	s.darkMode = !s.darkMode
	dark := s.darkMode
	s.mu.Unlock()

	if dark {
		s.store.Set(credstore.KeyTheme, "dark")
	} else {
		s.store.Set(credstore.KeyTheme, "light")
	}
	return dark
}

// SidebarCollapsed reports whether the navigation sidebar is collapsed.
func (s *State) SidebarCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarCollapsed
}

// ToggleSidebar flips the sidebar state and persists the choice.
func (s *State) ToggleSidebar() bool {
	s.mu.Lock()
	s.sidebarCollapsed = !s.sidebarCollapsed
	collapsed := s.sidebarCollapsed
	s.mu.Unlock()

	if collapsed {
		s.store.Set(credstore.KeySidebarCollapsed, "true")
	} else {
		s.store.Set(credstore.KeySidebarCollapsed, "false")
	}
	return collapsed
}

// SetLoading marks a long-running operation in progress.
func (s *State) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Loading reports whether a long-running operation is in progress.
func (s *State) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetTitle records the current screen title.
func (s *State) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

// Title returns the current screen title.
func (s *State) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// OpenDialog raises the global dialog. It satisfies the navigation
// layer's Notifier.
func (s *State) OpenDialog(title, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialogOpen = true
	s.dialogTitle = title
	s.dialogMessage = message
}

// Notify is an alias for OpenDialog.
func (s *State) Notify(title, message string) {
	s.OpenDialog(title, message)
}

// CloseDialog dismisses the global dialog and clears its content.
func (s *State) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialogOpen = false
	s.dialogTitle = ""
	s.dialogMessage = ""
}

// Dialog returns the dialog state: open flag, title and message.
func (s *State) Dialog() (open bool, title, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialogOpen, s.dialogTitle, s.dialogMessage
}
