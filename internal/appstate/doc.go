// Package appstate holds presentation-level state shared across screens:
// theme, sidebar collapse, the global loading flag, the screen title and
// the blocking notification dialog. Preference toggles write through to
// the credential store so they survive restarts and logouts. Initialize
// restores the persisted session at startup and demotes to logged-out
// when the gateway rejects the stored token.
package appstate
