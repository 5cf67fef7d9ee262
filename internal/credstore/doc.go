// Package credstore persists the client session and user preferences.
//
// # Overview
//
// The store is a small sqlite key-value table mirroring the in-memory
// session: token, user record and permission list, plus preference keys
// (remembered username, theme, sidebar state). It is a convenience mirror,
// not an authority: the in-memory session wins on any conflict, and every
// failure path degrades to "no persisted value".
//
// # Contract
//
//   - Load never fails. Missing rows and corrupt JSON yield zero values.
//   - Save and Clear log failures and otherwise swallow them.
//   - Clear removes only the session keys in one transaction; preference
//     keys survive a logout.
//
// # Schema
//
//	CREATE TABLE IF NOT EXISTS kv (
//	    key   TEXT PRIMARY KEY,
//	    value TEXT NOT NULL
//	)
//
// Session keys: "token", "user" (JSON), "permissions" (JSON array).
// Preference keys: "remembered_username", "theme", "sidebar_collapsed",
// "redirect_after_login".
package credstore
