// Package session owns the client-side authentication state.
//
// # Overview
//
// A Manager holds the bearer token, the confirmed user record and the
// permission set, mirrored through the credential store and installed into
// the gateway client. It is constructed explicitly at startup and injected
// into the navigation layer; there is no package-level singleton.
//
// # Invariants
//
//   - The token is the root of trust: user and permissions are never
//     populated while the token is absent.
//   - Permissions are replaced wholesale by each successful fetch, never
//     merged. A failed fetch retains the previous value: permissions only
//     gate UI affordances, the backend enforces authorization on every
//     request, so stale permissions are an availability tradeoff rather
//     than a security hole.
//   - Logout clears token, user and permissions together, in memory and on
//     disk, and preserves the remembered-username preference.
//
// # Session generations
//
// Every mutation that installs or clears a session increments a monotonic
// generation counter. Async completions (a login response, a permission
// fetch) capture the generation they started under and are discarded if it
// has moved on, so a forced logout triggered by a global 401 cannot be
// overwritten by a response that was already in flight.
//
// # Startup
//
// InitAuth adopts the persisted session and refreshes permissions. It
// reports an error only when the gateway rejected the token (401); the
// caller decides whether to demote to logged-out, matching the rule that a
// single failed refresh never self-demotes the session.
package session
