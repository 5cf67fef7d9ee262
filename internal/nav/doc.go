// Package nav gates screen transitions on session state and permissions.
//
// # Overview
//
// A Table maps paths to routes with metadata (title, requiresAuth, required
// permission). The Guard is a pure decision function run before every
// transition: it consults the session and the table and returns a tagged
// Decision (proceed, redirect, deny) evaluated in a fixed priority order.
// The Registrar adds permission-gated menu shortcuts to the table once per
// login, so users without a permission never see the route at all; the
// Guard's per-transition check remains the second line of defense.
//
// # Decision order
//
//  1. A persisted token without a confirmed user triggers session restore;
//     restore failure forces a logout and redirects to the login route.
//  2. The root path redirects unauthenticated sessions to login.
//  3. Authenticated sessions never see the auth section; redirect to root.
//  4. A route requiring auth redirects unauthenticated sessions to login,
//     persisting the intended path as the post-login target.
//  5. A route requiring a permission the session lacks is denied with a
//     user-visible notification; the current screen is retained.
//  6. Otherwise proceed, applying the route title as a side effect.
//
// Unknown paths redirect to root when authenticated, login otherwise.
// After arrival at any route other than login, the persisted post-login
// target is cleared.
package nav
