// Package gateway is the typed HTTP client for the knowledge-base backend.
//
// # Overview
//
// The backend exposes a REST API under a single base URL (default
// http://localhost:8000/api). This package wraps it with typed methods,
// one file per API surface:
//
//   - auth.go      POST /auth/token, GET /auth/me, GET /auth/user-permissions
//   - knowledge.go /knowledge-bases CRUD + stats
//   - documents.go /documents listing, upload, batch operations
//   - chat.go      /chat sessions, messages, SSE streaming
//   - rbac.go      /users, /roles, /permissions administration
//   - abtest.go    /ab-testing tests, queries, feedback
//
// # Authentication
//
// All requests except Login carry the bearer token installed with SetToken.
// The token is owned by the session layer; this package only transports it.
//
// # Error Handling
//
// Non-2xx responses decode into *APIError. The user-facing message is
// extracted from the response body in priority order: "detail", then
// "message", then "error", then the HTTP status text. A 401 response
// additionally unwraps to ErrUnauthorized and fires the handler installed
// with SetUnauthorizedHandler — the global "session invalid" signal.
//
// # Request Tracing
//
// Every request carries a generated X-Request-ID header and is logged at
// debug level with method, path and status.
package gateway
