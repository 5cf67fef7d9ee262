// ABOUTME: Auth endpoints: token issue, current user, permission listing
// ABOUTME: Login is form-encoded and never carries a bearer token

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Login exchanges credentials for a token at POST /auth/token. The request
// is form-encoded per the backend's OAuth2 password flow and is sent without
// a bearer header: it establishes the session rather than using one. For the
// same reason a 401 here is a credential rejection, not a session-invalid
// signal, so the unauthorized handler is deliberately not fired.
// rememberMe is forwarded as remember_me; the backend may lengthen the token
// lifetime but the client makes no assumption about it.
func (c *Client) Login(ctx context.Context, username, password string, rememberMe bool) (*LoginResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	if rememberMe {
		form.Set("remember_me", "true")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/token", nil, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Del("Authorization") // a stale token must not shadow the credential check

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, newAPIError(resp.StatusCode, data, req.Header.Get("X-Request-ID"))
	}

	var login LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &login, nil
}

// UserPermissions fetches the flat permission-name list for a username from
// GET /auth/user-permissions.
func (c *Client) UserPermissions(ctx context.Context, username string) ([]string, error) {
	query := url.Values{}
	query.Set("username", username)

	var perms []string
	if err := c.get(ctx, "/auth/user-permissions", query, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// Me fetches the authenticated user's record from GET /auth/me.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
