// ABOUTME: RBAC administration endpoints: users, roles, permissions
// ABOUTME: Admin listings are paginated inside the backend's data envelope

package gateway

import (
	"context"
	"net/url"
	"strconv"
)

// listQuery builds the shared pagination query for admin listings.
func listQuery(page, pageSize int, search string) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}
	if search != "" {
		query.Set("search", search)
	}
	return query
}

// ListUsers returns a page of users matching search.
func (c *Client) ListUsers(ctx context.Context, page, pageSize int, search string) (*Page[User], error) {
	var env envelope[Page[User]]
	if err := c.get(ctx, "/users/", listQuery(page, pageSize, search), &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetUser fetches one user by ID.
func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/"+strconv.Itoa(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user account.
func (c *Client) CreateUser(ctx context.Context, req UserCreate) (*User, error) {
	var user User
	if err := c.post(ctx, "/users/", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, id int, req UserUpdate) (*User, error) {
	var user User
	if err := c.put(ctx, "/users/"+strconv.Itoa(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.del(ctx, "/users/"+strconv.Itoa(id))
}

// SetUserRoles replaces a user's role set by role name.
func (c *Client) SetUserRoles(ctx context.Context, id int, roleNames []string) (*User, error) {
	body := struct {
		Roles []string `json:"roles"`
	}{Roles: roleNames}

	var user User
	if err := c.put(ctx, "/users/"+strconv.Itoa(id)+"/roles", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetUserPassword sets a new password for a user.
func (c *Client) ResetUserPassword(ctx context.Context, id int, newPassword string) error {
	body := struct {
		NewPassword string `json:"new_password"`
	}{NewPassword: newPassword}
	return c.post(ctx, "/users/"+strconv.Itoa(id)+"/reset-password", body, nil)
}

// ListRoles returns a page of roles matching search.
func (c *Client) ListRoles(ctx context.Context, page, pageSize int, search string) (*Page[Role], error) {
	var env envelope[Page[Role]]
	if err := c.get(ctx, "/roles/", listQuery(page, pageSize, search), &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetRole fetches one role by ID.
func (c *Client) GetRole(ctx context.Context, id int) (*Role, error) {
	var role Role
	if err := c.get(ctx, "/roles/"+strconv.Itoa(id), nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateRole creates a role.
func (c *Client) CreateRole(ctx context.Context, req RoleCreate) (*Role, error) {
	var role Role
	if err := c.post(ctx, "/roles/", req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole applies a partial update to a role.
func (c *Client) UpdateRole(ctx context.Context, id int, req RoleUpdate) (*Role, error) {
	var role Role
	if err := c.put(ctx, "/roles/"+strconv.Itoa(id), req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole removes a role.
func (c *Client) DeleteRole(ctx context.Context, id int) error {
	return c.del(ctx, "/roles/"+strconv.Itoa(id))
}

// SetRolePermissions replaces a role's permission set by permission name.
func (c *Client) SetRolePermissions(ctx context.Context, id int, permissionNames []string) (*Role, error) {
	body := struct {
		Permissions []string `json:"permissions"`
	}{Permissions: permissionNames}

	var role Role
	if err := c.put(ctx, "/roles/"+strconv.Itoa(id)+"/permissions", body, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// RoleUsers returns the usernames holding a role.
func (c *Client) RoleUsers(ctx context.Context, id int) ([]string, error) {
	var usernames []string
	if err := c.get(ctx, "/roles/"+strconv.Itoa(id)+"/users", nil, &usernames); err != nil {
		return nil, err
	}
	return usernames, nil
}

// ListPermissions returns a page of permissions matching search.
func (c *Client) ListPermissions(ctx context.Context, page, pageSize int, search string) (*Page[Permission], error) {
	var env envelope[Page[Permission]]
	if err := c.get(ctx, "/permissions/", listQuery(page, pageSize, search), &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// CreatePermission creates a permission.
func (c *Client) CreatePermission(ctx context.Context, req PermissionCreate) (*Permission, error) {
	var perm Permission
	if err := c.post(ctx, "/permissions/", req, &perm); err != nil {
		return nil, err
	}
	return &perm, nil
}

// UpdatePermission replaces a permission's fields.
func (c *Client) UpdatePermission(ctx context.Context, id int, req PermissionCreate) (*Permission, error) {
	var perm Permission
	if err := c.put(ctx, "/permissions/"+strconv.Itoa(id), req, &perm); err != nil {
		return nil, err
	}
	return &perm, nil
}

// DeletePermission removes a permission.
func (c *Client) DeletePermission(ctx context.Context, id int) error {
	return c.del(ctx, "/permissions/"+strconv.Itoa(id))
}
