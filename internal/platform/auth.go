package platform

import (
	"context"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser is the identity returned by login and current-user calls.
type LoginUser struct {
	ID         int64  `json:"id"`
	Username   string `json:"username,omitempty"`
	Nickname   string `json:"nickname,omitempty"`
	CompanyID  int64  `json:"companyId,omitempty"`
	UserRole   string `json:"userRole,omitempty"`
	Token      string `json:"token,omitempty"`
	CreateTime string `json:"createTime,omitempty"`
	UpdateTime string `json:"updateTime,omitempty"`
}

// User is a row of the user management list.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Nickname   string `json:"nickname,omitempty"`
	CompanyID  int64  `json:"companyId,omitempty"`
	UserRole   string `json:"userRole"`
	IsDelete   bool   `json:"isDelete,omitempty"`
	CreateTime string `json:"createTime,omitempty"`
}

// UserQuery filters the user list.
type UserQuery struct {
	PageRequest
	ID        int64  `json:"id,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	Username  string `json:"username,omitempty"`
	CompanyID int64  `json:"companyId,omitempty"`
	UserRole  string `json:"userRole,omitempty"`
}

// RegisterRequest creates a user account.
type RegisterRequest struct {
	Username      string `json:"username"`
	UserRole      string `json:"userRole"`
	Nickname      string `json:"nickname,omitempty"`
	Password      string `json:"password,omitempty"`
	CheckPassword string `json:"checkPassword,omitempty"`
	CompanyID     int64  `json:"companyId,omitempty"`
}

// UserUpdateRequest changes a user's nickname or role.
type UserUpdateRequest struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname,omitempty"`
	UserRole string `json:"userRole,omitempty"`
}

// Login authenticates and returns the logged-in user. A nil user with a nil
// error means the backend accepted the call without a payload.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginUser, error) {
	return post[*LoginUser](ctx, c, "/user/login", LoginRequest{Username: username, Password: password})
}

// Logout ends the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := post[bool](ctx, c, "/user/logout", nil)
	return err
}

// GetLoginUser returns the user bound to the current session.
func (c *Client) GetLoginUser(ctx context.Context) (*LoginUser, error) {
	return get[*LoginUser](ctx, c, "/user/get/login", nil)
}

// ListUsers pages through user accounts.
func (c *Client) ListUsers(ctx context.Context, q UserQuery) (*Page[User], error) {
	q.PageRequest = q.PageRequest.Normalize()
	return post[*Page[User]](ctx, c, "/user/list/page/vo", q)
}

// GetUser returns one user account.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	return get[*User](ctx, c, "/user/get/vo", idQuery("id", id))
}

// Register creates a user account and returns its id.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	return post[int64](ctx, c, "/user/register", req)
}

// UpdateUser changes nickname or role.
func (c *Client) UpdateUser(ctx context.Context, req UserUpdateRequest) (bool, error) {
	return post[bool](ctx, c, "/user/update", req)
}

// ToggleUser enables or disables an account.
func (c *Client) ToggleUser(ctx context.Context, id int64) (bool, error) {
	return post[bool](ctx, c, "/user/toggle", IDRequest{ID: id})
}
