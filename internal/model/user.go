package model

import "time"

// Roles assignable to a user.  New accounts are always RoleUser; RoleAdmin
// is only ever set out of band (there is no promotion endpoint).
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user record as held by the user store.
// PasswordHash never leaves the process: every outward response goes through
// View() which drops it.
//
// Fields:
//  ID           - unique identifier, assigned by the store.
//  Email        - unique email address, compared exactly as stored.
//  Username     - unique display name, 3-30 characters.
//  PasswordHash - bcrypt hashed password.
//  Role         - RoleUser or RoleAdmin.
//  IsActive     - whether the account may log in.
//  CreatedAt    - timestamp of registration.
//  UpdatedAt    - touched on every successful login.
type User struct {
	ID           uint64
	Email        string
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserView is the password-stripped representation returned by the API.
type UserView struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the sanitized form of the user.  Every code path that writes
// a user to a response must go through this transform.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
