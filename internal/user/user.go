// Package user is the keyed record store for user accounts. The auth core
// only depends on the Store interface; Postgres backs it in deployment and
// the memory implementation backs development and tests.
package user

import "time"

type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Salt          string
	Role          string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SafeUser is the wire shape of a user with credential material removed.
type SafeUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

// Safe strips the password hash and salt for responses.
func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}
}

// Update describes a partial update; nil fields are left untouched.
type Update struct {
	Name          *string
	Email         *string
	PasswordHash  *string
	Salt          *string
	EmailVerified *bool
}
