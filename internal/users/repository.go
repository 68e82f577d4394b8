// Package users is the credential store: persistence of user accounts behind
// a small Repository interface with Postgres and in-memory implementations.
package users

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound is returned when no row matches the lookup key
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the store rejects a duplicate email
	ErrEmailTaken = errors.New("email already registered")
)

// Repository is the set of queries issued by the authentication and profile
// services: select-by-email, insert, select-by-id and update-by-id.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, id string, changes Changes) error
}
