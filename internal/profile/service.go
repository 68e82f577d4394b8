// Package profile serves the authenticated user's own account record.
package profile

import (
	"context"
	"errors"
	"log/slog"

	"accounts/internal/apperr"
	"accounts/internal/password"
	"accounts/internal/session"
	"accounts/internal/users"
)

// UpdateRequest is the request payload for a partial profile update. Absent
// and empty fields are left unchanged.
type UpdateRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// Service defines the profile service interface
type Service interface {
	GetProfile(ctx context.Context, token string) (*users.Profile, error)
	UpdateProfile(ctx context.Context, token string, req UpdateRequest) (*users.Profile, error)
}

type service struct {
	users    users.Repository
	hasher   password.Hasher
	sessions session.Manager
	logger   *slog.Logger
}

// NewService creates a new profile service
func NewService(repo users.Repository, hasher password.Hasher, sessions session.Manager, logger *slog.Logger) Service {
	return &service{
		users:    repo,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
}

// GetProfile returns the public view of the user behind token
func (s *service) GetProfile(ctx context.Context, token string) (*users.Profile, error) {
	sess, ok := s.sessions.Lookup(ctx, token)
	if !ok {
		return nil, apperr.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "Session refers to a missing user", "user_id", sess.UserID)
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Operation("select user by id", err)
	}

	return user.Profile(), nil
}

// UpdateProfile applies the present fields of req to the session's user and
// returns the fresh profile. The session's name snapshot is left as it was
// at login.
func (s *service) UpdateProfile(ctx context.Context, token string, req UpdateRequest) (*users.Profile, error) {
	sess, ok := s.sessions.Lookup(ctx, token)
	if !ok {
		return nil, apperr.ErrUnauthorized
	}

	changes := users.Changes{
		FirstName: present(req.FirstName),
		LastName:  present(req.LastName),
		Email:     present(req.Email),
	}
	if pw := present(req.Password); pw != nil {
		hash, err := s.hasher.Hash(*pw)
		if err != nil {
			return nil, apperr.Operation("hash password", err)
		}
		changes.PasswordHash = &hash
	}

	if changes.Empty() {
		return nil, apperr.ErrNoFields
	}

	if err := s.users.Update(ctx, sess.UserID, changes); err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			return nil, apperr.ErrNotFound
		case errors.Is(err, users.ErrEmailTaken):
			return nil, apperr.ErrDuplicateEmail
		default:
			return nil, apperr.Operation("update user", err)
		}
	}

	s.logger.InfoContext(ctx, "Profile updated", "user_id", sess.UserID, "password_changed", changes.PasswordHash != nil)

	return s.GetProfile(ctx, token)
}

func present(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
