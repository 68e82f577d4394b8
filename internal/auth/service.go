// Package auth implements password authentication for the accounts service:
// registration, login and logout on top of the credential store and the
// session registry.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"accounts/internal/apperr"
	"accounts/internal/password"
	"accounts/internal/session"
	"accounts/internal/users"
)

// LoggedOutMessage confirms a logout
const LoggedOutMessage = "Logged out"

// Service defines the authentication service interface
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*users.Profile, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, token string) string
}

// service implements the Service interface
type service struct {
	users    users.Repository
	hasher   password.Hasher
	sessions session.Manager
	logger   *slog.Logger

	// dummyHash is verified against when the email is unknown so both
	// failure paths cost one hash comparison
	dummyHash string
}

// NewService creates a new authentication service
func NewService(repo users.Repository, hasher password.Hasher, sessions session.Manager, logger *slog.Logger) Service {
	s := &service{
		users:    repo,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
	if h, err := hasher.Hash("accounts-dummy-password"); err == nil {
		s.dummyHash = h
	}
	return s
}

// Register creates a user with a hashed password and returns its public view
func (s *service) Register(ctx context.Context, req RegisterRequest) (*users.Profile, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.ErrValidation
	}

	// Fast path for a friendly error; the unique constraint is authoritative
	_, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, apperr.ErrDuplicateEmail
	case !errors.Is(err, users.ErrUserNotFound):
		return nil, apperr.Operation("select user by email", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.Operation("hash password", err)
	}

	created, err := s.users.Create(ctx, &users.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, apperr.ErrDuplicateEmail
		}
		return nil, apperr.Operation("insert user", err)
	}

	s.logger.InfoContext(ctx, "User registered", "user_id", created.ID)

	return created.Profile(), nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password fail identically.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			if s.dummyHash != "" {
				_, _ = s.hasher.Verify(req.Password, s.dummyHash)
			}
			s.logger.WarnContext(ctx, "Login failed", "reason", "unknown email")
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, apperr.Operation("select user by email", err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, apperr.Operation("verify password", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "Login failed", "reason", "password mismatch", "user_id", user.ID)
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return nil, apperr.Operation("create session", err)
	}

	s.logger.InfoContext(ctx, "Session created", "user_id", user.ID)

	return &LoginResult{User: user.Profile(), Token: token}, nil
}

// Logout deletes the session unconditionally
func (s *service) Logout(ctx context.Context, token string) string {
	s.sessions.Delete(ctx, token)
	return LoggedOutMessage
}
