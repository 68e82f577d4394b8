// Package session provides the session registry shared by the authentication
// and profile services. Sessions live in process memory and are addressed by
// an opaque bearer token carried in the "session" cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// maxTokenAttempts bounds retries when a generated token collides
const maxTokenAttempts = 3

// Manager defines the interface for session management operations
type Manager interface {
	Create(ctx context.Context, userID, email, firstName, lastName string) (string, error)
	// Lookup reports absent (nil, false) for unknown or expired tokens
	Lookup(ctx context.Context, token string) (*Session, bool)
	// Delete is idempotent
	Delete(ctx context.Context, token string)
	Count() int
}

// Options tunes a Manager. The zero value gives non-expiring, unbounded
// sessions with UUID tokens.
type Options struct {
	TTL        time.Duration
	MaxEntries int
	Tokens     TokenGenerator
	Now        func() time.Time
}

// manager implements Manager interface
type manager struct {
	store      Store
	ttl        time.Duration
	maxEntries int
	tokens     TokenGenerator
	now        func() time.Time
}

// NewManager creates a new session manager
func NewManager(store Store, opts Options) Manager {
	if opts.Tokens == nil {
		opts.Tokens = UUIDTokenGenerator
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &manager{
		store:      store,
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		tokens:     opts.Tokens,
		now:        opts.Now,
	}
}

// Create stores a new session and returns its token
func (m *manager) Create(ctx context.Context, userID, email, firstName, lastName string) (string, error) {
	now := m.now()
	sess := Session{
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
	}
	if m.ttl > 0 {
		sess.ExpiresAt = now.Add(m.ttl)
	}

	purged := false
	for attempt := 0; attempt < maxTokenAttempts; {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		token, err := m.tokens.NewToken()
		if err != nil {
			return "", err
		}
		sess.Token = token

		err = m.store.Insert(sess, m.maxEntries)
		switch {
		case err == nil:
			return token, nil
		case errors.Is(err, ErrRegistryFull) && !purged:
			purged = true
			m.store.DeleteExpired(now)
		case errors.Is(err, ErrTokenTaken):
			attempt++
		default:
			return "", err
		}
	}

	return "", fmt.Errorf("failed to store session: %w", ErrTokenTaken)
}

// Lookup retrieves a live session by token
func (m *manager) Lookup(_ context.Context, token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}

	sess, ok := m.store.Get(token)
	if !ok {
		return nil, false
	}

	// Expired sessions are removed lazily
	if sess.Expired(m.now()) {
		m.store.Delete(token)
		return nil, false
	}

	return &sess, true
}

// Delete removes a session
func (m *manager) Delete(_ context.Context, token string) {
	if token == "" {
		return
	}
	m.store.Delete(token)
}

// Count returns the number of stored sessions, expired ones included until swept
func (m *manager) Count() int {
	return m.store.Len()
}
