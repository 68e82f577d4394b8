package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository is a process-local Repository used by tests and local
// development. It enforces email uniqueness like the users table does.
type MemoryRepository struct {
	users    map[string]*User
	emailIDs map[string]string // email to user id
	lock     sync.RWMutex
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:    make(map[string]*User),
		emailIDs: make(map[string]string),
	}
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.emailIDs[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *r.users[id]
	return &u, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *MemoryRepository) Create(_ context.Context, user *User) (*User, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.emailIDs[user.Email]; ok {
		return nil, ErrEmailTaken
	}

	created := *user
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	stored := created
	r.users[created.ID] = &stored
	r.emailIDs[created.Email] = created.ID
	return &created, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, changes Changes) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	if changes.Email != nil && *changes.Email != user.Email {
		if _, taken := r.emailIDs[*changes.Email]; taken {
			return ErrEmailTaken
		}
		delete(r.emailIDs, user.Email)
		user.Email = *changes.Email
		r.emailIDs[user.Email] = id
	}
	if changes.FirstName != nil {
		user.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		user.LastName = *changes.LastName
	}
	if changes.PasswordHash != nil {
		user.PasswordHash = *changes.PasswordHash
	}
	user.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes the user with id. It exists so tests can model a session
// that outlives its user row.
func (r *MemoryRepository) Delete(id string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if user, ok := r.users[id]; ok {
		delete(r.emailIDs, user.Email)
		delete(r.users, id)
	}
}
