package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, &User{FirstName: "John", LastName: "Doe", Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byEmail, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &Profile{FirstName: "John", LastName: "Doe", Email: "a@b.com"}, byID.Profile())

	_, err = repo.GetByEmail(ctx, "A@B.COM")
	assert.ErrorIs(t, err, ErrUserNotFound, "emails are case-sensitive as stored")
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Create(ctx, &User{Email: "a@b.com"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &User{Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryRepository_UpdateReindexesEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := repo.Create(ctx, &User{FirstName: "John", Email: "old@b.com"})
	require.NoError(t, err)
	other, err := repo.Create(ctx, &User{Email: "other@b.com"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, u.ID, Changes{Email: strPtr("new@b.com"), FirstName: strPtr("Jack")}))

	_, err = repo.GetByEmail(ctx, "old@b.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	got, err := repo.GetByEmail(ctx, "new@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Jack", got.FirstName)

	err = repo.Update(ctx, u.ID, Changes{Email: strPtr("other@b.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NotEqual(t, u.ID, other.ID)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := repo.Create(ctx, &User{FirstName: "John", Email: "a@b.com"})
	require.NoError(t, err)

	u.FirstName = "Mutated"
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
}

func TestMemoryRepository_DeleteAndUpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := repo.Create(ctx, &User{Email: "a@b.com"})
	require.NoError(t, err)
	repo.Delete(u.ID)
	repo.Delete(u.ID)

	_, err = repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, repo.Update(ctx, u.ID, Changes{FirstName: strPtr("x")}), ErrUserNotFound)
}
