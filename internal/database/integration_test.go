package database_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"accounts/internal/database"
	"accounts/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func mustStartPostgres(t *testing.T) database.Service {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	var (
		dbName = "companydb"
		dbPwd  = "password"
		dbUser = "user"
	)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	svc, err := database.New(database.Config{
		Host:            host,
		Port:            port.Port(),
		Database:        dbName,
		Username:        dbUser,
		Password:        dbPwd,
		Schema:          "public",
		SSLMode:         "disable",
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	require.NoError(t, svc.Migrate(ctx))
	return svc
}

func TestPostgres_HealthAndUsers(t *testing.T) {
	svc := mustStartPostgres(t)
	ctx := context.Background()

	stats := svc.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "4", stats["max_open_connections"])

	repo := users.NewPostgresRepository(svc.DB())

	created, err := repo.Create(ctx, &users.User{FirstName: "John", LastName: "Doe", Email: "a@b.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, &users.User{FirstName: "Jane", LastName: "Doe", Email: "a@b.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, users.ErrEmailTaken)

	byEmail, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	first := "Alice"
	require.NoError(t, repo.Update(ctx, created.ID, users.Changes{FirstName: &first}))

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.FirstName)
	assert.Equal(t, "Doe", byID.LastName)
	assert.Equal(t, "a@b.com", byID.Email)

	other, err := repo.Create(ctx, &users.User{FirstName: "Bob", LastName: "Roe", Email: "bob@b.com", PasswordHash: "hash"})
	require.NoError(t, err)
	taken := "a@b.com"
	assert.ErrorIs(t, repo.Update(ctx, other.ID, users.Changes{Email: &taken}), users.ErrEmailTaken)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}
