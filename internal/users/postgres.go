package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation
const uniqueViolation = "23505"

// DBTX is satisfied by *sql.DB, *sql.Conn and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresRepository stores users in the users table
type PostgresRepository struct {
	db  DBTX
	now func() time.Time
}

// NewPostgresRepository creates a repository on top of db
func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

const selectUserColumns = `SELECT id, first_name, last_name, email, password_hash, created_at, updated_at FROM users`

// GetByEmail retrieves a user by exact email
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := selectUserColumns + ` WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by id
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := selectUserColumns + ` WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

// Create inserts user and returns it with its generated id and timestamps
func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	created := *user
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	now := r.now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		created.ID, created.FirstName, created.LastName, created.Email, created.PasswordHash, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &created, nil
}

// Update applies the non-nil fields of changes to the row identified by id
func (r *PostgresRepository) Update(ctx context.Context, id string, changes Changes) error {
	if changes.Empty() {
		return nil
	}

	// Build dynamic update query based on provided fields
	var (
		setClauses []string
		args       []any
	)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("first_name", changes.FirstName)
	add("last_name", changes.LastName)
	add("email", changes.Email)
	add("password_hash", changes.PasswordHash)

	args = append(args, r.now().UTC())
	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// isUniqueViolation checks if the error is a Postgres unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
