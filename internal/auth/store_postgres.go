// Copyright (c) 2026 Inkwell. All rights reserved.

// PostgreSQL implementation of the auth storage contracts.
//
// # Architecture
//
// Repositories here are strictly separated from domain logic. They implement
// domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types via dberr to avoid leaking storage implementation
// details.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-dev/inkwell/internal/platform/dberr"
	"github.com/inkwell-dev/inkwell/internal/platform/sec"
)

// # Creation Hook

// CreateHook runs inside [PostgresUserRepository.Create] before the INSERT.
//
// The canonical hook is password hashing: it consumes the transient plaintext
// Password field, fills PasswordHash, and clears Password. Anchoring the hook
// at the repository rather than the service guarantees that every code path
// creating an account hashes before commit.
type CreateHook func(ctx context.Context, user *User) error

// HashingHook returns the standard pre-commit hook that bcrypt-hashes the
// transient password via the given hasher.
func HashingHook(hasher *sec.PasswordHasher) CreateHook {
	return func(_ context.Context, user *User) error {
		if user.Password == "" {
			return fmt.Errorf("auth_create_hook_missing_password")
		}

		hash, err := hasher.Hash(user.Password)
		if err != nil {
			return fmt.Errorf("auth_create_hook_hash_failed: %w", err)
		}

		user.PasswordHash = hash
		user.Password = ""
		return nil
	}
}

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool       *pgxpool.Pool
	createHook CreateHook
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
// The hook is mandatory; constructing without one would let plaintext reach the table.
func NewUserRepository(pool *pgxpool.Pool, hook CreateHook) *PostgresUserRepository {
	if hook == nil {
		panic("auth: NewUserRepository requires a non-nil CreateHook")
	}
	return &PostgresUserRepository{pool: pool, createHook: hook}
}

/*
Create persists a new user record into the users.account table.

Description: Runs the pre-commit hook first (hashing the transient password),
then inserts the row. If the hook fails, nothing is written.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Hook failures, constraint violations, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, passwordhash, displayname, bio, role, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	// Pre-commit hook: hash before anything touches the wire.
	if err := repository.createHook(context, user); err != nil {
		return err
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.Bio,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Username or email is already registered")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: Performs a lookup on the account table, filtering out soft-deleted users.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, displayname, bio, role, createdat, updatedat
		FROM users.account
		WHERE email = $1 AND deletedat IS NULL`

	return repository.scanOne(context, query, email)
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, displayname, bio, role, createdat, updatedat
		FROM users.account
		WHERE username = $1 AND deletedat IS NULL`

	return repository.scanOne(context, query, username)
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts. This is the hot path
of session decoding, so it stays a single indexed lookup.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, displayname, bio, role, createdat, updatedat
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	return repository.scanOne(context, query, id)
}

// scanOne executes a single-row account query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Bio,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return user, nil
}

/*
Update persists changes to a user's mutable profile fields.

Description: Synchronizes the in-memory user state with the database,
refreshing the updatedat timestamp. Credentials are excluded; use
UpdatePassword for those.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET displayname = $2, bio = $3, updatedat = $4
		WHERE id = $1 AND deletedat IS NULL`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.DisplayName,
		user.Bio,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1 AND deletedat IS NULL`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
SoftDelete marks a user account as deleted using their ID.

Description: Retention-friendly deletion by setting deletedat. Existing
sessions pointing at the account will decode to anonymous from now on.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Side-effect failures
*/
func (repository *PostgresUserRepository) SoftDelete(context context.Context, id string) error {
	const query = "UPDATE users.account SET deletedat = $2 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "")
	}
	return nil
}
