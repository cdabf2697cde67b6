// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Description: Runs the configured pre-commit hook (password hashing)
		before the row is written, so the transient plaintext never becomes
		durable state.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Hook or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		SoftDelete marks the account as deleted without removing the row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id string) error
}

// # Session Data Access

// SessionStore defines the contract for the volatile session registry.
//
// Keys are the opaque random values handed to clients in the session cookie.
// Each key maps to the encoded identity token produced by [SessionCodec].
// Entries expire on their own; expiry and explicit deletion are
// indistinguishable to readers.
type SessionStore interface {

	/*
		Set stores a session entry under the opaque key for a limited duration.

		Parameters:
		  - context: context.Context
		  - sessionKey: string
		  - token: string (encoded identity)
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, sessionKey string, token string, ttl time.Duration) error

	/*
		Get retrieves the encoded identity token for a session key.

		Parameters:
		  - context: context.Context
		  - sessionKey: string

		Returns:
		  - string: Encoded identity token
		  - error: apperr.NotFound if absent or expired, or retrieval failures
	*/
	Get(context context.Context, sessionKey string) (string, error)

	/*
		Delete removes a session entry, ending the session immediately.

		Parameters:
		  - context: context.Context
		  - sessionKey: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, sessionKey string) error
}
