// Copyright (c) 2026 Inkwell. All rights reserved.

package sec

// Principal is the per-request view of an authenticated identity.
//
// # Lifecycle
//
// It is rebuilt on every request: the session middleware resolves the
// opaque cookie key against the session store, re-fetches the account by
// id, and injects the resulting Principal into the request context. It is
// never serialized to the client and never contains the password hash.
type Principal struct {
	// UserID is the account's primary key (UUIDv7).
	UserID string

	// Username is the unique login name, included so handlers and the
	// request logger don't need a second lookup for display purposes.
	Username string

	// Role is the account's authorization level.
	Role UserRole
}
