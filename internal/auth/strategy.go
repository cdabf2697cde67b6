// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/sec"
)

// # Authentication Outcome

// OutcomeKind discriminates the three terminal states of an authentication attempt.
type OutcomeKind int

const (
	// OutcomeAuthenticated means the credentials matched a live account.
	OutcomeAuthenticated OutcomeKind = iota

	// OutcomeRejected means the credentials were well-formed but wrong.
	// Unknown logins and bad passwords both land here so responses cannot
	// be used to enumerate registered accounts.
	OutcomeRejected

	// OutcomeErrored means the attempt could not be evaluated at all
	// (storage unreachable, hashing primitive failure). It is never a
	// statement about the credentials.
	OutcomeErrored
)

// Outcome is the tagged result of [Strategy.Authenticate].
//
// Exactly one payload field is populated, matching the Kind:
//   - OutcomeAuthenticated: User is non-nil.
//   - OutcomeRejected: neither field is set.
//   - OutcomeErrored: Err is non-nil.
type Outcome struct {
	Kind OutcomeKind
	User *User
	Err  error
}

// Authenticated constructs a successful outcome carrying the matched user.
func Authenticated(user *User) Outcome {
	return Outcome{Kind: OutcomeAuthenticated, User: user}
}

// Rejected constructs a credential-mismatch outcome.
// It deliberately carries no detail about which part of the credentials failed.
func Rejected() Outcome {
	return Outcome{Kind: OutcomeRejected}
}

// Errored constructs an infrastructure-failure outcome.
func Errored(err error) Outcome {
	return Outcome{Kind: OutcomeErrored, Err: err}
}

// # Strategy Contract

// Strategy verifies a credential pair and classifies the attempt.
//
// # Why an interface?
//
// The service layer only cares about the three-way outcome, not how it was
// reached. This keeps the door open for alternative verification backends
// (LDAP, OAuth exchange) without touching the login flow, and lets tests
// script outcomes directly.
type Strategy interface {
	Authenticate(ctx context.Context, login, password string) Outcome
}

// # Local Password Strategy

// PasswordStrategy authenticates against locally stored bcrypt hashes.
type PasswordStrategy struct {
	users  UserRepository
	hasher *sec.PasswordHasher
}

// NewPasswordStrategy constructs a [PasswordStrategy].
func NewPasswordStrategy(users UserRepository, hasher *sec.PasswordHasher) *PasswordStrategy {
	return &PasswordStrategy{users: users, hasher: hasher}
}

/*
Authenticate resolves the login to an account and verifies the password.

Description: Flexible login by email or username, followed by a constant-time
bcrypt comparison. Classification is strict: only infrastructure failures
produce OutcomeErrored; every credential problem produces an identical
OutcomeRejected.

Parameters:
  - ctx: context.Context
  - login: string (username or email)
  - password: string (plaintext candidate)

Returns:
  - Outcome: Tagged three-way result
*/
func (strategy *PasswordStrategy) Authenticate(ctx context.Context, login, password string) Outcome {

	// Flexible login: look up by email first, then username.
	user, err := strategy.users.FindByEmail(ctx, login)
	if err != nil && apperr.IsNotFound(err) {
		user, err = strategy.users.FindByUsername(ctx, login)
	}

	if err != nil {
		// Unknown login rejects exactly like a wrong password would.
		if apperr.IsNotFound(err) {
			return Rejected()
		}
		return Errored(fmt.Errorf("auth_strategy_lookup_failed: %w", err))
	}

	// Constant-time comparison via bcrypt. A mismatch is (false, nil);
	// an error means the stored hash could not even be evaluated.
	match, err := strategy.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return Errored(fmt.Errorf("auth_strategy_verify_failed: %w", err))
	}

	if !match {
		return Rejected()
	}

	return Authenticated(user)
}
