// Copyright (c) 2026 Inkwell. All rights reserved.

// Package sec provides the security primitives for Inkwell: password
// hashing, session key generation, roles, and the session principal type.
//
// # Architecture
//
// This package isolates security-sensitive code from the domain logic. It
// is injected into the application layer via small constructors so that
// cost factors and key sizes stay configurable in exactly one place.
package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when none is configured.
// Cost 10 keeps interactive login latency acceptable while remaining
// expensive enough to resist offline brute force.
const DefaultHashCost = 10

// PasswordHasher performs one-way salted hashing and verification of
// credentials using bcrypt.
//
// # Error Contract
//
// Hash and Verify surface primitive failures (malformed input, truncated
// hash) as errors. A password that simply does not match is NOT an error:
// Verify reports it as (false, nil).
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher constructs a hasher with the given bcrypt cost.
//
// Costs outside bcrypt's legal range are clamped to [DefaultHashCost] so a
// misconfigured environment can never silently produce unsalted or
// absurdly slow hashes.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a salted bcrypt hash from a plaintext password.
//
// bcrypt embeds a per-call random salt in its output, so two calls with the
// same plaintext produce different hashes that both verify.
func (hasher *PasswordHasher) Hash(plaintext string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify compares a plaintext password against a stored bcrypt hash.
//
// # Returns
//   - (true, nil): the password matches.
//   - (false, nil): the password does not match. Normal outcome, not a failure.
//   - (false, err): the primitive itself failed (e.g. the stored value is
//     not a valid bcrypt hash). Callers must treat this as an internal
//     error, distinct from a mismatch.
//
// The comparison is constant-time with respect to early mismatch; that
// guarantee is delegated to bcrypt's own comparison routine.
func (hasher *PasswordHasher) Verify(plaintext, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, fmt.Errorf("sec: failed to verify password: %w", err)
}
