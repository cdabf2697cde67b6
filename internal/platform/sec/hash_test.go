// Copyright (c) 2026 Inkwell. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/sec"
)

// Minimum bcrypt cost keeps these tests fast; the cost factor does not
// change any of the verified properties.
func newTestHasher() *sec.PasswordHasher {
	return sec.NewPasswordHasher(4)
}

/*
TestPasswordHasher_RoundTrip verifies that hash(p) composed with
verify(p, hash(p)) succeeds.
*/
func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	ok, err := hasher.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

/*
TestPasswordHasher_Mismatch verifies that a wrong password is reported as
(false, nil) — a normal outcome, not a primitive failure.
*/
func TestPasswordHasher_Mismatch(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("right-password")
	require.NoError(t, err)

	ok, err := hasher.Verify("wrong-password", hash)
	assert.NoError(t, err)
	assert.False(t, ok)
}

/*
TestPasswordHasher_Salting verifies that two hashes of the same plaintext
differ (random salt) while both verify successfully.
*/
func TestPasswordHasher_Salting(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	ok, err := hasher.Verify("same-password", first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("same-password", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

/*
TestPasswordHasher_MalformedHash verifies that a corrupted stored hash is
surfaced as an error, distinct from the mismatch case.
*/
func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := newTestHasher()

	ok, err := hasher.Verify("anything", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

/*
TestNewPasswordHasher_CostClamping verifies that illegal cost factors fall
back to the default instead of propagating into bcrypt.
*/
func TestNewPasswordHasher_CostClamping(t *testing.T) {
	// A hasher with an absurd cost must still produce verifiable hashes
	// without taking minutes to do so.
	hasher := sec.NewPasswordHasher(9999)

	hash, err := hasher.Hash("p")
	require.NoError(t, err)

	ok, err := hasher.Verify("p", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

/*
TestGenerateSecureToken verifies length and uniqueness of session keys.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 32 bytes hex-encoded = 64 characters.
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

/*
TestUserRole_AtLeast verifies the role hierarchy ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleMember))
	assert.True(t, sec.RoleMember.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleModerator))
	assert.False(t, sec.UserRole("bogus").AtLeast(sec.RoleMember))
}
