// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-dev/inkwell/internal/platform/sec"
)

func strategyFixture(t *testing.T) (*memoryUserRepository, *PasswordStrategy) {
	t.Helper()
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)
	users := newMemoryUserRepository(HashingHook(hasher))

	require.NoError(t, users.Create(context.Background(), &User{
		ID:       "user-1",
		Username: "inkling",
		Email:    "ink@example.com",
		Password: "correct horse",
		Role:     sec.RoleMember,
	}))

	return users, NewPasswordStrategy(users, hasher)
}

/*
TestPasswordStrategy_Authenticated verifies the happy path by email and by
username, with the matched user attached to the outcome.
*/
func TestPasswordStrategy_Authenticated(t *testing.T) {
	_, strategy := strategyFixture(t)

	for _, login := range []string{"ink@example.com", "inkling"} {
		outcome := strategy.Authenticate(context.Background(), login, "correct horse")
		assert.Equal(t, OutcomeAuthenticated, outcome.Kind)
		require.NotNil(t, outcome.User)
		assert.Equal(t, "user-1", outcome.User.ID)
		assert.NoError(t, outcome.Err)
	}
}

/*
TestPasswordStrategy_Rejected verifies that unknown logins and wrong
passwords produce indistinguishable outcomes with no payload.
*/
func TestPasswordStrategy_Rejected(t *testing.T) {
	_, strategy := strategyFixture(t)

	unknown := strategy.Authenticate(context.Background(), "nobody@example.com", "correct horse")
	wrongPassword := strategy.Authenticate(context.Background(), "ink@example.com", "not it")

	assert.Equal(t, unknown, wrongPassword)
	assert.Equal(t, OutcomeRejected, unknown.Kind)
	assert.Nil(t, unknown.User)
	assert.NoError(t, unknown.Err)
}

/*
TestPasswordStrategy_Errored verifies that classification is strict: storage
failures and corrupt hashes become OutcomeErrored, never OutcomeRejected.
*/
func TestPasswordStrategy_Errored(t *testing.T) {
	t.Run("storage failure", func(t *testing.T) {
		users, strategy := strategyFixture(t)
		users.failWith = errors.New("connection refused")

		outcome := strategy.Authenticate(context.Background(), "ink@example.com", "correct horse")
		assert.Equal(t, OutcomeErrored, outcome.Kind)
		assert.Nil(t, outcome.User)
		require.Error(t, outcome.Err)
	})

	t.Run("corrupt stored hash", func(t *testing.T) {
		users, strategy := strategyFixture(t)
		users.byID["user-1"].PasswordHash = "not-a-bcrypt-hash"

		outcome := strategy.Authenticate(context.Background(), "ink@example.com", "correct horse")
		assert.Equal(t, OutcomeErrored, outcome.Kind)
		require.Error(t, outcome.Err)
	})
}
