// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
)

// SessionCodec translates between a [User] and the minimal token persisted
// per session.
//
// # Design
//
// Encode stores only the account ID. Everything else (username, role) is
// re-fetched from the database on every Decode, so a role change or profile
// edit takes effect on the user's very next request instead of being frozen
// into the session for its lifetime.
type SessionCodec struct {
	users UserRepository
}

// NewSessionCodec constructs a [SessionCodec] backed by the given repository.
func NewSessionCodec(users UserRepository) *SessionCodec {
	return &SessionCodec{users: users}
}

// Encode reduces a user to the token stored in the session entry.
func (codec *SessionCodec) Encode(user *User) string {
	return user.ID
}

/*
Decode rehydrates the user identified by a previously encoded token.

Description: Fetches the current account state by ID. A token that points at
a deleted (or soft-deleted) account yields (nil, nil): the session is simply
stale, the bearer is anonymous, and nothing went wrong.

Parameters:
  - context: context.Context
  - token: string (previously produced by Encode)

Returns:
  - *User: Current account state, or nil if the account no longer exists
  - error: Infrastructure failures only
*/
func (codec *SessionCodec) Decode(context context.Context, token string) (*User, error) {
	user, err := codec.users.FindByID(context, token)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_codec_decode_failed: %w", err)
	}
	return user, nil
}
