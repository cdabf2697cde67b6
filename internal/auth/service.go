// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/constants"
	"github.com/inkwell-dev/inkwell/internal/platform/sec"
	"github.com/inkwell-dev/inkwell/pkg/uuidv7"
)

// # Service

// Service implements the identity and session lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	users      UserRepository
	sessions   SessionStore
	strategy   Strategy
	hasher     *sec.PasswordHasher
	codec      *SessionCodec
	sessionTTL time.Duration
}

// NewService constructs a new [Service] with its dependencies.
// A non-positive sessionTTL falls back to the platform default.
func NewService(
	users UserRepository,
	sessions SessionStore,
	strategy Strategy,
	hasher *sec.PasswordHasher,
	codec *SessionCodec,
	sessionTTL time.Duration,
) *Service {
	if sessionTTL <= 0 {
		sessionTTL = constants.DefaultSessionTTL
	}
	return &Service{
		users:      users,
		sessions:   sessions,
		strategy:   strategy,
		hasher:     hasher,
		codec:      codec,
		sessionTTL: sessionTTL,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates and persists a brand new user account.

Description: Enrolls a new member. The plaintext password travels only as the
transient Password field; the repository's pre-commit hook hashes it before
the row is written.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Only NotFound means available; anything else
	// is an infrastructure failure and must surface, not fall through.
	_, err := service.users.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	// Verify username uniqueness the same way.
	_, err = service.users.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index
	// fragmentation. Password stays plaintext here; the repository hook
	// converts it to a hash inside Create.
	user := &User{
		ID:          uuidv7.Must(),
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Role:        sec.RoleMember,
	}

	// Persist the user. The unique indexes are the authoritative guard
	// against races between the pre-checks above and the INSERT.
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	SessionKey string
	ExpiresAt  time.Time
	User       *User
}

/*
Login runs the authentication strategy and establishes a session.

Description: Delegates credential verification to the configured [Strategy],
then materializes the session: a fresh random key in the store, mapping to
the codec-encoded identity, with the configured TTL.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session (key goes into the cookie)
  - error: Unauthorized on rejection, Internal on infrastructure failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	outcome := service.strategy.Authenticate(context, input.Login, input.Password)

	switch outcome.Kind {
	case OutcomeRejected:
		// Generic message regardless of which credential failed, to
		// prevent account enumeration.
		return nil, apperr.Unauthorized("Invalid login credentials")
	case OutcomeErrored:
		return nil, apperr.Internal(outcome.Err)
	}

	// Mint the opaque session key the client will carry in its cookie.
	key, err := sec.GenerateSecureToken(constants.SessionKeyLength)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_session_key_failed: %w", err))
	}

	// Persist key -> encoded identity with the session TTL.
	token := service.codec.Encode(outcome.User)
	if err := service.sessions.Set(context, key, token, service.sessionTTL); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_session_store_failed: %w", err))
	}

	return &LoginSession{
		SessionKey: key,
		ExpiresAt:  time.Now().Add(service.sessionTTL),
		User:       outcome.User,
	}, nil
}

/*
Logout terminates the session identified by the given key.

Description: Idempotent by construction. Deleting a key that never existed,
already expired, or was already logged out succeeds silently.

Parameters:
  - context: context.Context
  - sessionKey: string

Returns:
  - error: Store failures only
*/
func (service *Service) Logout(context context.Context, sessionKey string) error {
	if sessionKey == "" {
		return nil
	}
	if err := service.sessions.Delete(context, sessionKey); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Resolution

/*
Resolve turns an opaque session key into the current request principal.

Description: This is the per-request identity pipeline consumed by the
session middleware:

 1. Look up the key in the session store. Missing or expired -> anonymous.
 2. Decode the stored token through the codec, which re-fetches the account.
    A deleted account -> anonymous (and the dangling entry is cleaned up).
 3. Project the live account into a [sec.Principal].

Parameters:
  - context: context.Context
  - sessionKey: string

Returns:
  - *sec.Principal: nil means anonymous, never an error condition
  - error: Infrastructure failures only
*/
func (service *Service) Resolve(context context.Context, sessionKey string) (*sec.Principal, error) {

	// 1. Session store lookup.
	token, err := service.sessions.Get(context, sessionKey)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_resolve_failed: %w", err)
	}

	// 2. Identity rehydration.
	user, err := service.codec.Decode(context, token)
	if err != nil {
		return nil, err
	}

	// Account vanished since login. Drop the dangling session entry so the
	// store doesn't keep paying for it until TTL.
	if user == nil {
		_ = service.sessions.Delete(context, sessionKey)
		return nil, nil
	}

	// 3. Projection.
	return user.Principal(), nil
}

// # Credential Maintenance

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password before hashing and storing the
replacement. Sessions other than the caller's stay valid: the session entry
stores only the account ID, not credential material.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized, hashing, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {

	// Fetch user by ID
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	match, err := service.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_change_password_verify_failed: %w", err))
	}
	if !match {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Hash the brand new password
	newHash, err := service.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_change_password_hash_failed: %w", err))
	}

	// Update the database with the new hash
	if err := service.users.UpdatePassword(context, userID, newHash); err != nil {
		return err
	}

	return nil
}
