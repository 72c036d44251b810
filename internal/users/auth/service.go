// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/cliplet/internal/platform/apperr"
	"github.com/taibuivan/cliplet/internal/platform/ctxutil"
	"github.com/taibuivan/cliplet/internal/platform/sec"
	"github.com/taibuivan/cliplet/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, email, role string) (string, error)

	// TimeToLive reports how long issued tokens remain valid.
	TimeToLive() time.Duration
}

// PasswordHasher defines the contract for credential hashing.
type PasswordHasher interface {
	// Hash derives a storage-safe hash from a plain-text password.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the stored hash.
	Verify(password, hash string) bool
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository       UserRepository
	resetTokenRepository ResetTokenRepository
	passwordHasher       PasswordHasher
	tokenProvider        TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	resetRepo ResetTokenRepository,
	hasher PasswordHasher,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:       userRepo,
		resetTokenRepository: resetRepo,
		passwordHasher:       hasher,
		tokenProvider:        tokenProv,
	}
}

// Session represents a successfully established authentication result.
type Session struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // Seconds until the token expires.
	User      *User  `json:"user"`
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member, hashes the credential, and immediately
issues an access token so the client lands signed in.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Transport-ready token and user profile
  - err: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {

	// Emails are stored lowercase so lookups and the unique index agree.
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := service.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		IsActive:     true,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return service.issueSession(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues an access token.

Description: Verifies identity, performs constant-time password comparison,
rejects deactivated accounts, and stamps the last login time.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready token and user profile
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash. bcrypt comparison is constant-time to prevent timing attacks.
	if !service.passwordHasher.Verify(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Deactivated accounts keep their data but cannot sign in.
	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	// Stamp the login time. Best-effort: a bookkeeping failure must not block login.
	now := time.Now()
	if err := service.userRepository.UpdateLastLogin(context, user.ID, now); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "auth_last_login_stamp_failed", "error", err)
	} else {
		user.LastLoginAt = &now
	}

	return service.issueSession(user)
}

/*
Verify returns the live account behind an authenticated request.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - err: NotFound or storage errors
*/
func (service *Service) Verify(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

/*
Refresh re-issues an access token for an already-authenticated caller.

Description: Tokens are stateless, so refreshing simply mints a new one with
a fresh expiry. Deactivated accounts are rejected.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Session: New token with the current user profile
  - err: Unauthorized or storage errors
*/
func (service *Service) Refresh(context context.Context, userID string) (*Session, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid session")
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	return service.issueSession(user)
}

// # Password Recovery Flow

/*
RequestPasswordReset issues a single-use reset token for the given email.

Description: Stores the token hashed in Redis with a short TTL. Unknown
emails return an empty token with no error so that handlers can respond
generically and avoid account enumeration.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Raw reset token ("" when the email is unknown)
  - err: Token generation or storage failures
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_token_failed: %w", err)
	}

	// Only the hash touches storage; the raw token travels to the user.
	if err := service.resetTokenRepository.Set(context, sec.HashToken(token), user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_reset_token_store_failed: %w", err)
	}

	// TODO: hand the token to the mail service once it ships. Until then it is
	// only visible at debug level for development use.
	ctxutil.GetLogger(context).DebugContext(context, "password_reset_token_issued",
		"user_id", user.ID, "token", token)

	return token, nil
}

/*
ResetPassword consumes a reset token and replaces the account password.

Parameters:
  - context: context.Context
  - token: string (Raw token from the reset link)
  - newPassword: string

Returns:
  - err: Unauthorized for unknown/expired tokens, or storage failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	userID, err := service.resetTokenRepository.Consume(context, sec.HashToken(token))
	if err != nil {
		return err
	}

	hashedPassword, err := service.passwordHasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_failed: %w", err)
	}

	return nil
}

// # Middleware Integration

/*
LoadActive resolves a verified token subject into a live caller identity.

Description: Satisfies the middleware UserLoader contract. Deactivated or
deleted accounts resolve to an error, which the middleware treats as an
anonymous request.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *sec.Identity: Caller identity for the request context
  - err: Unauthorized when the account is missing or deactivated
*/
func (service *Service) LoadActive(context context.Context, userID string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Unknown account")
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	return user.Identity(), nil
}

// issueSession mints an access token for the user and wraps it with profile data.
func (service *Service) issueSession(user *User) (*Session, error) {
	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresIn: int64(service.tokenProvider.TimeToLive().Seconds()),
		User:      user,
	}, nil
}
