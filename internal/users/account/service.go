// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/cliplet/internal/platform/apperr"
	"github.com/taibuivan/cliplet/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for the caller's own account.
//
// It ensures that profile updates, credential changes, and lifecycle
// transitions follow established business constraints.
type Service struct {
	userRepository auth.UserRepository
	statsProvider  StatsProvider
	passwordHasher auth.PasswordHasher
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo auth.UserRepository,
	stats StatsProvider,
	hasher auth.PasswordHasher,
) *Service {
	return &Service{
		userRepository: userRepo,
		statsProvider:  stats,
		passwordHasher: hasher,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overlays the provided fields,
and synchronizes the change to persistent storage. An email change re-checks
uniqueness; a password change re-hashes.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Conflict on duplicate email, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}

	// Email changes must stay unique across accounts and are stored
	// lowercase so lookups and the unique index agree.
	if input.Email != nil && !strings.EqualFold(*input.Email, user.Email) {
		existing, err := service.userRepository.FindByEmail(context, *input.Email)
		if err == nil && existing.ID != user.ID {
			return nil, apperr.Conflict("Email is already registered")
		}
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	// Password rides along the same endpoint in the profile form.
	if input.Password != nil {
		hash, err := service.passwordHasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
		if err := service.userRepository.UpdatePassword(context, userID, hash); err != nil {
			return nil, fmt.Errorf("account_service_password_update_failed: %w", err)
		}
	}

	return user, nil
}

// # Credential Management

/*
ChangePassword replaces the account password after verifying the current one.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: InvalidCredentials when the current password fails verification
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !service.passwordHasher.Verify(currentPassword, user.PasswordHash) {
		return apperr.InvalidCredentials("Current password is incorrect")
	}

	hash, err := service.passwordHasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hash); err != nil {
		return fmt.Errorf("account_service_change_password_failed: %w", err)
	}

	return nil
}

// # Account Lifecycle

/*
Deactivate flips the account into the inactive state.

Description: Deactivated accounts keep their data and segments but cannot
sign in or be resolved by the authentication middleware.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Not found or storage failures
*/
func (service *Service) Deactivate(context context.Context, userID string) error {
	return service.userRepository.SetActive(context, userID, false)
}

/*
Reactivate flips the account back into the active state.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Not found or storage failures
*/
func (service *Service) Reactivate(context context.Context, userID string) error {
	return service.userRepository.SetActive(context, userID, true)
}

/*
DeleteAccount permanently removes the user and all owned content.

Description: The row delete cascades to core.segment at the schema level, so
no cross-domain orchestration is needed here.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Not found or storage failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.userRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}
	return nil
}

// # Profile Statistics

/*
GetStats aggregates the user's content statistics for the profile page.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Stats: Segment counts, views, likes, duration, and membership date
  - error: Not found or query failures
*/
func (service *Service) GetStats(context context.Context, userID string) (*Stats, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	stats, err := service.statsProvider.StatsByOwner(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_stats_failed: %w", err)
	}

	stats.MemberSince = user.CreatedAt
	return stats, nil
}
