// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cliplet/internal/platform/apperr"
	"github.com/taibuivan/cliplet/internal/platform/sec"
	"github.com/taibuivan/cliplet/internal/users/account"
	"github.com/taibuivan/cliplet/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory auth.UserRepository.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository(seed ...*auth.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: make(map[string]*auth.User)}
	for _, u := range seed {
		clone := *u
		repo.users[u.ID] = &clone
	}
	return repo
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	u, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *u
	return &clone, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range repo.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	u, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	u.PasswordHash = newHash
	return nil
}

func (repo *fakeUserRepository) UpdateLastLogin(_ context.Context, userID string, at time.Time) error {
	u, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	u.LastLoginAt = &at
	return nil
}

func (repo *fakeUserRepository) SetActive(_ context.Context, userID string, active bool) error {
	u, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	u.IsActive = active
	return nil
}

func (repo *fakeUserRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.users, id)
	return nil
}

// fakeStatsProvider returns a canned aggregate.
type fakeStatsProvider struct {
	stats account.Stats
}

func (provider *fakeStatsProvider) StatsByOwner(_ context.Context, _ string) (*account.Stats, error) {
	clone := provider.stats
	return &clone, nil
}

// fakeHasher marks hashes with a prefix instead of real bcrypt work.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

// # Fixtures

func seedUser() *auth.User {
	return &auth.User{
		ID:           "user-1",
		Name:         "Taro",
		Email:        "taro@example.com",
		PasswordHash: "hashed:Secret123",
		Role:         sec.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newService(repo auth.UserRepository, stats account.StatsProvider) *account.Service {
	return account.NewService(repo, stats, fakeHasher{})
}

// # Tests

/*
TestService_UpdateProfile verifies the partial overlay and the email
uniqueness rule.
*/
func TestService_UpdateProfile(t *testing.T) {
	t.Run("rename_only", func(t *testing.T) {
		repo := newFakeUserRepository(seedUser())
		service := newService(repo, &fakeStatsProvider{})

		name := "  Taro Yamada  "
		updated, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateProfileInput{
			Name: &name,
		})
		require.NoError(t, err)

		assert.Equal(t, "Taro Yamada", updated.Name)
		assert.Equal(t, "taro@example.com", updated.Email)
	})

	t.Run("email_conflict", func(t *testing.T) {
		other := seedUser()
		other.ID = "user-2"
		other.Email = "hanako@example.com"
		repo := newFakeUserRepository(seedUser(), other)
		service := newService(repo, &fakeStatsProvider{})

		email := "hanako@example.com"
		_, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateProfileInput{
			Email: &email,
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})

	t.Run("email_stored_lowercase", func(t *testing.T) {
		repo := newFakeUserRepository(seedUser())
		service := newService(repo, &fakeStatsProvider{})

		email := "  Hanako@Example.COM "
		updated, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateProfileInput{
			Email: &email,
		})
		require.NoError(t, err)

		assert.Equal(t, "hanako@example.com", updated.Email)
		assert.Equal(t, "hanako@example.com", repo.users["user-1"].Email)
	})

	t.Run("same_email_is_not_a_conflict", func(t *testing.T) {
		repo := newFakeUserRepository(seedUser())
		service := newService(repo, &fakeStatsProvider{})

		email := "Taro@example.com" // Case-insensitive match against the current address.
		_, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateProfileInput{
			Email: &email,
		})
		assert.NoError(t, err)
	})

	t.Run("password_rides_along", func(t *testing.T) {
		repo := newFakeUserRepository(seedUser())
		service := newService(repo, &fakeStatsProvider{})

		password := "NewSecret1"
		_, err := service.UpdateProfile(context.Background(), "user-1", account.UpdateProfileInput{
			Password: &password,
		})
		require.NoError(t, err)
		assert.Equal(t, "hashed:NewSecret1", repo.users["user-1"].PasswordHash)
	})
}

/*
TestService_ChangePassword verifies the current-password gate.
*/
func TestService_ChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeUserRepository(seedUser())
		service := newService(repo, &fakeStatsProvider{})

		err := service.ChangePassword(context.Background(), "user-1", "Secret123", "NewSecret1")
		require.NoError(t, err)
		assert.Equal(t, "hashed:NewSecret1", repo.users["user-1"].PasswordHash)
	})

	t.Run("wrong_current_password", func(t *testing.T) {
		repo := newFakeUserRepository(seedUser())
		service := newService(repo, &fakeStatsProvider{})

		err := service.ChangePassword(context.Background(), "user-1", "WrongPass1", "NewSecret1")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INVALID_CREDENTIALS", ae.Code)

		// The stored hash is untouched.
		assert.Equal(t, "hashed:Secret123", repo.users["user-1"].PasswordHash)
	})
}

/*
TestService_Lifecycle verifies activation toggles and hard deletion.
*/
func TestService_Lifecycle(t *testing.T) {
	t.Run("deactivate_reactivate", func(t *testing.T) {
		repo := newFakeUserRepository(seedUser())
		service := newService(repo, &fakeStatsProvider{})

		require.NoError(t, service.Deactivate(context.Background(), "user-1"))
		assert.False(t, repo.users["user-1"].IsActive)

		require.NoError(t, service.Reactivate(context.Background(), "user-1"))
		assert.True(t, repo.users["user-1"].IsActive)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newFakeUserRepository(seedUser())
		service := newService(repo, &fakeStatsProvider{})

		require.NoError(t, service.DeleteAccount(context.Background(), "user-1"))
		assert.Empty(t, repo.users)
	})

	t.Run("delete_unknown", func(t *testing.T) {
		service := newService(newFakeUserRepository(), &fakeStatsProvider{})

		err := service.DeleteAccount(context.Background(), "ghost")
		assert.Error(t, err)
	})
}

/*
TestService_GetStats verifies the aggregate is stamped with the
membership date from the account record.
*/
func TestService_GetStats(t *testing.T) {
	repo := newFakeUserRepository(seedUser())
	provider := &fakeStatsProvider{stats: account.Stats{
		TotalSegments:  4,
		PublicSegments: 3,
		TotalViews:     120,
		TotalLikes:     15,
		TotalDuration:  360.5,
	}}
	service := newService(repo, provider)

	stats, err := service.GetStats(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalSegments)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), stats.MemberSince)
}
