// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cliplet/internal/platform/sec"
)

/*
TestPasswordHasher_Roundtrip verifies that a hashed password verifies
against the original and rejects everything else.
*/
func TestPasswordHasher_Roundtrip(t *testing.T) {
	// Use the minimum cost so the test stays fast.
	hasher := sec.NewPasswordHasher(4)

	hash, err := hasher.Hash("Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Secret123", hash)

	assert.True(t, hasher.Verify("Secret123", hash))
	assert.False(t, hasher.Verify("secret123", hash))
	assert.False(t, hasher.Verify("", hash))
}

/*
TestNewTokenService_EmptySecret verifies the constructor rejects a missing secret.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	service, err := sec.NewTokenService("", "cliplet-api", "cliplet-users", time.Hour)

	assert.Error(t, err)
	assert.Nil(t, service)
}

/*
TestTokenService_Roundtrip verifies that a generated token carries the
caller identity back through verification.
*/
func TestTokenService_Roundtrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "cliplet-api", "cliplet-users", time.Hour)
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", "test@example.com", string(sec.RoleUser))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, string(sec.RoleUser), claims.Role)
	assert.Equal(t, "user-123", claims.Subject)
}

/*
TestTokenService_Expired verifies that an expired token maps to ErrTokenExpired.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "cliplet-api", "cliplet-users", -time.Minute)
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", "test@example.com", string(sec.RoleUser))
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_WrongSecret verifies that a token signed with a different
secret fails verification as malformed.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuerService, err := sec.NewTokenService("secret-a", "cliplet-api", "cliplet-users", time.Hour)
	require.NoError(t, err)

	verifierService, err := sec.NewTokenService("secret-b", "cliplet-api", "cliplet-users", time.Hour)
	require.NoError(t, err)

	token, err := issuerService.GenerateAccessToken("user-123", "test@example.com", string(sec.RoleUser))
	require.NoError(t, err)

	_, err = verifierService.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenMalformed)
}

/*
TestTokenService_Garbage verifies that a non-JWT string is rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "cliplet-api", "cliplet-users", time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, sec.ErrTokenMalformed)
}

/*
TestHashToken verifies reset token hashing is deterministic and one-way.
*/
func TestHashToken(t *testing.T) {
	token, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64) // 32 bytes hex-encoded

	hashA := sec.HashToken(token)
	hashB := sec.HashToken(token)

	assert.Equal(t, hashA, hashB)
	assert.NotEqual(t, token, hashA)
	assert.NotEqual(t, hashA, sec.HashToken("other-token"))
}

/*
TestRole_AtLeast verifies the role ordering used by authorization middleware.
*/
func TestRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleUser))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("unknown").AtLeast(sec.RoleUser))
}
