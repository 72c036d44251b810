// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the adaptive hashing cost used when none is configured.
// 12 rounds keeps single-hash latency well under a second on commodity
// hardware while remaining expensive enough to resist offline brute force.
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies passwords with a fixed bcrypt cost.
//
// The cost is injected at construction so operators can tune CPU spend
// without a rebuild.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a [PasswordHasher] with the given cost factor.
// Out-of-range costs fall back to [DefaultBcryptCost].
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash hashes a plain-text password using the bcrypt algorithm.
func (hasher *PasswordHasher) Hash(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify compares a plain-text password with its hashed version.
func (hasher *PasswordHasher) Verify(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
