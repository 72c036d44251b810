// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// NameMinLength and NameMaxLength bound the display name.
	NameMinLength = 2
	NameMaxLength = 50

	// PasswordMinLength is the minimum accepted password length.
	// Complexity (upper, lower, digit) is enforced separately.
	PasswordMinLength = 6

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32
)
