// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements self-service profile management for signed-in users.

It covers reading and updating the caller's own profile, password changes,
activation state, account deletion, and the aggregated content statistics
shown on the profile page.

# Architecture

The package reuses the [auth.User] entity and its repository. Statistics are
sourced through a narrow provider interface so the segment domain stays the
owner of its own aggregates.
*/
package account

import (
	"context"
	"time"
)

// # Profile Statistics

// Stats summarizes a user's content footprint for the profile page.
type Stats struct {
	TotalSegments   int       `json:"totalSegments"`
	PublicSegments  int       `json:"publicSegments"`
	PrivateSegments int       `json:"privateSegments"`
	TotalViews      int       `json:"totalViews"`
	TotalLikes      int       `json:"totalLikes"`
	TotalDuration   float64   `json:"totalDuration"` // Seconds across all segments.
	MemberSince     time.Time `json:"memberSince"`
}

// StatsProvider supplies per-owner content aggregates.
//
// Implemented by the segment storage layer; defined here so this package
// does not depend on the segment domain.
type StatsProvider interface {

	/*
		StatsByOwner aggregates segment counts, views, likes, and duration
		for everything the owner has created.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - *Stats: Aggregates with a zero-valued MemberSince
		  - error: Query failures
	*/
	StatsByOwner(context context.Context, ownerID string) (*Stats, error)
}

// # Field Identifiers

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldUser            = "user"
	FieldStats           = "stats"
)
