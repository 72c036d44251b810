// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import (
	"context"
)

// # Query Types

// Filter narrows a segment listing.
//
// Exactly one of the visibility dimensions is set per call site:
// OwnerID for "my segments" (public and private rows of one owner), or
// PublicOnly for every discovery surface.
type Filter struct {
	OwnerID    string   // Restrict to a single owner.
	PublicOnly bool     // Public rows only.
	Query      string   // Full-text search over title and description.
	Tags       []string // Match rows carrying ANY of these tags.
	SortBy     string   // Key into SortFields; falls back to createdAt.
	Order      string   // "asc" or "desc" (default).
}

// # Segment Data Access

// Repository defines the data access contract for segments.
type Repository interface {

	/*
		Create persists a brand-new segment.

		Parameters:
		  - context: context.Context
		  - segment: *Segment

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, segment *Segment) error

	/*
		FindByID returns the segment with the given ID, owner attached.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Segment: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Segment, error)

	/*
		List returns a filtered, sorted page of segments plus the total
		row count for the filter.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Segment: Hydrated page
		  - int: Total matching rows
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Segment, int, error)

	/*
		Update persists changes to all mutable segment fields.

		Parameters:
		  - context: context.Context
		  - segment: *Segment

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, segment *Segment) error

	/*
		Delete permanently removes the segment row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		IncrementViews bumps the view counter atomically.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	IncrementViews(context context.Context, id string) error

	/*
		IncrementLikes bumps the like counter atomically.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - int: The new like count
		  - error: Persistence failures
	*/
	IncrementLikes(context context.Context, id string) (int, error)

	/*
		DecrementLikes lowers the like counter atomically, flooring at zero.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - int: The new like count
		  - error: Persistence failures
	*/
	DecrementLikes(context context.Context, id string) (int, error)
}
