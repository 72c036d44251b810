// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import (
	"github.com/taibuivan/cliplet/internal/platform/sec"
)

// # Access Control

// CanView reports whether the caller may read the segment.
//
// Public segments are visible to everyone, including anonymous callers.
// Private segments are visible to their owner and to administrators.
func CanView(segment *Segment, caller *sec.Identity) bool {
	if segment.IsPublic {
		return true
	}
	if caller == nil {
		return false
	}
	return caller.Is(segment.OwnerID) || caller.IsAdmin()
}

// CanMutate reports whether the caller may update or delete the segment.
//
// Only the owner and administrators may mutate, regardless of visibility.
func CanMutate(segment *Segment, caller *sec.Identity) bool {
	if caller == nil {
		return false
	}
	return caller.Is(segment.OwnerID) || caller.IsAdmin()
}

// CountsView reports whether a read by the caller increments the view
// counter. Owners browsing their own work do not inflate their numbers.
func CountsView(segment *Segment, caller *sec.Identity) bool {
	if caller == nil {
		return true
	}
	return !caller.Is(segment.OwnerID)
}
