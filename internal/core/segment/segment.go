// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package segment implements the video segment domain.

A segment is a user-curated slice of an externally hosted video: a time
range, optional scene markers inside that range, and discovery metadata
(tags, full-text searchable title and description). Segments are either
public (discoverable by everyone) or private (visible to the owner only).

# Architecture

  - Entity: Segment and Scene with all time-range business rules.
  - Service: Orchestrates access control, view counting, and likes.
  - Repository: Abstracted PostgreSQL storage with full-text search.
*/
package segment

import (
	"time"

	"github.com/taibuivan/cliplet/internal/platform/validate"
	"github.com/taibuivan/cliplet/pkg/slug"
)

// # Domain Entities

// Scene marks a named sub-range inside a segment's time window.
type Scene struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	StartTime   float64 `json:"startTime"` // Seconds from the start of the video.
	EndTime     float64 `json:"endTime"`
}

// Owner is the public projection of the segment creator.
type Owner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Segment represents a curated slice of an externally hosted video.
type Segment struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Owner       *Owner    `json:"createdBy,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"videoUrl"`
	StartTime   float64   `json:"startTime"` // Seconds.
	EndTime     float64   `json:"endTime"`
	Duration    float64   `json:"duration"` // Derived: EndTime - StartTime.
	Scenes      []Scene   `json:"scenes"`
	Tags        []string  `json:"tags"`
	IsPublic    bool      `json:"isPublic"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// # Business Constraints

const (
	TitleMaxLength         = 200
	DescriptionMaxLength   = 1000
	SceneTitleMaxLength    = 100
	SceneDescriptionMaxLen = 500
	TagMaxCount            = 10
	TagMaxLength           = 20

	// PopularListSize is the default size of the popular/recent discovery
	// lists when the request carries no limit.
	PopularListSize = 10
)

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldVideoURL    = "videoUrl"
	FieldStartTime   = "startTime"
	FieldEndTime     = "endTime"
	FieldScenes      = "scenes"
	FieldTags        = "tags"
	FieldQuery       = "q"
	FieldSegment     = "segment"
	FieldSegments    = "segments"
	FieldLikes       = "likes"
	FieldPagination  = "pagination"
)

// # Sorting

// SortFields maps accepted sortBy values to ordered list-query expressions
// ("s" is the segment row alias). Views carries a likes tiebreak so the
// popular list ranks equally-viewed rows by appreciation. Duration has no
// column of its own, so it sorts on the range width.
var SortFields = map[string][]string{
	"title":     {"s.title"},
	"createdAt": {"s.createdat"},
	"views":     {"s.views", "s.likes"},
	"likes":     {"s.likes"},
	"duration":  {"(s.endtime - s.starttime)"},
}

// # Entity Behavior

// RecomputeDuration refreshes the derived duration from the time range.
func (segment *Segment) RecomputeDuration() {
	segment.Duration = segment.EndTime - segment.StartTime
}

// Normalize canonicalizes the mutable metadata in place.
//
// Tags are slugified so that "Sci Fi" and "sci-fi" index identically;
// empty and duplicate tags are dropped. Nil scene and tag slices become
// empty slices so JSON output stays consistent.
func (segment *Segment) Normalize() {
	seen := make(map[string]struct{}, len(segment.Tags))
	normalized := make([]string, 0, len(segment.Tags))

	for _, tag := range segment.Tags {
		canonical := slug.From(tag)
		if canonical == "" {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		normalized = append(normalized, canonical)
	}
	segment.Tags = normalized

	if segment.Scenes == nil {
		segment.Scenes = []Scene{}
	}

	segment.RecomputeDuration()
}

// Validate checks every business rule on the entity.
//
// Returns an [apperr.AppError] carrying one entry per violated field, or
// nil when the entity is consistent.
func (segment *Segment) Validate() error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, segment.Title).
		MaxLen(FieldTitle, segment.Title, TitleMaxLength).
		MaxLen(FieldDescription, segment.Description, DescriptionMaxLength).
		Required(FieldVideoURL, segment.VideoURL).
		URL(FieldVideoURL, segment.VideoURL).
		NonNegative(FieldStartTime, segment.StartTime).
		NonNegative(FieldEndTime, segment.EndTime).
		GreaterThan(FieldEndTime, segment.EndTime, segment.StartTime, "End time must be greater than start time").
		MaxItems(FieldTags, len(segment.Tags), TagMaxCount)

	for _, tag := range segment.Tags {
		if len(tag) > TagMaxLength {
			validator.Custom(FieldTags, true, "Each tag must be at most 20 characters", tag)
			break
		}
	}

	for index, scene := range segment.Scenes {
		segment.validateScene(validator, index, scene)
	}

	return validator.Err()
}

// validateScene checks a single scene, including containment in the
// parent segment's time range.
func (segment *Segment) validateScene(validator *validate.Validator, index int, scene Scene) {
	field := FieldScenes

	validator.Custom(field, scene.Title == "", "Scene title is required", index).
		Custom(field, len(scene.Title) > SceneTitleMaxLength, "Scene title must be at most 100 characters", index).
		Custom(field, len(scene.Description) > SceneDescriptionMaxLen, "Scene description must be at most 500 characters", index).
		Custom(field, scene.StartTime < 0, "Scene start time must be non-negative", index).
		Custom(field, scene.EndTime <= scene.StartTime, "Scene end time must be greater than its start time", index).
		Custom(field, scene.StartTime < segment.StartTime || scene.EndTime > segment.EndTime,
			"Scene must fall within the segment time range", index)
}
