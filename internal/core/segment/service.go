// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import (
	"context"
	"fmt"

	"github.com/taibuivan/cliplet/internal/platform/apperr"
	"github.com/taibuivan/cliplet/internal/platform/ctxutil"
	"github.com/taibuivan/cliplet/internal/platform/sec"
	"github.com/taibuivan/cliplet/pkg/slug"
	"github.com/taibuivan/cliplet/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for video segments.
//
// It owns access control decisions, view counting, and the like counters;
// the repository below it only knows how to move rows.
type Service struct {
	segmentRepository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository) *Service {
	return &Service{segmentRepository: repo}
}

// ListOptions carries the caller-controlled knobs of a listing request.
type ListOptions struct {
	Page   int
	Limit  int
	Tags   []string
	SortBy string
	Order  string
}

// normalizedTags canonicalizes the tag filter the same way stored tags are.
func (options ListOptions) normalizedTags() []string {
	if len(options.Tags) == 0 {
		return nil
	}
	tags := make([]string, 0, len(options.Tags))
	for _, tag := range options.Tags {
		if canonical := slug.From(tag); canonical != "" {
			tags = append(tags, canonical)
		}
	}
	return tags
}

// # Discovery

/*
Browse returns a page of public segments.

Description: Discovery is public-only regardless of authentication; the
caller's private segments never leak into general listings and are only
reachable through [Service.MySegments].

Parameters:
  - context: context.Context
  - options: ListOptions

Returns:
  - []*Segment: Hydrated page
  - int: Total matching rows
  - error: Retrieval failures
*/
func (service *Service) Browse(context context.Context, options ListOptions) ([]*Segment, int, error) {
	filter := Filter{
		PublicOnly: true,
		Tags:       options.normalizedTags(),
		SortBy:     options.SortBy,
		Order:      options.Order,
	}

	return service.list(context, filter, options)
}

/*
Search returns public segments matching a full-text query, ranked by relevance.

Parameters:
  - context: context.Context
  - query: string (Required; validated by the handler)
  - options: ListOptions

Returns:
  - []*Segment: Relevance-ordered page
  - int: Total matching rows
  - error: Retrieval failures
*/
func (service *Service) Search(context context.Context, query string, options ListOptions) ([]*Segment, int, error) {
	filter := Filter{
		PublicOnly: true,
		Query:      query,
		Tags:       options.normalizedTags(),
	}

	return service.list(context, filter, options)
}

/*
Popular returns the most-viewed public segments, likes breaking ties.

Parameters:
  - context: context.Context
  - limit: int (Clamped by the handler)

Returns:
  - []*Segment: Up to limit segments, most viewed first
  - error: Retrieval failures
*/
func (service *Service) Popular(context context.Context, limit int) ([]*Segment, error) {
	segments, _, err := service.segmentRepository.List(context,
		Filter{PublicOnly: true, SortBy: "views"}, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("segment_service_popular_failed: %w", err)
	}
	return segments, nil
}

/*
Recent returns the newest public segments.

Parameters:
  - context: context.Context
  - limit: int (Clamped by the handler)

Returns:
  - []*Segment: Up to limit segments, newest first
  - error: Retrieval failures
*/
func (service *Service) Recent(context context.Context, limit int) ([]*Segment, error) {
	segments, _, err := service.segmentRepository.List(context,
		Filter{PublicOnly: true, SortBy: "createdAt"}, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("segment_service_recent_failed: %w", err)
	}
	return segments, nil
}

/*
MySegments returns a page of everything the caller owns, public and private.

Parameters:
  - context: context.Context
  - ownerID: string
  - options: ListOptions

Returns:
  - []*Segment: Hydrated page
  - int: Total owned rows matching the filter
  - error: Retrieval failures
*/
func (service *Service) MySegments(context context.Context, ownerID string, options ListOptions) ([]*Segment, int, error) {
	filter := Filter{
		OwnerID: ownerID,
		Tags:    options.normalizedTags(),
		SortBy:  options.SortBy,
		Order:   options.Order,
	}

	return service.list(context, filter, options)
}

// list applies pagination to a filter and executes it.
func (service *Service) list(context context.Context, filter Filter, options ListOptions) ([]*Segment, int, error) {
	offset := 0
	if options.Page > 1 {
		offset = (options.Page - 1) * options.Limit
	}

	segments, total, err := service.segmentRepository.List(context, filter, options.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("segment_service_list_failed: %w", err)
	}

	return segments, total, nil
}

// # Single Segment Access

/*
Get retrieves one segment, enforcing visibility and counting the view.

Description: Private segments are only served to their owner or an admin.
Reads by anyone other than the owner increment the view counter; owners
can re-read their own work without inflating it.

Parameters:
  - context: context.Context
  - caller: *sec.Identity (nil for anonymous)
  - id: string

Returns:
  - *Segment: Hydrated entity with the up-to-date view count
  - error: NotFound, Forbidden, or retrieval failures
*/
func (service *Service) Get(context context.Context, caller *sec.Identity, id string) (*Segment, error) {
	segment, err := service.segmentRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !CanView(segment, caller) {
		return nil, apperr.Forbidden("This segment is private")
	}

	// Count the view. Best-effort: a counter failure must not block the read.
	if CountsView(segment, caller) {
		if err := service.segmentRepository.IncrementViews(context, segment.ID); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "segment_view_count_failed",
				"segment_id", segment.ID, "error", err)
		} else {
			segment.Views++
		}
	}

	return segment, nil
}

// # Authoring

// CreateInput holds the data required to publish a new segment.
type CreateInput struct {
	Title       string
	Description string
	VideoURL    string
	StartTime   float64
	EndTime     float64
	Scenes      []Scene
	Tags        []string
	IsPublic    *bool
}

/*
Create validates and persists a brand-new segment for the owner.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: CreateInput

Returns:
  - *Segment: Created entity
  - error: ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Segment, error) {
	// Segments default to public, matching the discovery-first product.
	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	// Time-sortable ID to prevent PG index fragmentation.
	segment := &Segment{
		ID:          uuidv7.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Scenes:      input.Scenes,
		Tags:        input.Tags,
		IsPublic:    isPublic,
	}

	segment.Normalize()
	if err := segment.Validate(); err != nil {
		return nil, err
	}

	if err := service.segmentRepository.Create(context, segment); err != nil {
		return nil, fmt.Errorf("segment_service_create_failed: %w", err)
	}

	return segment, nil
}

// UpdateInput defines the mutable subset of segment fields.
// Nil pointers leave the current value untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	VideoURL    *string
	StartTime   *float64
	EndTime     *float64
	Scenes      *[]Scene
	Tags        *[]string
	IsPublic    *bool
}

/*
Update applies a partial set of changes to an owned segment.

Description: Fetches the current state, overlays the provided fields, and
re-runs the full rule set — including scene containment against the
possibly-changed time range — before persisting.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - id: string
  - input: UpdateInput

Returns:
  - *Segment: Updated entity
  - error: NotFound, Forbidden, ValidationError, or storage failures
*/
func (service *Service) Update(context context.Context, caller *sec.Identity, id string, input UpdateInput) (*Segment, error) {
	segment, err := service.segmentRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !CanMutate(segment, caller) {
		return nil, apperr.Forbidden("You can only modify your own segments")
	}

	// Apply delta updates
	if input.Title != nil {
		segment.Title = *input.Title
	}
	if input.Description != nil {
		segment.Description = *input.Description
	}
	if input.VideoURL != nil {
		segment.VideoURL = *input.VideoURL
	}
	if input.StartTime != nil {
		segment.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		segment.EndTime = *input.EndTime
	}
	if input.Scenes != nil {
		segment.Scenes = *input.Scenes
	}
	if input.Tags != nil {
		segment.Tags = *input.Tags
	}
	if input.IsPublic != nil {
		segment.IsPublic = *input.IsPublic
	}

	segment.Normalize()
	if err := segment.Validate(); err != nil {
		return nil, err
	}

	if err := service.segmentRepository.Update(context, segment); err != nil {
		return nil, fmt.Errorf("segment_service_update_failed: %w", err)
	}

	return segment, nil
}

/*
Delete permanently removes an owned segment.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - id: string

Returns:
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) Delete(context context.Context, caller *sec.Identity, id string) error {
	segment, err := service.segmentRepository.FindByID(context, id)
	if err != nil {
		return err
	}

	if !CanMutate(segment, caller) {
		return apperr.Forbidden("You can only delete your own segments")
	}

	if err := service.segmentRepository.Delete(context, segment.ID); err != nil {
		return fmt.Errorf("segment_service_delete_failed: %w", err)
	}

	return nil
}

// # Likes

/*
Like increments the like counter of a visible segment.

Description: Likes are a plain counter; repeated calls by the same user
keep incrementing. Deduplication is a known follow-up.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - id: string

Returns:
  - int: The new like count
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) Like(context context.Context, caller *sec.Identity, id string) (int, error) {
	segment, err := service.segmentRepository.FindByID(context, id)
	if err != nil {
		return 0, err
	}

	if !CanView(segment, caller) {
		return 0, apperr.Forbidden("This segment is private")
	}

	likes, err := service.segmentRepository.IncrementLikes(context, segment.ID)
	if err != nil {
		return 0, fmt.Errorf("segment_service_like_failed: %w", err)
	}

	return likes, nil
}

/*
Unlike decrements the like counter of a visible segment, flooring at zero.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - id: string

Returns:
  - int: The new like count
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) Unlike(context context.Context, caller *sec.Identity, id string) (int, error) {
	segment, err := service.segmentRepository.FindByID(context, id)
	if err != nil {
		return 0, err
	}

	if !CanView(segment, caller) {
		return 0, apperr.Forbidden("This segment is private")
	}

	likes, err := service.segmentRepository.DecrementLikes(context, segment.ID)
	if err != nil {
		return 0, fmt.Errorf("segment_service_unlike_failed: %w", err)
	}

	return likes, nil
}
