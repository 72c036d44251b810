// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cliplet/internal/core/segment"
	"github.com/taibuivan/cliplet/internal/platform/apperr"
	"github.com/taibuivan/cliplet/internal/platform/sec"
)

// fakeRepository is an in-memory segment.Repository for service tests.
type fakeRepository struct {
	segments map[string]*segment.Segment

	lastFilter     segment.Filter
	lastLimit      int
	viewIncrements int
}

func newFakeRepository(seed ...*segment.Segment) *fakeRepository {
	repo := &fakeRepository{segments: make(map[string]*segment.Segment)}
	for _, s := range seed {
		clone := *s
		repo.segments[s.ID] = &clone
	}
	return repo
}

func (repo *fakeRepository) Create(_ context.Context, s *segment.Segment) error {
	clone := *s
	repo.segments[s.ID] = &clone
	return nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*segment.Segment, error) {
	s, ok := repo.segments[id]
	if !ok {
		return nil, apperr.NotFound("Segment")
	}
	clone := *s
	return &clone, nil
}

func (repo *fakeRepository) List(_ context.Context, filter segment.Filter, limit, offset int) ([]*segment.Segment, int, error) {
	repo.lastFilter = filter
	repo.lastLimit = limit
	return []*segment.Segment{}, 0, nil
}

func (repo *fakeRepository) Update(_ context.Context, s *segment.Segment) error {
	clone := *s
	repo.segments[s.ID] = &clone
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	delete(repo.segments, id)
	return nil
}

func (repo *fakeRepository) IncrementViews(_ context.Context, id string) error {
	repo.viewIncrements++
	repo.segments[id].Views++
	return nil
}

func (repo *fakeRepository) IncrementLikes(_ context.Context, id string) (int, error) {
	repo.segments[id].Likes++
	return repo.segments[id].Likes, nil
}

func (repo *fakeRepository) DecrementLikes(_ context.Context, id string) (int, error) {
	if repo.segments[id].Likes > 0 {
		repo.segments[id].Likes--
	}
	return repo.segments[id].Likes, nil
}

// Fixed identities reused across the tests below.
var (
	owner    = &sec.Identity{UserID: "user-1", Role: sec.RoleUser}
	stranger = &sec.Identity{UserID: "user-2", Role: sec.RoleUser}
	admin    = &sec.Identity{UserID: "user-3", Role: sec.RoleAdmin}
)

func publicSegment() *segment.Segment {
	s := validSegment()
	s.IsPublic = true
	return s
}

func privateSegment() *segment.Segment {
	s := validSegment()
	s.IsPublic = false
	return s
}

/*
TestService_Get_Visibility verifies private segments are served only to
their owner and admins.
*/
func TestService_Get_Visibility(t *testing.T) {
	tests := []struct {
		name      string
		caller    *sec.Identity
		isAllowed bool
	}{
		{"owner", owner, true},
		{"admin", admin, true},
		{"stranger", stranger, false},
		{"anonymous", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := segment.NewService(newFakeRepository(privateSegment()))

			result, err := service.Get(context.Background(), tt.caller, "seg-1")
			if tt.isAllowed {
				require.NoError(t, err)
				assert.Equal(t, "seg-1", result.ID)
			} else {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "FORBIDDEN", ae.Code)
			}
		})
	}
}

/*
TestService_Get_ViewCounting verifies owners do not inflate their own
view counters while everyone else does.
*/
func TestService_Get_ViewCounting(t *testing.T) {
	tests := []struct {
		name       string
		caller     *sec.Identity
		increments int
	}{
		{"anonymous_counts", nil, 1},
		{"stranger_counts", stranger, 1},
		{"admin_counts", admin, 1},
		{"owner_does_not_count", owner, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository(publicSegment())
			service := segment.NewService(repo)

			result, err := service.Get(context.Background(), tt.caller, "seg-1")
			require.NoError(t, err)

			assert.Equal(t, tt.increments, repo.viewIncrements)
			assert.Equal(t, tt.increments, result.Views)
		})
	}
}

/*
TestService_Get_NotFound verifies an unknown ID maps to a NOT_FOUND error.
*/
func TestService_Get_NotFound(t *testing.T) {
	service := segment.NewService(newFakeRepository())

	_, err := service.Get(context.Background(), nil, "missing")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Browse_FilterSelection verifies browsing is always scoped to
public rows; private segments are only reachable through the owner listing.
*/
func TestService_Browse_FilterSelection(t *testing.T) {
	t.Run("public_only", func(t *testing.T) {
		repo := newFakeRepository()
		service := segment.NewService(repo)

		_, _, err := service.Browse(context.Background(), segment.ListOptions{Page: 1, Limit: 10})
		require.NoError(t, err)

		assert.True(t, repo.lastFilter.PublicOnly)
		assert.Empty(t, repo.lastFilter.OwnerID)
	})

	t.Run("tag_filter_is_normalized", func(t *testing.T) {
		repo := newFakeRepository()
		service := segment.NewService(repo)

		_, _, err := service.Browse(context.Background(), segment.ListOptions{
			Page: 1, Limit: 10, Tags: []string{"Sci Fi", ""},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"sci-fi"}, repo.lastFilter.Tags)
	})
}

/*
TestService_Search_FilterSelection verifies the query reaches the filter
and the search stays restricted to public rows.
*/
func TestService_Search_FilterSelection(t *testing.T) {
	repo := newFakeRepository()
	service := segment.NewService(repo)

	_, _, err := service.Search(context.Background(), "opening chase", segment.ListOptions{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "opening chase", repo.lastFilter.Query)
	assert.True(t, repo.lastFilter.PublicOnly)
	assert.Empty(t, repo.lastFilter.OwnerID)
}

/*
TestService_Discovery verifies the popular and recent lists stay public,
honor the requested size, and rank popularity by views with likes as the
tiebreak.
*/
func TestService_Discovery(t *testing.T) {
	t.Run("popular", func(t *testing.T) {
		repo := newFakeRepository()
		service := segment.NewService(repo)

		_, err := service.Popular(context.Background(), 25)
		require.NoError(t, err)

		assert.True(t, repo.lastFilter.PublicOnly)
		assert.Equal(t, "views", repo.lastFilter.SortBy)
		assert.Equal(t, 25, repo.lastLimit)
		assert.Equal(t, []string{"s.views", "s.likes"}, segment.SortFields["views"])
	})

	t.Run("recent", func(t *testing.T) {
		repo := newFakeRepository()
		service := segment.NewService(repo)

		_, err := service.Recent(context.Background(), 5)
		require.NoError(t, err)

		assert.True(t, repo.lastFilter.PublicOnly)
		assert.Equal(t, "createdAt", repo.lastFilter.SortBy)
		assert.Equal(t, 5, repo.lastLimit)
	})
}

/*
TestService_Create verifies defaults, normalization, and validation on publish.
*/
func TestService_Create(t *testing.T) {
	t.Run("defaults_to_public", func(t *testing.T) {
		repo := newFakeRepository()
		service := segment.NewService(repo)

		created, err := service.Create(context.Background(), "user-1", segment.CreateInput{
			Title:     "Opening chase",
			VideoURL:  "https://videos.example.com/movie.mp4",
			StartTime: 0,
			EndTime:   30,
			Tags:      []string{"Action", "action"},
		})
		require.NoError(t, err)

		assert.True(t, created.IsPublic)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "user-1", created.OwnerID)
		assert.Equal(t, []string{"action"}, created.Tags)
		assert.InDelta(t, 30, created.Duration, 1e-9)
		assert.Contains(t, repo.segments, created.ID)
	})

	t.Run("explicit_private", func(t *testing.T) {
		service := segment.NewService(newFakeRepository())

		isPublic := false
		created, err := service.Create(context.Background(), "user-1", segment.CreateInput{
			Title:     "Draft cut",
			VideoURL:  "https://videos.example.com/movie.mp4",
			StartTime: 0,
			EndTime:   30,
			IsPublic:  &isPublic,
		})
		require.NoError(t, err)
		assert.False(t, created.IsPublic)
	})

	t.Run("invalid_time_range", func(t *testing.T) {
		repo := newFakeRepository()
		service := segment.NewService(repo)

		_, err := service.Create(context.Background(), "user-1", segment.CreateInput{
			Title:     "Broken",
			VideoURL:  "https://videos.example.com/movie.mp4",
			StartTime: 30,
			EndTime:   30,
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Empty(t, repo.segments)
	})
}

/*
TestService_Update verifies partial overlay semantics and re-validation of
scene containment against a changed time range.
*/
func TestService_Update(t *testing.T) {
	t.Run("partial_overlay", func(t *testing.T) {
		repo := newFakeRepository(publicSegment())
		service := segment.NewService(repo)

		title := "Recut chase"
		updated, err := service.Update(context.Background(), owner, "seg-1", segment.UpdateInput{
			Title: &title,
		})
		require.NoError(t, err)

		assert.Equal(t, "Recut chase", updated.Title)
		// Untouched fields survive the overlay.
		assert.Equal(t, "https://videos.example.com/movie.mp4", updated.VideoURL)
		assert.InDelta(t, 85.5, updated.Duration, 1e-9)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		service := segment.NewService(newFakeRepository(publicSegment()))

		title := "Hijacked"
		_, err := service.Update(context.Background(), stranger, "seg-1", segment.UpdateInput{Title: &title})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})

	t.Run("admin_allowed", func(t *testing.T) {
		service := segment.NewService(newFakeRepository(publicSegment()))

		title := "Moderated title"
		updated, err := service.Update(context.Background(), admin, "seg-1", segment.UpdateInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Moderated title", updated.Title)
	})

	t.Run("shrunk_range_orphans_scene", func(t *testing.T) {
		seed := publicSegment()
		seed.Scenes = []segment.Scene{{Title: "Finale", StartTime: 80, EndTime: 95}}
		service := segment.NewService(newFakeRepository(seed))

		endTime := 60.0
		_, err := service.Update(context.Background(), owner, "seg-1", segment.UpdateInput{EndTime: &endTime})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

/*
TestService_Delete verifies only owners and admins can remove a segment.
*/
func TestService_Delete(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		repo := newFakeRepository(publicSegment())
		service := segment.NewService(repo)

		require.NoError(t, service.Delete(context.Background(), owner, "seg-1"))
		assert.Empty(t, repo.segments)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		repo := newFakeRepository(publicSegment())
		service := segment.NewService(repo)

		err := service.Delete(context.Background(), stranger, "seg-1")
		require.Error(t, err)
		assert.Contains(t, repo.segments, "seg-1")
	})
}

/*
TestService_Likes verifies the like counters and visibility gating.
*/
func TestService_Likes(t *testing.T) {
	t.Run("like_unlike_roundtrip", func(t *testing.T) {
		service := segment.NewService(newFakeRepository(publicSegment()))

		likes, err := service.Like(context.Background(), stranger, "seg-1")
		require.NoError(t, err)
		assert.Equal(t, 1, likes)

		likes, err = service.Unlike(context.Background(), stranger, "seg-1")
		require.NoError(t, err)
		assert.Equal(t, 0, likes)
	})

	t.Run("unlike_floors_at_zero", func(t *testing.T) {
		service := segment.NewService(newFakeRepository(publicSegment()))

		likes, err := service.Unlike(context.Background(), stranger, "seg-1")
		require.NoError(t, err)
		assert.Equal(t, 0, likes)
	})

	t.Run("private_segment_forbidden", func(t *testing.T) {
		service := segment.NewService(newFakeRepository(privateSegment()))

		_, err := service.Like(context.Background(), stranger, "seg-1")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})
}
