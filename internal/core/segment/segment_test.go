// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cliplet/internal/core/segment"
	"github.com/taibuivan/cliplet/internal/platform/apperr"
)

// validSegment returns a minimal entity that passes every rule.
func validSegment() *segment.Segment {
	return &segment.Segment{
		ID:        "seg-1",
		OwnerID:   "user-1",
		Title:     "Opening chase",
		VideoURL:  "https://videos.example.com/movie.mp4",
		StartTime: 10,
		EndTime:   95.5,
		Scenes:    []segment.Scene{},
		Tags:      []string{"action"},
		IsPublic:  true,
	}
}

/*
TestSegment_Validate covers the time-range and metadata rules on the entity.
*/
func TestSegment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *segment.Segment)
		field   string
		isValid bool
	}{
		{"valid", func(s *segment.Segment) {}, "", true},
		{"missing_title", func(s *segment.Segment) { s.Title = "" }, "title", false},
		{"title_too_long", func(s *segment.Segment) { s.Title = strings.Repeat("a", 201) }, "title", false},
		{"missing_video_url", func(s *segment.Segment) { s.VideoURL = "" }, "videoUrl", false},
		{"relative_video_url", func(s *segment.Segment) { s.VideoURL = "movie.mp4" }, "videoUrl", false},
		{"negative_start", func(s *segment.Segment) { s.StartTime = -1 }, "startTime", false},
		{"end_equals_start", func(s *segment.Segment) { s.EndTime = s.StartTime }, "endTime", false},
		{"end_before_start", func(s *segment.Segment) { s.StartTime = 50; s.EndTime = 20 }, "endTime", false},
		{"too_many_tags", func(s *segment.Segment) {
			s.Tags = []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11"}
		}, "tags", false},
		{"tag_too_long", func(s *segment.Segment) { s.Tags = []string{strings.Repeat("x", 21)} }, "tags", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSegment()
			tt.mutate(s)

			err := s.Validate()
			if tt.isValid {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			found := false
			for _, detail := range ae.Details {
				if detail.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected a violation on field %q", tt.field)
		})
	}
}

/*
TestSegment_ValidateScenes covers scene rules, especially containment in
the parent time range.
*/
func TestSegment_ValidateScenes(t *testing.T) {
	tests := []struct {
		name    string
		scene   segment.Scene
		isValid bool
	}{
		{"contained", segment.Scene{Title: "Intro", StartTime: 10, EndTime: 30}, true},
		{"exact_bounds", segment.Scene{Title: "Whole", StartTime: 10, EndTime: 95.5}, true},
		{"missing_title", segment.Scene{StartTime: 10, EndTime: 30}, false},
		{"starts_before_segment", segment.Scene{Title: "Early", StartTime: 5, EndTime: 30}, false},
		{"ends_after_segment", segment.Scene{Title: "Late", StartTime: 10, EndTime: 120}, false},
		{"inverted_range", segment.Scene{Title: "Backwards", StartTime: 40, EndTime: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSegment()
			s.Scenes = []segment.Scene{tt.scene}

			err := s.Validate()
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestSegment_Normalize verifies tag canonicalization and slice defaults.
*/
func TestSegment_Normalize(t *testing.T) {
	s := validSegment()
	s.Scenes = nil
	s.Tags = []string{"Sci Fi", "sci-fi", "  ", "Añime", "ACTION"}

	s.Normalize()

	// "Sci Fi" and "sci-fi" collapse; accents and case are folded.
	assert.Equal(t, []string{"sci-fi", "anime", "action"}, s.Tags)
	assert.NotNil(t, s.Scenes)
	assert.Empty(t, s.Scenes)
}

/*
TestSegment_RecomputeDuration verifies the derived duration field.
*/
func TestSegment_RecomputeDuration(t *testing.T) {
	s := validSegment()
	s.RecomputeDuration()
	assert.InDelta(t, 85.5, s.Duration, 1e-9)

	s.StartTime = 0
	s.EndTime = 30
	s.RecomputeDuration()
	assert.InDelta(t, 30, s.Duration, 1e-9)
}
