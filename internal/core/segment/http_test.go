// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cliplet/internal/core/segment"
	"github.com/taibuivan/cliplet/pkg/pagination"
)

/*
TestHandler_DiscoveryLimit verifies the popular and recent endpoints parse
the limit parameter, fall back to the default list size, and clamp abusive
values.
*/
func TestHandler_DiscoveryLimit(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantLimit int
	}{
		{"popular_default", "/popular", segment.PopularListSize},
		{"popular_explicit", "/popular?limit=25", 25},
		{"popular_clamped", "/popular?limit=500", pagination.MaxLimit},
		{"popular_invalid", "/popular?limit=abc", segment.PopularListSize},
		{"popular_zero", "/popular?limit=0", segment.PopularListSize},
		{"recent_explicit", "/recent?limit=3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			router := segment.NewHandler(segment.NewService(repo)).Routes()

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
		})
	}
}
