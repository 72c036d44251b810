// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cliplet/pkg/pagination"
)

/*
TestNewMeta verifies the derived page counts and navigation flags.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		limit       int
		total       int
		totalPages  int
		hasNextPage bool
		hasPrevPage bool
	}{
		{"middle_page", 2, 10, 25, 3, true, true},
		{"first_page", 1, 10, 25, 3, true, false},
		{"last_page", 3, 10, 25, 3, false, true},
		{"exact_fit", 2, 10, 20, 2, false, true},
		{"empty_result", 1, 10, 0, 0, false, false},
		{"single_page", 1, 10, 7, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.total, meta.TotalDocs)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.hasNextPage, meta.HasNextPage)
			assert.Equal(t, tt.hasPrevPage, meta.HasPrevPage)
		})
	}
}

/*
TestFromRequest verifies query parameter parsing and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"zero_page", "page=0", 1, 10},
		{"negative_limit", "limit=-5", 1, 10},
		{"excessive_limit", "limit=5000", 1, 100},
		{"non_numeric", "page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/segments?"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the SQL offset derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, pagination.Params{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 50, pagination.Params{Page: 3, Limit: 25}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 10}.Offset())
}
