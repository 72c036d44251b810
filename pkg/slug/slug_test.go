// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cliplet/pkg/slug"
)

/*
TestFrom verifies the tag canonicalization pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "action", "action"},
		{"uppercase", "ACTION", "action"},
		{"spaces", "Sci Fi", "sci-fi"},
		{"already_slugged", "sci-fi", "sci-fi"},
		{"accents", "Añime Café", "anime-cafe"},
		{"special_chars", "top #10!", "top-10"},
		{"consecutive_separators", "a -- b", "a-b"},
		{"leading_trailing", " -tag- ", "tag"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
