// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cliplet/internal/platform/apperr"
	"github.com/taibuivan/cliplet/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Cliplet", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_URL checks that only absolute http(s) URLs pass.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		isValid bool
	}{
		{"http", "http://videos.example.com/clip.mp4", true},
		{"https", "https://videos.example.com/clip.mp4", true},
		{"missing_scheme", "videos.example.com/clip.mp4", false},
		{"wrong_scheme", "ftp://videos.example.com/clip.mp4", false},
		{"scheme_only", "https://", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("videoUrl", tt.url)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_NumericRules covers NonNegative and GreaterThan, the rules
backing the segment time-range invariants.
*/
func TestValidator_NumericRules(t *testing.T) {
	t.Run("non_negative_accepts_zero", func(t *testing.T) {
		v := &validate.Validator{}
		v.NonNegative("startTime", 0)
		assert.False(t, v.HasErrors())
	})

	t.Run("non_negative_rejects_negative", func(t *testing.T) {
		v := &validate.Validator{}
		v.NonNegative("startTime", -0.5)
		assert.True(t, v.HasErrors())
	})

	t.Run("greater_than_rejects_equal", func(t *testing.T) {
		v := &validate.Validator{}
		v.GreaterThan("endTime", 10, 10, "End time must be greater than start time")
		require.True(t, v.HasErrors())

		ae := apperr.As(v.Err())
		require.NotNil(t, ae)
		assert.Equal(t, "End time must be greater than start time", ae.Details[0].Message)
	})

	t.Run("greater_than_accepts_larger", func(t *testing.T) {
		v := &validate.Validator{}
		v.GreaterThan("endTime", 10.5, 10, "End time must be greater than start time")
		assert.False(t, v.HasErrors())
	})
}

/*
TestValidator_MaxItems checks the collection size rule used for tag limits.
*/
func TestValidator_MaxItems(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		max      int
		hasError bool
	}{
		{"under_limit", 5, 10, false},
		{"at_limit", 10, 10, false},
		{"over_limit", 11, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.MaxItems("tags", tt.count, tt.max)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Chaining verifies that multiple failed rules accumulate into
a single error carrying every field.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").
		Email("email", "broken").
		NonNegative("startTime", -1)

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 3)
	assert.Equal(t, "title", ae.Details[0].Field)
	assert.Equal(t, "email", ae.Details[1].Field)
	assert.Equal(t, "startTime", ae.Details[2].Field)
}

/*
TestValidator_Custom verifies the escape hatch records the rejected value.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	v.Custom("scenes", true, "Scene must fall within the segment time range", 2)
	v.Custom("scenes", false, "never recorded", 3)

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, 2, ae.Details[0].Value)
}
