// Copyright (c) 2026 Inkwell. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-dev/inkwell/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline across scripts and edge cases.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple_title", "My First Post", "my-first-post"},
		{"accented_characters", "Café Résumé", "cafe-resume"},
		{"punctuation", "Hello, World! (draft)", "hello-world-draft"},
		{"multiple_spaces", "too   many    spaces", "too-many-spaces"},
		{"leading_trailing_junk", "  --Edge Case--  ", "edge-case"},
		{"already_a_slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
