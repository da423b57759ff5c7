package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple lowercase", "movies", true},
		{"mixed case", "MyIndex", true},
		{"digits", "idx2026", true},
		{"dash and underscore", "my-index_v2", true},
		{"single character", "a", true},
		{"empty", "", false},
		{"space", "bad name", false},
		{"punctuation", "bad name!", false},
		{"dot", "index.name", false},
		{"slash", "a/b", false},
		{"unicode", "café", false},
		{"non-ascii digit", "idx١", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidName(tt.input))
		})
	}
}

func TestValidName_AcceptsEntireValidAlphabet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z0-9_-]{1,64}`).Draw(t, "name")
		require.True(t, ValidName(name), "name %q should be valid", name)
	})
}
