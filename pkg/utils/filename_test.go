package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation and spaces", "a b!@#c", "a_b___c"},
		{"only whitespace falls back", "   ", "note"},
		{"empty falls back", "", "note"},
		{"already safe", "Shopping-List_2", "Shopping-List_2"},
		{"surrounding whitespace trimmed", "  groceries  ", "groceries"},
		{"path separators neutralized", "../../etc/passwd", "______etc_passwd"},
		{"unicode replaced", "café ☕", "caf___"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSanitizeFilename_Deterministic(t *testing.T) {
	require.Equal(t, SanitizeFilename("a b!@#c"), SanitizeFilename("a b!@#c"))
}
