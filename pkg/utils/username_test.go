package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob_42", "x9z", "twentycharusername20"}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), "username %q", u)
	}

	invalid := []string{
		"ab",                      // too short
		"thisusernameiswaytoolong", // too long
		"has space",
		"dash-name",
		"_leading",
		"émile",
	}
	for _, u := range invalid {
		assert.Error(t, ValidateUsername(u), "username %q", u)
	}
}

func TestNormalizeUsername(t *testing.T) {
	require.Equal(t, "alice", NormalizeUsername("  Alice "))
	require.Equal(t, "bob_42", NormalizeUsername("BOB_42"))
}
