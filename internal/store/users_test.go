package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rahim@example.com", "rahim@example.com"},
		{"Rahim@Example.COM", "rahim@example.com"},
		{"MIXED.Case+tag@Mail.com", "mixed.case+tag@mail.com"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeEmail(tc.in))
	}
}

// The counter subselects must filter on the categories places are stored
// with, otherwise the food and history visit counts silently stay at zero.
func TestActivityCountersQueryCategories(t *testing.T) {
	require.Contains(t, activityCountersQuery, "p.category = '"+PlaceCategoryFood+"'")
	require.Contains(t, activityCountersQuery, "p.category = '"+PlaceCategoryHistorical+"'")

	assert.NotContains(t, activityCountersQuery, "'Food'")
	assert.NotContains(t, activityCountersQuery, "'History'")
}

func TestPlaceCategoryConstants(t *testing.T) {
	assert.Equal(t, "food", PlaceCategoryFood)
	assert.Equal(t, "historical", PlaceCategoryHistorical)
}
