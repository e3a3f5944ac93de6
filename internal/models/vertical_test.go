package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVertical(t *testing.T) {
	for _, v := range Verticals {
		got, err := ParseVertical(v.Slug())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	// Legacy alias kept for older upload clients.
	got, err := ParseVertical("agricultural")
	require.NoError(t, err)
	assert.Equal(t, VerticalAgriculture, got)

	_, err = ParseVertical("mining")
	assert.Error(t, err)
	_, err = ParseVertical("Agriculture")
	assert.Error(t, err, "slugs are lowercase")
}
