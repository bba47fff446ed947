package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategories(t *testing.T) {
	cats, err := parseCategories([]byte(`
categories:
  - label: Programming
    value: programming
    sort: 1
  - label: " Marketing "
    value: marketing
    enabled: false
`))
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.True(t, cats[0].Enabled)
	assert.Equal(t, 1, cats[0].Sort)
	assert.Equal(t, "Marketing", cats[1].Label)
	assert.False(t, cats[1].Enabled)
}

func TestParseCategoriesRejectsBadEntries(t *testing.T) {
	_, err := parseCategories([]byte("categories:\n  - label: X\n"))
	assert.Error(t, err)

	_, err = parseCategories([]byte("categories:\n  - {label: A, value: a}\n  - {label: B, value: a}\n"))
	assert.Error(t, err)
}
