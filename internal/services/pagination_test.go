package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(45, 2, 20)

	assert.Equal(t, 45, meta.TotalItems)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
	assert.Equal(t, 20, meta.Limit)
}

func TestNewPageMetaLastPage(t *testing.T) {
	meta := NewPageMeta(45, 3, 20)

	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
}

func TestNewPageMetaEmpty(t *testing.T) {
	meta := NewPageMeta(0, 1, 20)

	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPreviousPage)
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageLimit, limit)

	page, limit = NormalizePage(-3, 1000)
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPageLimit, limit)

	page, limit = NormalizePage(4, 50)
	assert.Equal(t, 4, page)
	assert.Equal(t, 50, limit)
}
