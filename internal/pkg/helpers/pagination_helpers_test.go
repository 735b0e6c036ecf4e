package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "third page", page: 3, size: 20, wantOffset: 40, wantLimit: 20},
		{name: "zero page defaults to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative size uses default", page: 2, size: -1, wantOffset: 10, wantLimit: 10},
		{name: "oversized page size capped", page: 1, size: 500, wantOffset: 0, wantLimit: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, int64(45), info.Total)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 5, info.Pages)

	// An empty result set still reports one page.
	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.Pages)

	// Page beyond the end clamps to the last page.
	clamped := NewPaginationInfo(15, 9, 10)
	assert.Equal(t, 2, clamped.Page)
	assert.Equal(t, 2, clamped.Pages)
}
