package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name         string
		in           PaginationParams
		wantPage     int
		wantPageSize int
	}{
		{"Defaults Applied", PaginationParams{}, 1, defaultPageSize},
		{"Negative Values Clamped", PaginationParams{Page: -3, PageSize: -10}, 1, defaultPageSize},
		{"Oversized Page Capped", PaginationParams{Page: 2, PageSize: 500}, 2, maxPageSize},
		{"Valid Passes Through", PaginationParams{Page: 4, PageSize: 10}, 4, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantPageSize, tt.in.PageSize)
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	p := PaginationParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a", "b"}, 2, 2, 5)

	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrev)

	last := NewPaginatedResponse([]string{"e"}, 3, 2, 5)
	assert.False(t, last.HasNext)
}
