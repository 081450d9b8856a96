package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		page, limit string
		want        PageRequest
		wantOffset  int
	}{
		{name: "defaults", want: PageRequest{Page: 1, Limit: 10}},
		{name: "explicit", page: "2", limit: "5", want: PageRequest{Page: 2, Limit: 5}, wantOffset: 5},
		{name: "negative", page: "-3", limit: "0", want: PageRequest{Page: 1, Limit: 10}},
		{name: "garbage", page: "abc", limit: "1.5", want: PageRequest{Page: 1, Limit: 10}},
		{name: "capped", page: "3", limit: "1000", want: PageRequest{Page: 3, Limit: 100}, wantOffset: 200},
		{
			name:       "huge page",
			page:       "92233720368547758",
			limit:      "100",
			want:       PageRequest{Page: math.MaxInt32/100 + 1, Limit: 100},
			wantOffset: math.MaxInt32 / 100 * 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePage(tt.page, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOffset, got.Offset())
		})
	}
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	p := NewPagination(PageRequest{Page: 2, Limit: 5}, 12, "blogs")
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)

	last := NewPagination(PageRequest{Page: 3, Limit: 5}, 12, "blogs")
	assert.False(t, last.HasNextPage)
	assert.True(t, last.HasPrevPage)

	empty := NewPagination(PageRequest{Page: 1, Limit: 10}, 0, "blogs")
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPrevPage)
}

func TestPage_MarshalJSON(t *testing.T) {
	t.Parallel()

	p := NewPage[string]("categories", nil, PageRequest{Page: 1, Limit: 10}, 0)
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"categories": [],
		"pagination": {
			"currentPage": 1,
			"totalPages": 0,
			"totalCategories": 0,
			"hasNextPage": false,
			"hasPrevPage": false
		}
	}`, string(b))
}
