package apimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagination(t *testing.T) {
	t.Run(`defaults apply when unset`, func(t *testing.T) {
		page, limit := Pagination{}.GetPage()
		require.Equal(t, 1, page)
		require.Equal(t, 10, limit)
	})

	t.Run(`limit is capped at 100`, func(t *testing.T) {
		_, limit := Pagination{Limit: 500}.GetPage()
		require.Equal(t, 100, limit)
	})

	t.Run(`negative values fall back to defaults`, func(t *testing.T) {
		page, limit := Pagination{Page: -2, Limit: -5}.GetPage()
		require.Equal(t, 1, page)
		require.Equal(t, 10, limit)
	})
}

func TestNewListResponse(t *testing.T) {
	t.Run(`total pages rounds up`, func(t *testing.T) {
		resp := NewListResponse(nil, 1, 10, 25)
		require.NotNil(t, resp.Meta)
		require.EqualValues(t, 3, resp.Meta.TotalPages)

		resp = NewListResponse(nil, 1, 10, 30)
		require.EqualValues(t, 3, resp.Meta.TotalPages)

		resp = NewListResponse(nil, 1, 10, 0)
		require.EqualValues(t, 0, resp.Meta.TotalPages)
	})
}
