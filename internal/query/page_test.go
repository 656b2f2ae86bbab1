package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginateWindows(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	p1 := Paginate(items, 1, 4)
	require.Equal(t, []int{1, 2, 3, 4}, p1.Items)
	require.Equal(t, 9, p1.TotalItems)
	require.Equal(t, 3, p1.TotalPages())
	require.False(t, p1.HasPreviousPage())
	require.True(t, p1.HasNextPage())

	p2 := Paginate(items, 2, 4)
	require.Equal(t, []int{5, 6, 7, 8}, p2.Items)
	require.True(t, p2.HasPreviousPage())
	require.True(t, p2.HasNextPage())

	p3 := Paginate(items, 3, 4)
	require.Equal(t, []int{9}, p3.Items)
	require.True(t, p3.HasPreviousPage())
	require.False(t, p3.HasNextPage())
}

func TestPaginateClamping(t *testing.T) {
	items := []string{"a", "b", "c"}

	// past the end clamps to the last page
	p := Paginate(items, 99, 2)
	require.Equal(t, 2, p.CurrentPage)
	require.Equal(t, []string{"c"}, p.Items)

	// below the start clamps to the first page
	p = Paginate(items, 0, 2)
	require.Equal(t, 1, p.CurrentPage)
	require.Equal(t, []string{"a", "b"}, p.Items)

	// non-positive size falls back to the default
	p = Paginate(items, 1, 0)
	require.Equal(t, DefaultPageSize, p.PageSize)
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]int{}, 1, 4)
	require.Empty(t, p.Items)
	require.Zero(t, p.TotalItems)
	require.Zero(t, p.TotalPages())
	require.False(t, p.HasNextPage())
}
