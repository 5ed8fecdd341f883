package pagination_test

import (
	"testing"

	"investhub/internal/pkg/pagination"

	"github.com/stretchr/testify/require"
)

func TestGetMeta(t *testing.T) {
	params := &pagination.Params{Page: 2, Limit: 20, Offset: 20}
	meta := pagination.GetMeta(params, 45)

	require.Equal(t, 2, meta.Page)
	require.Equal(t, 20, meta.Limit)
	require.Equal(t, int64(45), meta.Total)
	require.Equal(t, 3, meta.TotalPages)
	require.True(t, meta.HasNext)
	require.True(t, meta.HasPrev)
}

func TestGetMetaExactDivision(t *testing.T) {
	params := &pagination.Params{Page: 2, Limit: 20, Offset: 20}
	meta := pagination.GetMeta(params, 40)

	require.Equal(t, 2, meta.TotalPages)
	require.False(t, meta.HasNext)
}

func TestGetMetaEmpty(t *testing.T) {
	params := &pagination.Params{Page: 1, Limit: 20}
	meta := pagination.GetMeta(params, 0)

	require.Zero(t, meta.TotalPages)
	require.False(t, meta.HasNext)
	require.False(t, meta.HasPrev)
}
