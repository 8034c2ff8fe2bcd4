package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_OrderedByName(t *testing.T) {
	s := createTestStore(t)
	mustInsert(t, s, "width", "10 mm", "mm", 10)
	mustInsert(t, s, "Height", "5 in", "in", 5)
	mustInsert(t, s, "angle", "30 deg", "deg", 30)

	params, err := s.List(context.Background())
	require.NoError(t, err)

	var names []string
	for _, p := range params {
		names = append(names, p.Name)
	}
	// BINARY collation: uppercase sorts before lowercase.
	assert.Equal(t, []string{"Height", "angle", "width"}, names)
}

func TestList_Empty(t *testing.T) {
	s := createTestStore(t)

	params, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestHistory_FilterByName(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	mustInsert(t, s, "a", "1", "", 1)
	mustInsert(t, s, "b", "2", "", 2)
	_, err := s.UpdateExpression(ctx, "a", "3", 3)
	require.NoError(t, err)

	all, err := s.History(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyA, err := s.History(ctx, "a")
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	assert.Equal(t, int64(1), onlyA[0].Seq)
	assert.Equal(t, int64(3), onlyA[1].Seq)
}
