package importer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/paramedit/internal/design"
	"github.com/roach88/paramedit/internal/mutator"
	"github.com/roach88/paramedit/internal/param"
	"github.com/roach88/paramedit/internal/store"
)

func newDoc(t *testing.T) (*design.Document, *mutator.Mutator) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	doc := design.New(st, nil)
	m := mutator.New(doc, doc,
		mutator.WithParser(doc.Parser()),
		mutator.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return doc, m
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	doc, m := newDoc(t)

	_, err := doc.Add(ctx, "width", "5 mm", "mm", "")
	require.NoError(t, err)
	_, err = doc.Add(ctx, "depth", "5 mm", "mm", "")
	require.NoError(t, err)

	results := Apply(ctx, m, []Entry{
		{Name: "width", Value: "120 mm", Comment: "overall"},
		{Name: "count", Value: "4"},
		{Name: "depth", Value: "3"},
		{Name: "bad", Value: "1 zz"},
	})

	require.Len(t, results, 4)
	assert.Equal(t, mutator.OutcomeUpdated, results[0].Outcome)
	assert.Equal(t, mutator.OutcomeCreated, results[1].Outcome)
	assert.True(t, param.IsInvalidConversionError(results[2].Err))
	assert.True(t, param.IsUnknownUnitError(results[3].Err))
	assert.Equal(t, 2, Failed(results))

	assert.Equal(t, "count: created (4)", results[1].String())
	assert.Contains(t, results[3].String(), "bad: error: ")

	w, ok, err := doc.ItemByName(ctx, "width")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "120 mm", w.Expression)
}

func TestApply_CommentOnCreate(t *testing.T) {
	ctx := context.Background()
	doc, m := newDoc(t)

	results := Apply(ctx, m, []Entry{{Name: "width", Value: "1 in", Comment: "overall width"}})
	require.NoError(t, results[0].Err)

	w, _, err := doc.ItemByName(ctx, "width")
	require.NoError(t, err)
	assert.Equal(t, "overall width", w.Comment)
	assert.Equal(t, "in", w.Unit)
}
