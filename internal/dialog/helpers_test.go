package dialog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/paramedit/internal/design"
	"github.com/roach88/paramedit/internal/mutator"
	"github.com/roach88/paramedit/internal/store"
)

// recordingMessenger collects message boxes.
type recordingMessenger struct {
	messages []string
}

func (m *recordingMessenger) MessageBox(msg string) {
	m.messages = append(m.messages, msg)
}

// countingReloader counts reloads and optionally fails.
type countingReloader struct {
	calls int
	err   error
}

func (r *countingReloader) Reload(context.Context) error {
	r.calls++
	return r.err
}

type fixture struct {
	doc    *design.Document
	msgs   *recordingMessenger
	reload *countingReloader
	dialog ParamEdit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc := design.New(st, nil)
	msgs := &recordingMessenger{}
	reload := &countingReloader{}

	return &fixture{
		doc:    doc,
		msgs:   msgs,
		reload: reload,
		dialog: ParamEdit{
			Mutator:   mutator.New(doc, doc, mutator.WithLogger(logger), mutator.WithParser(doc.Parser())),
			Store:     doc,
			Units:     doc,
			Taxonomy:  doc.Units(),
			Messenger: msgs,
			Reloader:  reload,
			Logger:    logger,
		},
	}
}

func (f *fixture) add(t *testing.T, name, expr, unit string) {
	t.Helper()
	_, err := f.doc.Add(context.Background(), name, expr, unit, "")
	require.NoError(t, err)
}

// open creates a fresh dialog and returns its inputs.
func (f *fixture) open(t *testing.T) *Inputs {
	t.Helper()
	in := NewInputs()
	require.NoError(t, f.dialog.OnCreate(context.Background(), in))
	return in
}

func commandField(in *Inputs) *Field {
	return in.Group(CommandGroupID).Field(CommandFieldID)
}

func paramField(in *Inputs, name string) *Field {
	return in.Group(ParameterGroupID).Field(name)
}
