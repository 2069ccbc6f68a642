package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJournalAppendAndEvents(t *testing.T) {
	j := NewJournal()
	j.Append(Event{Kind: BeginBatch, BatchID: "b1"})
	j.Append(Event{Kind: RollbackFile, BatchID: "b1", File: "a.go", Reason: "NO_MATCH"})
	j.Append(Event{Kind: CompleteBatch, BatchID: "b1"})

	events := j.Events()
	require.Len(t, events, 3)
	require.True(t, j.AtHead())
}

func TestJournalUndoRedo(t *testing.T) {
	j := NewJournal()
	j.Append(Event{Kind: BeginBatch, BatchID: "b1"})
	j.Append(Event{Kind: CompleteBatch, BatchID: "b1"})

	e, ok := j.Undo()
	require.True(t, ok)
	require.Equal(t, CompleteBatch, e.Kind)
	require.False(t, j.AtHead())
	require.Len(t, j.Events(), 1)

	e, ok = j.Redo()
	require.True(t, ok)
	require.Equal(t, CompleteBatch, e.Kind)
	require.True(t, j.AtHead())
}

func TestJournalAppendAfterUndoTruncatesRedoTail(t *testing.T) {
	j := NewJournal()
	j.Append(Event{Kind: BeginBatch, BatchID: "b1"})
	j.Append(Event{Kind: CompleteBatch, BatchID: "b1"})
	j.Undo()

	j.Append(Event{Kind: RollbackFile, BatchID: "b1", File: "x.go"})

	_, ok := j.Redo()
	require.False(t, ok)
	require.Len(t, j.Events(), 2)
	require.Equal(t, RollbackFile, j.Events()[1].Kind)
}

func TestJournalUndoAtStartReturnsFalse(t *testing.T) {
	j := NewJournal()
	_, ok := j.Undo()
	require.False(t, ok)
}
