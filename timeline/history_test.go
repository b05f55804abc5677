package timeline

import (
	"reflect"
	"testing"
)

func TestUndoEmptyHistoryIsNoop(t *testing.T) {
	e := NewEditor()
	mustAdd(t, e, "a", 8)
	e.Undo() // drains the single snapshot
	before := e.Snapshot()

	e.Undo()

	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Fatal("undo with empty history must leave state unchanged")
	}
}

func TestRedoEmptyHistoryIsNoop(t *testing.T) {
	e := NewEditor()
	before := e.Snapshot()
	e.Redo()
	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Fatal("redo with empty stack must leave state unchanged")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e := NewEditor()
	mustAdd(t, e, "a", 8)
	afterA := e.Snapshot()
	mustAdd(t, e, "b", 12)
	afterB := e.Snapshot()

	e.Undo()
	if !reflect.DeepEqual(afterA, e.Snapshot()) {
		t.Fatal("undo should restore the single-clip state")
	}
	e.Redo()
	if !reflect.DeepEqual(afterB, e.Snapshot()) {
		t.Fatal("redo should restore the two-clip state")
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	// Linear history: editing after an undo forks the timeline and the
	// undone future is discarded.
	e := NewEditor()
	mustAdd(t, e, "a", 8)
	mustAdd(t, e, "b", 12)

	e.Undo()
	if !e.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}

	mustAdd(t, e, "c", 10)
	if e.CanRedo() {
		t.Fatal("a new edit after undo must clear the redo stack")
	}
}

func TestUndoRestoresTrim(t *testing.T) {
	e := NewEditor()
	mustAdd(t, e, "a", 10)
	e.TrimOut("a", 5)
	e.Undo()
	if got := e.Clips()[0].TrimOut; got != 10 {
		t.Fatalf("TrimOut after undo = %v; want 10", got)
	}
}

func TestNoopMutationsDoNotPushHistory(t *testing.T) {
	e := NewEditor()
	mustAdd(t, e, "a", 10)
	e.Undo() // back to empty

	// All of these are no-ops and must not create snapshots.
	e.TrimIn("ghost", 1)
	e.RemoveClip("ghost")
	e.SplitAt(50)
	e.ClearMusic()

	if e.CanUndo() {
		t.Fatal("no-op operations must not push history snapshots")
	}
}
