package timeline

import "github.com/google/uuid"

// Undo/redo over full-state snapshots. History is linear: pushing a new
// snapshot after an undo discards the redo stack.

// maxHistoryDepth bounds snapshot memory for long editing sessions.
const maxHistoryDepth = 200

// pushHistory captures the current state before a mutation.
func (e *Editor) pushHistory() {
	e.undo = append(e.undo, e.state.Clone())
	if len(e.undo) > maxHistoryDepth {
		e.undo = e.undo[1:]
	}
	e.redo = nil
}

// Undo restores the most recent snapshot, moving the current state onto the
// redo stack. With an empty history it is a no-op.
func (e *Editor) Undo() {
	if len(e.undo) == 0 {
		return
	}
	top := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, e.state)
	e.state = top
}

// Redo re-applies the most recently undone state. No-op when empty.
func (e *Editor) Redo() {
	if len(e.redo) == 0 {
		return
	}
	top := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, e.state)
	e.state = top
}

// CanUndo and CanRedo let views enable/disable their controls.
func (e *Editor) CanUndo() bool { return len(e.undo) > 0 }
func (e *Editor) CanRedo() bool { return len(e.redo) > 0 }

func newClipID() string {
	return uuid.New().String()
}
