package app

import (
	"log"

	"kbd-designer/internal/keyboard"
)

// maxHistoryDepth bounds the undo stack; editing sessions rarely need more.
const maxHistoryDepth = 100

// history keeps whole-layout snapshots in serialized KLE form. Snapshots are
// cheap (a few KB per layout) and sidestep aliasing between undo entries and
// the live key pointers.
type history struct {
	undo [][]byte
	redo [][]byte
}

// Checkpoint records the current layout so the next edit can be undone.
// Call it before mutating, not after.
func (s *State) Checkpoint() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := keyboard.MarshalKLE(s.Layout)
	if err != nil {
		log.Printf("history snapshot: %v", err)
		return
	}

	s.history.undo = append(s.history.undo, data)
	if len(s.history.undo) > maxHistoryDepth {
		s.history.undo = s.history.undo[1:]
	}
	s.history.redo = nil
}

// CanUndo reports whether an undo snapshot exists.
func (s *State) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history.undo) > 0
}

// CanRedo reports whether a redo snapshot exists.
func (s *State) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history.redo) > 0
}

// Undo restores the most recent snapshot, pushing the current layout onto
// the redo stack.
func (s *State) Undo() {
	s.swap(&s.history.undo, &s.history.redo)
}

// Redo reverses the most recent Undo.
func (s *State) Redo() {
	s.swap(&s.history.redo, &s.history.undo)
}

func (s *State) swap(from, to *[][]byte) {
	s.mu.Lock()
	if len(*from) == 0 {
		s.mu.Unlock()
		return
	}

	snapshot := (*from)[len(*from)-1]
	restored, err := keyboard.ParseKLE(snapshot)
	if err != nil {
		// A snapshot we wrote ourselves failed to parse; drop it rather
		// than wedging the stack.
		log.Printf("history restore: %v", err)
		*from = (*from)[:len(*from)-1]
		s.mu.Unlock()
		return
	}

	if current, err := keyboard.MarshalKLE(s.Layout); err == nil {
		*to = append(*to, current)
	}
	*from = (*from)[:len(*from)-1]

	s.Layout = restored
	s.Modified = true
	s.selection = make(map[*keyboard.Key]bool) // old pointers are gone
	s.mu.Unlock()

	s.Emit(EventKeysChanged, nil)
	s.Emit(EventSelectionChanged, nil)
	s.Emit(EventModified, true)
}
