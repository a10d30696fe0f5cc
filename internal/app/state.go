// Package app provides application lifecycle management, state, and events.
package app

import (
	"fmt"
	"sync"

	"kbd-designer/internal/keyboard"
)

// State holds the designer's working state: the layout being edited, its file
// path, the selection, and the undo history. UI widgets subscribe to events
// instead of polling.
type State struct {
	mu sync.RWMutex

	Layout     *keyboard.Layout
	LayoutPath string
	Modified   bool

	selection map[*keyboard.Key]bool
	history   history

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventLayoutLoaded EventType = iota
	EventLayoutSaved
	EventKeysChanged
	EventSelectionChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with an empty layout.
func NewState() *State {
	return &State{
		Layout:    keyboard.NewLayout(),
		selection: make(map[*keyboard.Key]bool),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the layout as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// NewLayout discards the current layout and starts an empty one.
func (s *State) NewLayout() {
	s.mu.Lock()
	s.Layout = keyboard.NewLayout()
	s.LayoutPath = ""
	s.Modified = false
	s.selection = make(map[*keyboard.Key]bool)
	s.history = history{}
	s.mu.Unlock()

	s.Emit(EventLayoutLoaded, "")
	s.Emit(EventSelectionChanged, nil)
}

// LoadLayout loads a KLE layout file from the specified path.
func (s *State) LoadLayout(path string) error {
	l, err := keyboard.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	s.mu.Lock()
	s.Layout = l
	s.LayoutPath = path
	s.Modified = false
	s.selection = make(map[*keyboard.Key]bool)
	s.history = history{}
	s.mu.Unlock()

	s.Emit(EventLayoutLoaded, path)
	s.Emit(EventSelectionChanged, nil)
	return nil
}

// SaveLayout writes the layout to the specified path and clears the modified
// flag.
func (s *State) SaveLayout(path string) error {
	s.mu.RLock()
	l := s.Layout
	s.mu.RUnlock()

	if err := keyboard.SaveFile(path, l); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}

	s.mu.Lock()
	s.LayoutPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventLayoutSaved, path)
	return nil
}

// Selection returns the selected keys as a set. The map is a copy; mutating
// it does not change the selection.
func (s *State) Selection() map[*keyboard.Key]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel := make(map[*keyboard.Key]bool, len(s.selection))
	for k := range s.selection {
		sel[k] = true
	}
	return sel
}

// IsSelected reports whether the key is in the selection.
func (s *State) IsSelected(k *keyboard.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection[k]
}

// SelectedKeys returns the selected keys in layout order.
func (s *State) SelectedKeys() []*keyboard.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []*keyboard.Key
	for _, k := range s.Layout.Keys {
		if s.selection[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// Select sets the selection to the single key, or extends it when additive.
// A nil key with additive false clears the selection.
func (s *State) Select(k *keyboard.Key, additive bool) {
	s.mu.Lock()
	if !additive {
		s.selection = make(map[*keyboard.Key]bool)
	}
	if k != nil {
		if additive && s.selection[k] {
			delete(s.selection, k) // additive click toggles
		} else {
			s.selection[k] = true
		}
	}
	s.mu.Unlock()

	s.Emit(EventSelectionChanged, k)
}

// SelectMany replaces the selection with the given keys (marquee select).
func (s *State) SelectMany(keys []*keyboard.Key) {
	s.mu.Lock()
	s.selection = make(map[*keyboard.Key]bool, len(keys))
	for _, k := range keys {
		s.selection[k] = true
	}
	s.mu.Unlock()

	s.Emit(EventSelectionChanged, nil)
}

// AddKey appends a key to the layout, selects it, and records history.
func (s *State) AddKey(k *keyboard.Key) {
	s.Checkpoint()

	s.mu.Lock()
	s.Layout.Add(k)
	s.selection = map[*keyboard.Key]bool{k: true}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventKeysChanged, nil)
	s.Emit(EventSelectionChanged, k)
}

// DeleteSelected removes every selected key from the layout.
func (s *State) DeleteSelected() {
	s.mu.RLock()
	n := len(s.selection)
	s.mu.RUnlock()
	if n == 0 {
		return
	}

	s.Checkpoint()

	s.mu.Lock()
	for k := range s.selection {
		s.Layout.Remove(k)
	}
	s.selection = make(map[*keyboard.Key]bool)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventKeysChanged, nil)
	s.Emit(EventSelectionChanged, nil)
}

// MoveSelected shifts every selected key by the given layout-unit delta.
// The caller records history once at drag start, not per step.
func (s *State) MoveSelected(dx, dy float64) {
	s.mu.Lock()
	moved := false
	for k := range s.selection {
		k.X += dx
		k.Y += dy
		if k.RotationX != nil {
			*k.RotationX += dx
		}
		if k.RotationY != nil {
			*k.RotationY += dy
		}
		moved = true
	}
	s.mu.Unlock()

	if moved {
		s.SetModified(true)
		s.Emit(EventKeysChanged, nil)
	}
}

// KeysEdited notifies listeners that key properties changed outside the
// state's own mutators (property panel edits).
func (s *State) KeysEdited() {
	s.SetModified(true)
	s.Emit(EventKeysChanged, nil)
}
