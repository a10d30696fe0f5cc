package keyboard

// Metadata holds the descriptive fields of a layout file.
type Metadata struct {
	Name      string `json:"name,omitempty"`
	Author    string `json:"author,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Backcolor string `json:"backcolor,omitempty"`
}

// Layout is an ordered collection of keys. Slice order is z-order: later
// keys draw on top of earlier ones, and hit-testing walks the slice from the
// end.
type Layout struct {
	Meta Metadata `json:"meta"`
	Keys []*Key   `json:"keys"`
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{}
}

// Add appends a key, placing it on top of the z-order.
func (l *Layout) Add(k *Key) {
	l.Keys = append(l.Keys, k)
}

// Remove deletes a key from the layout. Unknown keys are ignored.
func (l *Layout) Remove(k *Key) {
	for i, cur := range l.Keys {
		if cur == k {
			l.Keys = append(l.Keys[:i], l.Keys[i+1:]...)
			return
		}
	}
}

// IndexOf returns the position of a key in the layout, or -1.
func (l *Layout) IndexOf(k *Key) int {
	for i, cur := range l.Keys {
		if cur == k {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	c := &Layout{Meta: l.Meta}
	c.Keys = make([]*Key, len(l.Keys))
	for i, k := range l.Keys {
		c.Keys[i] = k.Clone()
	}
	return c
}
