package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"kbd-designer/internal/app"
	"kbd-designer/internal/keyboard"
)

// KeyPanel edits the properties of the selected key. With a multi-key
// selection it shows the first key and applies edits to that key only;
// position changes for whole groups happen by dragging on the canvas.
type KeyPanel struct {
	state     *app.State
	container fyne.CanvasObject

	header *widget.Label

	xEntry, yEntry *widget.Entry
	wEntry, hEntry *widget.Entry

	// Second rectangle (L-shapes)
	x2Entry, y2Entry *widget.Entry
	w2Entry, h2Entry *widget.Entry

	angleEntry *widget.Entry
	rxEntry    *widget.Entry
	ryEntry    *widget.Entry

	colorEntry *widget.Entry
	labels     [9]*widget.Entry

	ghostCheck   *widget.Check
	deckalCheck  *widget.Check
	steppedCheck *widget.Check
	nubCheck     *widget.Check

	// Guard against write-back while loading fields from a key
	loading bool
}

// NewKeyPanel creates the key property panel.
func NewKeyPanel(state *app.State) *KeyPanel {
	kp := &KeyPanel{state: state}

	kp.header = widget.NewLabel("No key selected")

	kp.xEntry = kp.numEntry(func(k *keyboard.Key, v float64) { k.X = v })
	kp.yEntry = kp.numEntry(func(k *keyboard.Key, v float64) { k.Y = v })
	kp.wEntry = kp.numEntry(func(k *keyboard.Key, v float64) { k.Width = v })
	kp.hEntry = kp.numEntry(func(k *keyboard.Key, v float64) { k.Height = v })

	kp.x2Entry = kp.numEntry(func(k *keyboard.Key, v float64) { k.X2 = v })
	kp.y2Entry = kp.numEntry(func(k *keyboard.Key, v float64) { k.Y2 = v })
	kp.w2Entry = kp.numEntry(func(k *keyboard.Key, v float64) { k.Width2 = v })
	kp.h2Entry = kp.numEntry(func(k *keyboard.Key, v float64) { k.Height2 = v })

	kp.angleEntry = kp.numEntry(func(k *keyboard.Key, v float64) { k.RotationAngle = v })
	kp.rxEntry = kp.numEntry(func(k *keyboard.Key, v float64) {
		if k.RotationX == nil {
			k.RotationX = new(float64)
		}
		*k.RotationX = v
	})
	kp.ryEntry = kp.numEntry(func(k *keyboard.Key, v float64) {
		if k.RotationY == nil {
			k.RotationY = new(float64)
		}
		*k.RotationY = v
	})

	kp.colorEntry = widget.NewEntry()
	kp.colorEntry.SetPlaceHolder("#cccccc")
	kp.colorEntry.OnSubmitted = func(s string) {
		kp.apply(func(k *keyboard.Key) { k.Color = s })
	}

	for i := range kp.labels {
		slot := i
		e := widget.NewEntry()
		e.OnChanged = func(s string) {
			if kp.loading {
				return
			}
			kp.apply(func(k *keyboard.Key) { k.SetLabel(slot, s) })
		}
		kp.labels[i] = e
	}

	kp.ghostCheck = kp.flagCheck("Ghost", func(k *keyboard.Key, v bool) { k.Ghost = v })
	kp.deckalCheck = kp.flagCheck("Decal", func(k *keyboard.Key, v bool) { k.Decal = v })
	kp.steppedCheck = kp.flagCheck("Stepped", func(k *keyboard.Key, v bool) { k.Stepped = v })
	kp.nubCheck = kp.flagCheck("Homing nub", func(k *keyboard.Key, v bool) { k.Nub = v })

	addButton := widget.NewButton("Add Key", func() {
		state.AddKey(nextFreeKey(state.Layout))
	})
	deleteButton := widget.NewButton("Delete Selected", func() {
		state.DeleteSelected()
	})

	position := widget.NewForm(
		widget.NewFormItem("X", kp.xEntry),
		widget.NewFormItem("Y", kp.yEntry),
		widget.NewFormItem("Width", kp.wEntry),
		widget.NewFormItem("Height", kp.hEntry),
	)
	secondary := widget.NewForm(
		widget.NewFormItem("X2", kp.x2Entry),
		widget.NewFormItem("Y2", kp.y2Entry),
		widget.NewFormItem("Width2", kp.w2Entry),
		widget.NewFormItem("Height2", kp.h2Entry),
	)
	rotation := widget.NewForm(
		widget.NewFormItem("Angle", kp.angleEntry),
		widget.NewFormItem("Origin X", kp.rxEntry),
		widget.NewFormItem("Origin Y", kp.ryEntry),
	)

	labelGrid := container.NewGridWithColumns(3)
	for _, e := range kp.labels {
		labelGrid.Add(e)
	}

	kp.container = container.NewVScroll(container.NewVBox(
		kp.header,
		container.NewGridWithColumns(2, addButton, deleteButton),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Position", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		position,
		widget.NewLabelWithStyle("Second rectangle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		secondary,
		widget.NewLabelWithStyle("Rotation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rotation,
		widget.NewSeparator(),
		widget.NewForm(widget.NewFormItem("Color", kp.colorEntry)),
		widget.NewLabelWithStyle("Labels", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		labelGrid,
		widget.NewSeparator(),
		kp.ghostCheck,
		kp.deckalCheck,
		kp.steppedCheck,
		kp.nubCheck,
	))

	state.On(app.EventSelectionChanged, func(interface{}) { kp.reload() })
	state.On(app.EventKeysChanged, func(interface{}) { kp.reload() })
	kp.reload()

	return kp
}

// Container returns the panel container.
func (kp *KeyPanel) Container() fyne.CanvasObject {
	return kp.container
}

// current returns the key being edited, nil with nothing selected.
func (kp *KeyPanel) current() *keyboard.Key {
	keys := kp.state.SelectedKeys()
	if len(keys) == 0 {
		return nil
	}
	return keys[0]
}

// numEntry builds an entry that writes a parsed float back to the key on
// submit.
func (kp *KeyPanel) numEntry(set func(*keyboard.Key, float64)) *widget.Entry {
	e := widget.NewEntry()
	e.OnSubmitted = func(s string) {
		v, ok := parseFloat(s)
		if !ok {
			kp.reload() // restore the last valid value
			return
		}
		kp.apply(func(k *keyboard.Key) { set(k, v) })
	}
	return e
}

func (kp *KeyPanel) flagCheck(label string, set func(*keyboard.Key, bool)) *widget.Check {
	return widget.NewCheck(label, func(v bool) {
		if kp.loading {
			return
		}
		kp.apply(func(k *keyboard.Key) { set(k, v) })
	})
}

// apply runs an edit against the current key with a history checkpoint.
func (kp *KeyPanel) apply(edit func(*keyboard.Key)) {
	k := kp.current()
	if k == nil {
		return
	}
	kp.state.Checkpoint()
	edit(k)
	kp.state.KeysEdited()
}

// reload fills every field from the current key.
func (kp *KeyPanel) reload() {
	kp.loading = true
	defer func() { kp.loading = false }()

	k := kp.current()
	if k == nil {
		kp.header.SetText("No key selected")
		for _, e := range kp.allEntries() {
			e.SetText("")
		}
		return
	}

	if n := len(kp.state.SelectedKeys()); n > 1 {
		kp.header.SetText("Editing first of selection")
	} else {
		kp.header.SetText("Selected key")
	}

	kp.xEntry.SetText(formatFloat(k.X))
	kp.yEntry.SetText(formatFloat(k.Y))
	kp.wEntry.SetText(formatFloat(k.Width))
	kp.hEntry.SetText(formatFloat(k.Height))

	kp.x2Entry.SetText(formatFloat(k.X2))
	kp.y2Entry.SetText(formatFloat(k.Y2))
	kp.w2Entry.SetText(formatFloat(k.Width2))
	kp.h2Entry.SetText(formatFloat(k.Height2))

	kp.angleEntry.SetText(formatFloat(k.RotationAngle))
	if k.RotationX != nil {
		kp.rxEntry.SetText(formatFloat(*k.RotationX))
	} else {
		kp.rxEntry.SetText("")
	}
	if k.RotationY != nil {
		kp.ryEntry.SetText(formatFloat(*k.RotationY))
	} else {
		kp.ryEntry.SetText("")
	}

	kp.colorEntry.SetText(k.Color)
	for i, e := range kp.labels {
		e.SetText(k.Label(i))
	}

	kp.ghostCheck.SetChecked(k.Ghost)
	kp.deckalCheck.SetChecked(k.Decal)
	kp.steppedCheck.SetChecked(k.Stepped)
	kp.nubCheck.SetChecked(k.Nub)
}

func (kp *KeyPanel) allEntries() []*widget.Entry {
	es := []*widget.Entry{
		kp.xEntry, kp.yEntry, kp.wEntry, kp.hEntry,
		kp.x2Entry, kp.y2Entry, kp.w2Entry, kp.h2Entry,
		kp.angleEntry, kp.rxEntry, kp.ryEntry,
		kp.colorEntry,
	}
	return append(es, kp.labels[:]...)
}

// nextFreeKey places a new 1x1 key just past the right edge of the last
// key's row, or at the origin for an empty layout.
func nextFreeKey(l *keyboard.Layout) *keyboard.Key {
	if len(l.Keys) == 0 {
		return keyboard.NewKey(0, 0)
	}
	last := l.Keys[len(l.Keys)-1]
	return keyboard.NewKey(last.X+last.Width, last.Y)
}
