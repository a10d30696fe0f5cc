package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"kbd-designer/internal/app"
)

// MetaPanel edits layout-wide metadata: name, author, notes, and the
// backdrop color behind the keys.
type MetaPanel struct {
	state     *app.State
	container fyne.CanvasObject

	nameEntry      *widget.Entry
	authorEntry    *widget.Entry
	notesEntry     *widget.Entry
	backcolorEntry *widget.Entry

	loading bool
}

// NewMetaPanel creates the metadata panel.
func NewMetaPanel(state *app.State) *MetaPanel {
	mp := &MetaPanel{state: state}

	mp.nameEntry = mp.textEntry(func(s string) { state.Layout.Meta.Name = s })
	mp.authorEntry = mp.textEntry(func(s string) { state.Layout.Meta.Author = s })

	mp.notesEntry = widget.NewMultiLineEntry()
	mp.notesEntry.Wrapping = fyne.TextWrapWord
	mp.notesEntry.OnChanged = func(s string) {
		if mp.loading {
			return
		}
		state.Layout.Meta.Notes = s
		state.SetModified(true)
	}

	mp.backcolorEntry = widget.NewEntry()
	mp.backcolorEntry.SetPlaceHolder("#eeeeee")
	mp.backcolorEntry.OnSubmitted = func(s string) {
		state.Layout.Meta.Backcolor = s
		state.SetModified(true)
	}

	mp.container = container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Name", mp.nameEntry),
			widget.NewFormItem("Author", mp.authorEntry),
			widget.NewFormItem("Backcolor", mp.backcolorEntry),
		),
		widget.NewLabelWithStyle("Notes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mp.notesEntry,
	)

	state.On(app.EventLayoutLoaded, func(interface{}) { mp.reload() })
	mp.reload()

	return mp
}

// Container returns the panel container.
func (mp *MetaPanel) Container() fyne.CanvasObject {
	return mp.container
}

func (mp *MetaPanel) textEntry(set func(string)) *widget.Entry {
	e := widget.NewEntry()
	e.OnChanged = func(s string) {
		if mp.loading {
			return
		}
		set(s)
		mp.state.SetModified(true)
	}
	return e
}

func (mp *MetaPanel) reload() {
	mp.loading = true
	defer func() { mp.loading = false }()

	meta := mp.state.Layout.Meta
	mp.nameEntry.SetText(meta.Name)
	mp.authorEntry.SetText(meta.Author)
	mp.notesEntry.SetText(meta.Notes)
	mp.backcolorEntry.SetText(meta.Backcolor)
}
