// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"kbd-designer/internal/app"
	"kbd-designer/ui/canvas"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.KeyboardCanvas
	container *container.AppTabs

	// Tab content
	keyPanel  *KeyPanel
	metaPanel *MetaPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.KeyboardCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	// Create individual panels
	sp.keyPanel = NewKeyPanel(state)
	sp.metaPanel = NewMetaPanel(state)

	// Create tabbed container
	sp.container = container.NewAppTabs(
		container.NewTabItem("Key", sp.keyPanel.Container()),
		container.NewTabItem("Keyboard", sp.metaPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}
