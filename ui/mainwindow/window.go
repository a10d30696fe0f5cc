// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"kbd-designer/internal/app"
	"kbd-designer/internal/render"
	"kbd-designer/internal/schedule"
	"kbd-designer/internal/version"
	"kbd-designer/ui/canvas"
	"kbd-designer/ui/panels"
	"kbd-designer/ui/prefs"
)

const (
	prefKeyLastDir    = "lastDirectory"
	prefKeyLastLayout = "lastLayout"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.KeyboardCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	zoomLabel *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, sched *schedule.Scheduler, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Keyboard Designer")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI(sched)
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreLastLayout()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI(sched *schedule.Scheduler) {
	mw.canvas = canvas.New(mw.state, sched)

	// Side panel with the key and keyboard tabs
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)

	mw.statusBar = widget.NewLabel("Ready")
	mw.zoomLabel = widget.NewLabel("100%")
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	toolbar := mw.createToolbar()

	// Canvas area with toolbar on top
	canvasArea := container.NewBorder(
		toolbar,               // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	// Main layout: side panel | canvas area
	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25) // Side panel takes 25% of width

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	actualBtn := widget.NewButton("1:1", mw.canvas.ZoomReset)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		actualBtn,
		mw.zoomLabel,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Layout", mw.onNewLayout),
		fyne.NewMenuItem("Open Layout...", mw.onOpenLayout),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Layout", mw.onSaveLayout),
		fyne.NewMenuItem("Save Layout As...", mw.onSaveLayoutAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.state.Undo),
		fyne.NewMenuItem("Redo", mw.state.Redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Selected", mw.state.DeleteSelected),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Actual Size", mw.canvas.ZoomReset),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventLayoutLoaded, func(data interface{}) {
		if path, ok := data.(string); ok && path != "" {
			mw.SetTitle("Keyboard Designer - " + filepath.Base(path))
			mw.updateStatus("Layout loaded: " + path)
		} else {
			mw.SetTitle("Keyboard Designer")
			mw.updateStatus("New layout")
		}
	})

	mw.state.On(app.EventLayoutSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Keyboard Designer - " + filepath.Base(path))
			mw.updateStatus("Saved: " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventSelectionChanged, func(interface{}) {
		n := len(mw.state.SelectedKeys())
		switch n {
		case 0:
			mw.updateStatus("Ready")
		case 1:
			mw.updateStatus("1 key selected")
		default:
			mw.updateStatus(fmt.Sprintf("%d keys selected", n))
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.prefs.SetString(prefKeyLastDir, dir)
}

// SavePreferences flushes preferences to disk, called on shutdown.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Could not save preferences")
	}
}

// restoreLastLayout reopens the layout from the previous session.
func (mw *MainWindow) restoreLastLayout() {
	path := mw.prefs.String(prefKeyLastLayout)
	if path == "" {
		return
	}
	if err := mw.state.LoadLayout(path); err != nil {
		mw.updateStatus("Could not reopen " + filepath.Base(path))
	}
}

// Menu action handlers

func (mw *MainWindow) onNewLayout() {
	if mw.state.Modified {
		dialog.ShowConfirm("Discard changes?",
			"The current layout has unsaved changes.", func(ok bool) {
				if ok {
					mw.state.NewLayout()
				}
			}, mw.Window)
		return
	}
	mw.state.NewLayout()
}

func (mw *MainWindow) onOpenLayout() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadLayout(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefKeyLastLayout, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveLayout() {
	if mw.state.LayoutPath == "" {
		mw.onSaveLayoutAs()
		return
	}
	if err := mw.state.SaveLayout(mw.state.LayoutPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveLayoutAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".json" {
			path += ".json"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveLayout(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefKeyLastLayout, path)
	}, mw.Window)
	fd.SetFileName("layout.json")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// onExportPNG renders the layout at the base scale into a PNG file.
func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := mw.exportPNG(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported: " + path)
	}, mw.Window)
	fd.SetFileName("layout.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) exportPNG(path string) error {
	r := render.NewRenderer(render.DefaultStyle(canvas.BaseUnit))
	img := r.Render(mw.state.Layout, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Keyboard Designer",
		fmt.Sprintf("Keyboard Designer v%s\n\n"+
			"A cross-platform keyboard layout editor.\n\n"+
			"Reads and writes keyboard-layout-editor JSON.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
