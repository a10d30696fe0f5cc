// Package main provides the entry point for the Keyboard Designer application.
package main

import (
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"kbd-designer/internal/app"
	"kbd-designer/internal/schedule"
	"kbd-designer/ui/mainwindow"
	"kbd-designer/ui/prefs"
)

const (
	appTitle   = "Keyboard Designer"
	appVersion = "0.1.0"

	// frameInterval batches redraw requests arriving within one display
	// refresh into a single repaint.
	frameInterval = 16 * time.Millisecond
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	fyneApp := fyneapp.NewWithID("kbd-designer")
	fyneApp.Settings().SetTheme(&app.DesignerTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	sched := schedule.New(func(run func()) {
		time.AfterFunc(frameInterval, run)
	}, nil)

	win := mainwindow.New(fyneApp, appState, sched, appPrefs)
	win.SetTitle(appTitle)
	win.Resize(fyne.NewSize(1280, 800))

	// Open a layout given on the command line
	if len(os.Args) > 1 {
		layoutPath := os.Args[1]
		if err := appState.LoadLayout(layoutPath); err != nil {
			log.Printf("Failed to load layout %s: %v", layoutPath, err)
		}
	}

	setupHotReload(win)

	win.SetOnClosed(func() {
		win.SavePreferences()
	})

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(ok bool) {
				if ok {
					log.Println("Hot reload: saving preferences before restart...")
					win.SavePreferences()
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
