package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// HotReloader polls the running binary's mod time and fires a callback once
// when a newer build appears. Development convenience: recompile, get offered
// a restart.
type HotReloader struct {
	execPath string
	baseline time.Time
	interval time.Duration
	stopCh   chan struct{}
	onNew    func()
}

// NewHotReloader watches the current executable. Returns nil if the
// executable path cannot be resolved.
func NewHotReloader(interval time.Duration) *HotReloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build writes a new file behind the symlink
	if real, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = real
	}
	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}
	return &HotReloader{
		execPath: execPath,
		baseline: info.ModTime(),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// OnNewBinary sets the callback fired when a newer binary is detected.
// It runs on the watcher goroutine.
func (h *HotReloader) OnNewBinary(callback func()) {
	h.onNew = callback
}

// Start begins polling in a background goroutine. Safe to call again after
// the watcher has fired or been stopped.
func (h *HotReloader) Start() {
	h.stopCh = make(chan struct{})
	go h.watch()
}

// Stop halts the watcher goroutine.
func (h *HotReloader) Stop() {
	close(h.stopCh)
}

func (h *HotReloader) watch() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			info, err := os.Stat(h.execPath)
			if err != nil {
				continue
			}
			if info.ModTime().After(h.baseline) {
				if h.onNew != nil {
					h.onNew()
				}
				// fire once; the callback decides whether to rearm
				return
			}
		}
	}
}

// ExecPath returns the watched executable path.
func (h *HotReloader) ExecPath() string {
	return h.execPath
}

// StartupTime returns the binary mod time recorded when watching began.
func (h *HotReloader) StartupTime() time.Time {
	return h.baseline
}

// ResetBaseline adopts the current binary's mod time as the new baseline,
// so a declined restart does not re-prompt for the same build.
func (h *HotReloader) ResetBaseline() {
	if info, err := os.Stat(h.execPath); err == nil {
		h.baseline = info.ModTime()
	}
}

// Restart replaces the current process with the new binary, preserving
// arguments and environment. Does not return on success.
func (h *HotReloader) Restart() error {
	return syscall.Exec(h.execPath, os.Args, os.Environ())
}
