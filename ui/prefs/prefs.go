// Package prefs persists user preferences as a flat JSON document in the
// platform config directory.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	appDir    = "kbd-designer"
	prefsFile = "preferences.json"
)

// Prefs is a typed view over the preference map. Lookups never error: a
// missing or unreadable file just yields fallbacks.
type Prefs struct {
	mu   sync.RWMutex
	data map[string]interface{}
	path string
}

// Load reads the preference file, or returns an empty Prefs when there is
// none yet.
func Load() *Prefs {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}

	p := &Prefs{
		data: make(map[string]interface{}),
		path: filepath.Join(configDir, appDir, prefsFile),
	}
	if raw, err := os.ReadFile(p.path); err == nil {
		_ = json.Unmarshal(raw, &p.data)
	}
	return p
}

// Save writes the preference file, creating the config directory on first
// run.
func (p *Prefs) Save() error {
	p.mu.RLock()
	raw, err := json.MarshalIndent(p.data, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, raw, 0o644)
}

// String returns a string preference, or "" when unset.
func (p *Prefs) String(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.data[key].(string); ok {
		return s
	}
	return ""
}

// SetString stores a string preference.
func (p *Prefs) SetString(key, val string) {
	p.mu.Lock()
	p.data[key] = val
	p.mu.Unlock()
}

// Float returns a numeric preference, or fallback when unset. JSON decodes
// every number as float64, so that is the only numeric case.
func (p *Prefs) Float(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if n, ok := p.data[key].(float64); ok {
		return n
	}
	return fallback
}

// SetFloat stores a numeric preference.
func (p *Prefs) SetFloat(key string, val float64) {
	p.mu.Lock()
	p.data[key] = val
	p.mu.Unlock()
}

// Bool returns a boolean preference, or fallback when unset.
func (p *Prefs) Bool(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if b, ok := p.data[key].(bool); ok {
		return b
	}
	return fallback
}

// SetBool stores a boolean preference.
func (p *Prefs) SetBool(key string, val bool) {
	p.mu.Lock()
	p.data[key] = val
	p.mu.Unlock()
}
