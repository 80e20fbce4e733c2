package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const preferencesVersion = "1.0"

// Preferences are the dashboard display choices remembered between sessions.
type Preferences struct {
	DisplayMode string `json:"display_mode,omitempty"`
	SortOrder   string `json:"sort_order,omitempty"`
}

type preferencesFile struct {
	Version     string      `json:"version"`
	Preferences Preferences `json:"preferences"`
}

// PreferenceStore persists Preferences as a small JSON document.
type PreferenceStore struct {
	path  string
	mu    sync.RWMutex
	prefs Preferences
}

// NewPreferenceStore opens the store at path, loading any saved preferences.
// A missing file yields empty preferences.
func NewPreferenceStore(path string) (*PreferenceStore, error) {
	s := &PreferenceStore{path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Load reads the preferences from disk.
func (s *PreferenceStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file preferencesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}
	s.prefs = file.Preferences
	return nil
}

// Get returns the current preferences.
func (s *PreferenceStore) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Update replaces the preferences and writes them to disk.
func (s *PreferenceStore) Update(prefs Preferences) error {
	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
	return s.Save()
}

// Save writes the preferences to disk atomically
func (s *PreferenceStore) Save() error {
	s.mu.RLock()
	file := preferencesFile{Version: preferencesVersion, Preferences: s.prefs}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
