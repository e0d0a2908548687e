package store

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// Open builds the backend named by backend. prefs is only needed for the
// preferences backend; path for file and sqlite.
func Open(backend, path string, prefs fyne.Preferences) (Backend, error) {
	switch backend {
	case BackendPreferences:
		if prefs == nil {
			return nil, fmt.Errorf("preferences backend needs a fyne app")
		}
		return NewPreferencesStore(prefs), nil
	case BackendFile:
		if path == "" {
			return nil, fmt.Errorf("file backend needs a path")
		}
		return NewFileStore(path), nil
	case BackendSQLite:
		if path == "" {
			return nil, fmt.Errorf("sqlite backend needs a path")
		}
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
