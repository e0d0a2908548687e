package store

import (
	"fmt"

	"fyne.io/fyne/v2"

	"kibble-ration/internal/model"
)

// PreferencesStore keeps the snapshot in the fyne application preferences.
type PreferencesStore struct {
	prefs fyne.Preferences
	key   string
}

// NewPreferencesStore stores under SnapshotKey.
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs, key: SnapshotKey}
}

// Load reads the snapshot.
func (s *PreferencesStore) Load() (*model.RationConfig, error) {
	v := s.prefs.String(s.key)
	if v == "" {
		return nil, nil
	}
	return Decode([]byte(v))
}

// Save overwrites the snapshot.
func (s *PreferencesStore) Save(cfg model.RationConfig) error {
	data, err := Encode(cfg)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	s.prefs.SetString(s.key, string(data))
	return nil
}

// Close is a no-op; fyne flushes preferences itself.
func (s *PreferencesStore) Close() error { return nil }
