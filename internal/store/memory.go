package store

import (
	"sync"

	"kibble-ration/internal/model"
)

// MemoryStore keeps the encoded snapshot in memory. Nothing survives the
// process.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load() (*model.RationConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return Decode(s.data)
}

func (s *MemoryStore) Save(cfg model.RationConfig) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// SetRaw replaces the stored bytes as-is.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}

func (s *MemoryStore) Close() error { return nil }
