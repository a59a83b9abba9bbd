package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MemoryStore keeps lines in memory only. Used for tests and anonymous
// sessions that should not survive a restart.
type MemoryStore struct {
	lines []Line
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]Line, error) {
	snapshot := make([]Line, len(s.lines))
	copy(snapshot, s.lines)
	return snapshot, nil
}

func (s *MemoryStore) Save(lines []Line) error {
	s.lines = make([]Line, len(lines))
	copy(s.lines, lines)
	return nil
}

// FileStore persists lines as one JSON blob per session key, the durable
// client-side storage slot.
type FileStore struct {
	path string
}

func NewFileStore(dir string, sessionKey string) *FileStore {
	return &FileStore{path: filepath.Join(dir, sessionKey+".cart.json")}
}

func (s *FileStore) Load() ([]Line, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed reading cart file with error=%w", err)
	}
	lines := []Line{}
	if err = json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed unmarshaling cart file with error=%w", err)
	}
	return lines, nil
}

func (s *FileStore) Save(lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed marshaling cart with error=%w", err)
	}
	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed writing cart file with error=%w", err)
	}
	return nil
}
