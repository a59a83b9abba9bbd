package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type MemoryStore struct {
	profile *Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Profile, error) {
	if s.profile == nil {
		return nil, nil
	}
	copied := *s.profile
	return &copied, nil
}

func (s *MemoryStore) Save(profile *Profile) error {
	copied := *profile
	s.profile = &copied
	return nil
}

func (s *MemoryStore) Clear() error {
	s.profile = nil
	return nil
}

// FileStore persists the profile as one JSON file per session key.
type FileStore struct {
	path string
}

func NewFileStore(dir string, sessionKey string) *FileStore {
	return &FileStore{path: filepath.Join(dir, sessionKey+".profile.json")}
}

func (s *FileStore) Load() (*Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed reading profile file with error=%w", err)
	}
	profile := Profile{}
	if err = json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed unmarshaling profile file with error=%w", err)
	}
	return &profile, nil
}

func (s *FileStore) Save(profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed marshaling profile with error=%w", err)
	}
	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed writing profile file with error=%w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed removing profile file with error=%w", err)
	}
	return nil
}
