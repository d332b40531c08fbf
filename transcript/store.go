package transcript

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore stores transcripts as files
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// StoreConfig holds configuration for transcript storage
type StoreConfig struct {
	BaseDir string
}

// NewFileStore creates a file-based transcript store
func NewFileStore(config StoreConfig) (*FileStore, error) {
	dir := filepath.Join(config.BaseDir, "transcripts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &FileStore{baseDir: config.BaseDir}, nil
}

// Save persists a record. Saving over an existing id is refused.
func (s *FileStore) Save(rec *Record) error {
	if rec.History == "" {
		return ErrEmptyHistory
	}

	dir, err := recordDir(s.baseDir, rec.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(dir); err == nil {
		return ErrRecordAlreadyExists
	}

	if err := rec.Save(s.baseDir); err != nil {
		return err
	}
	return s.writeMetadata(rec.ID, &rec.Metadata)
}

// Load retrieves a complete record
func (s *FileStore) Load(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return LoadRecord(s.baseDir, id)
}

// LoadMetadata retrieves just the metadata
func (s *FileStore) LoadMetadata(id string) (*Meta, error) {
	dir, err := recordDir(s.baseDir, id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// List returns metadata for transcripts matching filter, newest first
func (s *FileStore) List(filter ListFilter) ([]Meta, error) {
	dir := filepath.Join(s.baseDir, "transcripts")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var results []Meta

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.LoadMetadata(entry.Name())
		if err != nil {
			continue
		}
		if !filter.matches(meta) {
			continue
		}

		results = append(results, *meta)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].StartedAt.After(results[j].StartedAt)
	})

	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}

	return results, nil
}

// Delete removes a transcript
func (s *FileStore) Delete(id string) error {
	dir, err := recordDir(s.baseDir, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return ErrRecordNotFound
	}
	return os.RemoveAll(dir)
}

func (s *FileStore) writeMetadata(id string, meta *Meta) error {
	path := filepath.Join(s.baseDir, "transcripts", id, "metadata.json")
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// BaseDir returns the base directory for the store
func (s *FileStore) BaseDir() string {
	return s.baseDir
}
