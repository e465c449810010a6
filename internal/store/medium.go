// Package store persists the candidate, client, history and session
// documents on a durable local key-value medium. Every mutating call
// serializes the whole collection before returning, so a reload after a
// process restart always reflects the last completed write.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Medium is the underlying key-value document storage. Implementations must
// make Set durable before returning.
type Medium interface {
	// Get returns the serialized document for key, or ok=false when absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set durably replaces the document for key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the document for key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// FileMedium stores each document as a JSON file in a directory. Writes go
// through a temp file and rename so no partial document is ever observable.
type FileMedium struct {
	dir string
}

// NewFileMedium creates the data directory if needed and returns a medium
// rooted there.
func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &FileMedium{dir: dir}, nil
}

func (m *FileMedium) path(key string) string {
	return filepath.Join(m.dir, key+".json")
}

// Get implements Medium.
func (m *FileMedium) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(m.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set implements Medium.
func (m *FileMedium) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(m.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, m.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// Delete implements Medium.
func (m *FileMedium) Delete(_ context.Context, key string) error {
	if err := os.Remove(m.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// MemoryMedium is an in-memory Medium for tests and ephemeral sessions.
type MemoryMedium struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryMedium returns an empty in-memory medium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{docs: make(map[string][]byte)}
}

// Get implements Medium.
func (m *MemoryMedium) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

// Set implements Medium.
func (m *MemoryMedium) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.docs[key] = cp
	return nil
}

// Delete implements Medium.
func (m *MemoryMedium) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}
