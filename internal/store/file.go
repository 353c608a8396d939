package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// File stores every key in one JSON object on disk. Writes go to a temp file
// that is renamed over the original.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (f *File) Put(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		// an unreadable file is replaced rather than blocking every write
		values = map[string]json.RawMessage{}
	}
	if !json.Valid(value) {
		return fmt.Errorf("file store: value for %q is not JSON", key)
	}
	values[key] = json.RawMessage(value)
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Close() error { return nil }

func (f *File) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	values := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return values, nil
}
