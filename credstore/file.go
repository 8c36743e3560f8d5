package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File persists credentials as a single JSON document on disk, written via a
// temp file and rename so readers never observe a torn write. This is the
// default store for desktop and CLI compositions of the front end.
type File struct {
	path string
}

type fileRecord struct {
	Access   string          `json:"access_token"`
	Refresh  string          `json:"refresh_token"`
	Identity json.RawMessage `json:"user,omitempty"`
}

// NewFile creates a file-backed store at path. The file is created on first
// Save with 0600 permissions.
func NewFile(path string) *File {
	return &File{path: path}
}

// Save implements Store.
func (f *File) Save(_ context.Context, pair Pair, identity []byte) error {
	rec := fileRecord{
		Access:   pair.Access,
		Refresh:  pair.Refresh,
		Identity: json.RawMessage(identity),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("credstore: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".creds-*")
	if err != nil {
		return fmt.Errorf("credstore: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("credstore: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("credstore: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credstore: close: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credstore: rename: %w", err)
	}
	return nil
}

// Load implements Store. A missing file is absence, not an error. A corrupt
// file is reported so the caller can decide to clear it.
func (f *File) Load(_ context.Context) (Pair, []byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Pair{}, nil, nil
	}
	if err != nil {
		return Pair{}, nil, fmt.Errorf("credstore: read: %w", err)
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return Pair{}, nil, fmt.Errorf("credstore: decode: %w", err)
	}
	return Pair{Access: rec.Access, Refresh: rec.Refresh}, []byte(rec.Identity), nil
}

// Clear implements Store. Removing an already-absent file is a no-op.
func (f *File) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credstore: clear: %w", err)
	}
	return nil
}
