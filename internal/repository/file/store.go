// Package file persists the dataset as a single JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtroode/gradebook-server/internal/model"
)

var _ model.DatasetStore = (*Store)(nil)

// Store reads and atomically rewrites one JSON file.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path. The file is created
// lazily on the first Load.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage file path is required")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

func (s *Store) Load(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		empty := model.NewDataset()
		if err := s.write(empty); err != nil {
			return model.Dataset{}, fmt.Errorf("failed to initialize dataset file: %w", err)
		}
		return empty, nil
	}
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var dataset model.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode dataset file %s: %w", s.path, err)
	}
	dataset.Normalize()

	return dataset, nil
}

// Ping checks that the dataset path is usable without reading the document.
// A file that has not been created yet is fine.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat dataset file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("dataset path %s is a directory", s.path)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, dataset model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dataset.Normalize()
	return s.write(dataset)
}

// write replaces the file through a synced temp file and a rename, so a
// reader sees either the old document or the new one.
func (s *Store) write(dataset model.Dataset) (err error) {
	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace dataset file: %w", err)
	}

	syncDir(dir)
	return nil
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
