// Package object keeps the dataset as a single JSON object in an object store.
package object

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dtroode/gradebook-server/internal/model"
)

var _ model.DatasetStore = (*Store)(nil)

// Store snapshots the dataset to one key of a model.Storage.
type Store struct {
	storage model.Storage
	key     string
}

func NewStore(storage model.Storage, key string) (*Store, error) {
	if key == "" {
		return nil, errors.New("object key is required")
	}
	return &Store{storage: storage, key: key}, nil
}

// Load downloads the dataset, uploading an empty one first if the object has
// never been written. The object store only reports a missing key once the
// body is read, so presence is checked up front.
func (s *Store) Load(ctx context.Context) (model.Dataset, error) {
	exists, err := s.storage.Exists(ctx, s.key)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to check dataset object: %w", err)
	}
	if !exists {
		empty := model.NewDataset()
		if err := s.Save(ctx, empty); err != nil {
			return model.Dataset{}, fmt.Errorf("failed to initialize dataset object: %w", err)
		}
		return empty, nil
	}

	rc, err := s.storage.Download(ctx, s.key)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to download dataset: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read dataset: %w", err)
	}

	var dataset model.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode dataset: %w", err)
	}
	dataset.Normalize()

	return dataset, nil
}

func (s *Store) Save(ctx context.Context, dataset model.Dataset) error {
	dataset.Normalize()
	data, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	if err := s.storage.Upload(ctx, s.key, bytes.NewReader(data), int64(len(data))); err != nil {
		return fmt.Errorf("failed to upload dataset: %w", err)
	}
	return nil
}

// Ping checks that the bucket answers. A missing object is healthy.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.storage.Exists(ctx, s.key); err != nil {
		return fmt.Errorf("failed to reach object storage: %w", err)
	}
	return nil
}
