// Package memory keeps the dataset as an encoded document in process memory.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dtroode/gradebook-server/internal/model"
)

var _ model.DatasetStore = (*Store)(nil)

// Store holds the last saved document. Values are re-decoded on every Load so
// callers never share state with each other or with the store.
type Store struct {
	mu       sync.Mutex
	document []byte
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.document == nil {
		empty := model.NewDataset()
		doc, err := json.Marshal(empty)
		if err != nil {
			return model.Dataset{}, fmt.Errorf("failed to encode dataset: %w", err)
		}
		s.document = doc
	}

	var dataset model.Dataset
	if err := json.Unmarshal(s.document, &dataset); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode dataset: %w", err)
	}
	dataset.Normalize()

	return dataset, nil
}

func (s *Store) Save(ctx context.Context, dataset model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dataset.Normalize()
	doc, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	s.mu.Lock()
	s.document = doc
	s.mu.Unlock()

	return nil
}

// Ping always succeeds while ctx is live.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Document returns a copy of the raw persisted bytes.
func (s *Store) Document() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.document...)
}
