// Package bolt persists the dataset in an embedded BoltDB file.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/dtroode/gradebook-server/internal/model"
)

const (
	datasetBucket = "gradebook"
	datasetKey    = "dataset"
)

var _ model.DatasetStore = (*Store)(nil)

// Store provides a BoltDB-backed dataset store. The document lives under a
// single key and every Save is one write transaction.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the stored dataset, writing an empty one first if the key has
// never been set.
func (s *Store) Load(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return model.Dataset{}, err
	}
	if s == nil || s.db == nil {
		return model.Dataset{}, errors.New("storage is not configured")
	}

	var dataset model.Dataset
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(datasetBucket))
		if bucket == nil {
			return errors.New("dataset bucket is missing")
		}

		payload := bucket.Get([]byte(datasetKey))
		if payload == nil {
			dataset = model.NewDataset()
			return putDataset(bucket, dataset)
		}
		if err := json.Unmarshal(payload, &dataset); err != nil {
			return fmt.Errorf("unmarshal dataset: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Dataset{}, err
	}
	dataset.Normalize()

	return dataset, nil
}

// Save replaces the stored dataset.
func (s *Store) Save(ctx context.Context, dataset model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return errors.New("storage is not configured")
	}
	dataset.Normalize()

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(datasetBucket))
		if bucket == nil {
			return errors.New("dataset bucket is missing")
		}
		return putDataset(bucket, dataset)
	})
}

// Ping opens a read transaction and checks the bucket is present.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return errors.New("storage is not configured")
	}

	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(datasetBucket)) == nil {
			return errors.New("dataset bucket is missing")
		}
		return nil
	})
}

func (s *Store) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(datasetBucket)); err != nil {
			return fmt.Errorf("create dataset bucket: %w", err)
		}
		return nil
	})
}

func putDataset(bucket *bbolt.Bucket, dataset model.Dataset) error {
	payload, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	return bucket.Put([]byte(datasetKey), payload)
}
