// Package repository serializes access to a whole-dataset backend.
//
// Every backend persists the entire document on each save, so two concurrent
// load-mutate-save cycles would otherwise lose one of the writes. Store runs
// each cycle as a critical section guarded by a single process-wide mutex.
// Running several server processes against the same backend reopens that race.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

// Store is the sole gateway to the persisted dataset.
type Store struct {
	mu      sync.Mutex
	backend model.DatasetStore
	logger  *logger.Logger
}

func NewStore(backend model.DatasetStore, logger *logger.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// View loads the dataset and hands it to fn without saving.
func (s *Store) View(ctx context.Context, fn func(model.Dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dataset, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Error("Store: failed to load dataset", "error", err.Error())
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	dataset.Normalize()

	return fn(dataset)
}

// Update runs one load-mutate-save cycle. If fn returns an error nothing is
// saved and the error is returned unchanged.
func (s *Store) Update(ctx context.Context, fn func(*model.Dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dataset, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Error("Store: failed to load dataset", "error", err.Error())
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	dataset.Normalize()

	if err := fn(&dataset); err != nil {
		return err
	}

	// once loaded, the cycle runs to completion even if the caller goes away
	if err := s.backend.Save(context.WithoutCancel(ctx), dataset); err != nil {
		s.logger.Error("Store: failed to save dataset", "error", err.Error())
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	return nil
}

// pinger is implemented by backends that can report their health without
// loading the dataset.
type pinger interface {
	Ping(ctx context.Context) error
}

// Ping verifies that the backend is reachable. Backends with their own probe
// are checked without taking the lock; others fall back to a locked load.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.backend.(pinger); ok {
		return p.Ping(ctx)
	}
	return s.View(ctx, func(model.Dataset) error { return nil })
}
