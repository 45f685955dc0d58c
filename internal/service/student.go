package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

type Student struct {
	store  model.DatasetRepository
	logger *logger.Logger
	now    func() time.Time
}

func NewStudent(store model.DatasetRepository, logger *logger.Logger) *Student {
	return &Student{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the account's students in insertion order.
func (s *Student) List(ctx context.Context, username string) ([]model.Student, error) {
	var students []model.Student
	err := s.store.View(ctx, func(d model.Dataset) error {
		account, ok := d.Account(username)
		if !ok {
			return model.ErrAccountNotFound
		}
		students = account.Students
		return nil
	})
	if err != nil {
		return nil, s.wrap("list students", username, err)
	}

	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// Add appends a student with every score unset.
func (s *Student) Add(ctx context.Context, username, name string) (model.Student, error) {
	if strings.TrimSpace(name) == "" {
		return model.Student{}, fmt.Errorf("%w: student name is required", model.ErrInvalidInput)
	}

	var created model.Student
	err := s.store.Update(ctx, func(d *model.Dataset) error {
		account, ok := d.Account(username)
		if !ok {
			return model.ErrAccountNotFound
		}
		created = model.Student{
			ID:   account.NextStudentID(s.now().UnixMilli()),
			Name: name,
		}
		account.Students = append(account.Students, created)
		return nil
	})
	if err != nil {
		return model.Student{}, s.wrap("add student", username, err)
	}

	s.logger.Info("Student service: student added",
		"username", username,
		"student_id", created.ID)

	return created, nil
}

// UpdateScores merges patch over the student's scores.
func (s *Student) UpdateScores(ctx context.Context, username string, id int64, patch model.ScoresPatch) (model.Student, error) {
	if err := patch.Validate(); err != nil {
		return model.Student{}, fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
	}

	var updated model.Student
	err := s.store.Update(ctx, func(d *model.Dataset) error {
		account, ok := d.Account(username)
		if !ok {
			return model.ErrAccountNotFound
		}
		idx := account.FindStudent(id)
		if idx < 0 {
			return model.ErrStudentNotFound
		}
		account.Students[idx].Scores.Apply(patch)
		updated = account.Students[idx].Clone()
		return nil
	})
	if err != nil {
		return model.Student{}, s.wrap("update scores", username, err, "student_id", id)
	}

	s.logger.Info("Student service: scores updated",
		"username", username,
		"student_id", id,
		"fields", len(patch))

	return updated, nil
}

// Delete removes the student with the given id.
func (s *Student) Delete(ctx context.Context, username string, id int64) error {
	err := s.store.Update(ctx, func(d *model.Dataset) error {
		account, ok := d.Account(username)
		if !ok {
			return model.ErrAccountNotFound
		}
		if !account.RemoveStudent(id) {
			return model.ErrStudentNotFound
		}
		return nil
	})
	if err != nil {
		return s.wrap("delete student", username, err, "student_id", id)
	}

	s.logger.Info("Student service: student deleted",
		"username", username,
		"student_id", id)

	return nil
}

// wrap logs and annotates storage failures; domain errors pass through as-is.
func (s *Student) wrap(op, username string, err error, args ...any) error {
	if errors.Is(err, model.ErrAccountNotFound) || errors.Is(err, model.ErrStudentNotFound) {
		s.logger.Info("Student service: "+op+" rejected",
			append([]any{"username", username, "reason", err.Error()}, args...)...)
		return err
	}
	s.logger.Error("Student service: failed to "+op,
		append([]any{"username", username, "error", err.Error()}, args...)...)
	return fmt.Errorf("failed to %s: %w", op, err)
}
