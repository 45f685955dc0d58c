package object

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gradebook-server/internal/mocks"
	"github.com/dtroode/gradebook-server/internal/model"
)

func TestNewStore_RequiresKey(t *testing.T) {
	_, err := NewStore(mocks.NewStorage(t), "")
	require.Error(t, err)
}

func TestStore_Load_Existing(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("Exists", mock.Anything, "database.json").Return(true, nil).Once()
	storage.On("Download", mock.Anything, "database.json").
		Return(io.NopCloser(bytes.NewReader([]byte(`{"users":{"alice":{"passwordHash":"h","students":[]}}}`))), nil).Once()

	s, err := NewStore(storage, "database.json")
	require.NoError(t, err)

	d, err := s.Load(context.Background())
	require.NoError(t, err)
	_, ok := d.Account("alice")
	assert.True(t, ok)
}

func TestStore_Load_MissingInitializes(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("Exists", mock.Anything, "database.json").Return(false, nil).Once()
	storage.On("Upload", mock.Anything, "database.json", mock.Anything, int64(len(`{"users":{}}`))).
		Run(func(args mock.Arguments) {
			body, err := io.ReadAll(args.Get(2).(io.Reader))
			require.NoError(t, err)
			assert.JSONEq(t, `{"users":{}}`, string(body))
		}).
		Return(nil).Once()

	s, err := NewStore(storage, "database.json")
	require.NoError(t, err)

	d, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.Users)
}

func TestStore_Load_Errors(t *testing.T) {
	t.Run("stat fails", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, "k").Return(false, errors.New("dns")).Once()

		s, _ := NewStore(storage, "k")
		_, err := s.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check dataset object")
	})

	t.Run("download fails", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, "k").Return(true, nil).Once()
		storage.On("Download", mock.Anything, "k").Return(nil, errors.New("timeout")).Once()

		s, _ := NewStore(storage, "k")
		_, err := s.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to download dataset")
	})

	t.Run("initialize fails", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, "k").Return(false, nil).Once()
		storage.On("Upload", mock.Anything, "k", mock.Anything, mock.Anything).Return(errors.New("denied")).Once()

		s, _ := NewStore(storage, "k")
		_, err := s.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize dataset object")
	})

	t.Run("corrupt object", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, "k").Return(true, nil).Once()
		storage.On("Download", mock.Anything, "k").Return(io.NopCloser(bytes.NewReader([]byte("{"))), nil).Once()

		s, _ := NewStore(storage, "k")
		_, err := s.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode dataset")
	})
}

func TestStore_Save(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("Upload", mock.Anything, "k", mock.Anything, mock.AnythingOfType("int64")).Return(errors.New("quota")).Once()

	s, _ := NewStore(storage, "k")
	err := s.Save(context.Background(), model.NewDataset())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload dataset")
}

func TestStore_Ping(t *testing.T) {
	t.Run("missing object is healthy", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, "k").Return(false, nil).Once()

		s, _ := NewStore(storage, "k")
		assert.NoError(t, s.Ping(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		storage.On("Exists", mock.Anything, "k").Return(false, errors.New("connection refused")).Once()

		s, _ := NewStore(storage, "k")
		err := s.Ping(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reach object storage")
	})
}
