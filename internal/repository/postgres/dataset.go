package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dtroode/gradebook-server/internal/model"
)

// datasetID is the primary key of the single row holding the document.
const datasetID = 1

var _ model.DatasetStore = (*DatasetRepository)(nil)

// DatasetRepository keeps the whole dataset as one JSONB row.
type DatasetRepository struct {
	db *sql.DB
}

func NewDatasetRepository(db *sql.DB) *DatasetRepository {
	return &DatasetRepository{
		db: db,
	}
}

func (r *DatasetRepository) Load(ctx context.Context) (model.Dataset, error) {
	var document []byte
	query := `SELECT document FROM datasets WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, datasetID).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return r.initialize(ctx)
	}
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to select dataset: %w", err)
	}

	var dataset model.Dataset
	if err := json.Unmarshal(document, &dataset); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode dataset: %w", err)
	}
	dataset.Normalize()

	return dataset, nil
}

func (r *DatasetRepository) Save(ctx context.Context, dataset model.Dataset) error {
	dataset.Normalize()
	document, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	query := `INSERT INTO datasets (id, document, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, datasetID, document); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	return nil
}

// Ping checks the database connection.
func (r *DatasetRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

func (r *DatasetRepository) initialize(ctx context.Context) (model.Dataset, error) {
	empty := model.NewDataset()
	document, err := json.Marshal(empty)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to encode dataset: %w", err)
	}

	query := `INSERT INTO datasets (id, document) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, datasetID, document); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to initialize dataset: %w", err)
	}

	return empty, nil
}
