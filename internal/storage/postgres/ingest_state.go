package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"newsletter_digest/internal/domain"
)

type IngestStateStore struct {
	db *sqlx.DB
}

func NewIngestStateStore(db *sqlx.DB) *IngestStateStore {
	return &IngestStateStore{db: db}
}

func (s *IngestStateStore) Get(ctx context.Context, sourceID string) (*domain.IngestState, error) {
	var state domain.IngestState
	query := `
		SELECT id, source_id, last_run_at, total_ingested
		FROM ingest_state
		WHERE source_id = $1`

	err := s.db.GetContext(ctx, &state, query, sourceID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.IngestState{SourceID: sourceID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *IngestStateStore) Update(ctx context.Context, state *domain.IngestState) error {
	query := `
		INSERT INTO ingest_state (source_id, last_run_at, total_ingested)
		VALUES ($1, $2, $3)
		ON CONFLICT (source_id) DO UPDATE SET
			last_run_at = EXCLUDED.last_run_at,
			total_ingested = EXCLUDED.total_ingested`

	_, err := s.db.ExecContext(ctx, query,
		state.SourceID,
		state.LastRunAt,
		state.TotalIngested,
	)
	return err
}
