package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"newsletter_digest/internal/domain"
)

type DigestStore struct {
	db *sqlx.DB
}

func NewDigestStore(db *sqlx.DB) *DigestStore {
	return &DigestStore{db: db}
}

type digestRow struct {
	ID        int64      `db:"id"`
	Week      int        `db:"week"`
	Year      int        `db:"year"`
	Payload   []byte     `db:"payload"`
	DocRef    string     `db:"doc_ref"`
	SentAt    *time.Time `db:"sent_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// LastSentAt returns the latest sent timestamp across digests, ignoring the
// record for exclude when it is set. It returns nil when there is none.
func (s *DigestStore) LastSentAt(ctx context.Context, exclude *domain.WeekKey) (*time.Time, error) {
	query := `SELECT MAX(sent_at) FROM digests`
	var args []any
	if exclude != nil {
		query += ` WHERE NOT (week = $1 AND year = $2)`
		args = append(args, exclude.Week, exclude.Year)
	}

	var last sql.NullTime
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &last, query, args...); err != nil {
		return nil, fmt.Errorf("last digest timestamp: %w", err)
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}

func (s *DigestStore) Exists(ctx context.Context, key domain.WeekKey) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &exists,
		`SELECT EXISTS (SELECT 1 FROM digests WHERE week = $1 AND year = $2)`, key.Week, key.Year)
	if err != nil {
		return false, fmt.Errorf("check digest %s: %w", key, err)
	}
	return exists, nil
}

func (s *DigestStore) Get(ctx context.Context, key domain.WeekKey) (*domain.DigestRecord, error) {
	var row digestRow
	query := `
		SELECT id, week, year, payload, doc_ref, sent_at, created_at
		FROM digests
		WHERE week = $1 AND year = $2`

	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, key.Week, key.Year); err != nil {
		return nil, notFound(err)
	}
	return row.toRecord()
}

// Commit upserts the digest for rec.Key. sent_at takes rec.SentAt, the upper
// bound of the window the digest covered, or the commit time when unset.
func (s *DigestStore) Commit(ctx context.Context, rec *domain.DigestRecord) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("encode digest payload: %w", err)
	}

	query := `
		INSERT INTO digests (week, year, payload, doc_ref, sent_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, clock_timestamp()))
		ON CONFLICT (week, year) DO UPDATE SET
			payload = EXCLUDED.payload,
			doc_ref = EXCLUDED.doc_ref,
			sent_at = EXCLUDED.sent_at,
			created_at = now()
		RETURNING id, sent_at, created_at`

	var sentAt time.Time
	err = GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		rec.Key.Week,
		rec.Key.Year,
		payload,
		rec.DocRef,
		rec.SentAt,
	).Scan(&rec.ID, &sentAt, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("commit digest %s: %w", rec.Key, err)
	}

	rec.SentAt = &sentAt
	return nil
}

func (r digestRow) toRecord() (*domain.DigestRecord, error) {
	rec := &domain.DigestRecord{
		ID:        r.ID,
		Key:       domain.WeekKey{Week: r.Week, Year: r.Year},
		DocRef:    r.DocRef,
		SentAt:    r.SentAt,
		CreatedAt: r.CreatedAt,
	}
	if err := json.Unmarshal(r.Payload, &rec.Payload); err != nil {
		return nil, fmt.Errorf("decode digest payload: %w", err)
	}
	return rec, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
