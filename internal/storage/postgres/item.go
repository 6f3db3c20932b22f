package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"newsletter_digest/internal/domain"
)

const signalRank = `CASE a.signal WHEN 'strong' THEN 0 WHEN 'medium' THEN 1 WHEN 'weak' THEN 2 ELSE 3 END`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ItemStore struct {
	db *sqlx.DB
}

func NewItemStore(db *sqlx.DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) IsKnown(ctx context.Context, externalID string) (bool, error) {
	var known bool
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &known,
		`SELECT EXISTS (SELECT 1 FROM items WHERE external_id = $1)`, externalID)
	if err != nil {
		return false, fmt.Errorf("check item %s: %w", externalID, err)
	}
	return known, nil
}

func (s *ItemStore) KnownIDs(ctx context.Context, externalIDs []string) (map[string]bool, error) {
	known := make(map[string]bool)
	if len(externalIDs) == 0 {
		return known, nil
	}

	var ids []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids,
		`SELECT external_id FROM items WHERE external_id = ANY($1)`, pq.Array(externalIDs))
	if err != nil {
		return nil, fmt.Errorf("lookup known items: %w", err)
	}

	for _, id := range ids {
		known[id] = true
	}
	return known, nil
}

// Record inserts item unless its external id is already stored. It returns
// the surrogate id and whether a row was created.
func (s *ItemStore) Record(ctx context.Context, item *domain.InboundItem) (int64, bool, error) {
	exec := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO items (
			external_id, content_type, origin, title, raw_text, url, origin_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING id, ingested_at`

	var originAt *time.Time
	if !item.OriginAt.IsZero() {
		originAt = &item.OriginAt
	}

	err := exec.QueryRowxContext(ctx, query,
		item.ExternalID,
		item.ContentType,
		item.Origin,
		item.Title,
		item.RawText,
		item.URL,
		originAt,
	).Scan(&item.ID, &item.IngestedAt)

	if errors.Is(err, sql.ErrNoRows) {
		err = exec.QueryRowxContext(ctx,
			`SELECT id, ingested_at FROM items WHERE external_id = $1`,
			item.ExternalID,
		).Scan(&item.ID, &item.IngestedAt)
		if err != nil {
			return 0, false, fmt.Errorf("load existing item %s: %w", item.ExternalID, err)
		}
		return item.ID, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("insert item %s: %w", item.ExternalID, err)
	}

	return item.ID, true, nil
}

type windowRow struct {
	ID          int64              `db:"id"`
	ExternalID  string             `db:"external_id"`
	ContentType domain.ContentType `db:"content_type"`
	Origin      string             `db:"origin"`
	Title       string             `db:"title"`
	RawText     string             `db:"raw_text"`
	URL         *string            `db:"url"`
	OriginAt    *time.Time         `db:"origin_at"`
	IngestedAt  time.Time          `db:"ingested_at"`

	AnalysisID *int64     `db:"analysis_id"`
	Takeaways  []byte     `db:"takeaways"`
	Advisory   *string    `db:"advisory"`
	Ideas      []byte     `db:"ideas"`
	Signal     *string    `db:"signal"`
	Topics     []byte     `db:"topics"`
	AnalyzedAt *time.Time `db:"analyzed_at"`
}

// Snapshot returns the database clock once every in-flight item insert has
// committed. ingested_at defaults to clock_timestamp(), so rows inserted
// afterwards carry a later time and a window bounded by the snapshot cannot
// miss a row that becomes visible later.
func (s *ItemStore) Snapshot(ctx context.Context) (time.Time, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `LOCK TABLE items IN SHARE MODE`); err != nil {
		return time.Time{}, fmt.Errorf("lock items: %w", err)
	}

	var at time.Time
	if err := tx.GetContext(ctx, &at, `SELECT clock_timestamp()`); err != nil {
		return time.Time{}, fmt.Errorf("read clock: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return time.Time{}, fmt.Errorf("commit snapshot: %w", err)
	}
	return at, nil
}

// QueryWindow returns items ingested strictly after since and at or before
// until (either bound is open when nil) with their analysis, strongest signal
// first, then in ingestion order. Items without analysis come last.
func (s *ItemStore) QueryWindow(ctx context.Context, since, until *time.Time) ([]domain.WindowEntry, error) {
	q := psql.
		Select(
			"i.id", "i.external_id", "i.content_type", "i.origin", "i.title", "i.raw_text",
			"i.url", "i.origin_at", "i.ingested_at",
			"a.id AS analysis_id", "a.takeaways", "a.advisory", "a.ideas", "a.signal",
			"a.topics", "a.analyzed_at",
		).
		From("items i").
		LeftJoin("analyses a ON a.item_id = i.id").
		OrderBy(signalRank, "i.ingested_at ASC", "i.id ASC")

	if since != nil {
		q = q.Where(sq.Gt{"i.ingested_at": *since})
	}
	if until != nil {
		q = q.Where(sq.LtOrEq{"i.ingested_at": *until})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build window query: %w", err)
	}

	var rows []windowRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query window: %w", err)
	}

	entries := make([]domain.WindowEntry, 0, len(rows))
	for _, r := range rows {
		entry, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r windowRow) toEntry() (domain.WindowEntry, error) {
	item := domain.InboundItem{
		ID:          r.ID,
		ExternalID:  r.ExternalID,
		ContentType: r.ContentType,
		Origin:      r.Origin,
		Title:       r.Title,
		RawText:     r.RawText,
		URL:         r.URL,
		IngestedAt:  r.IngestedAt,
	}
	if r.OriginAt != nil {
		item.OriginAt = *r.OriginAt
	}

	entry := domain.WindowEntry{Item: item}
	if r.AnalysisID == nil {
		return entry, nil
	}

	a, err := decodeAnalysis(analysisRow{
		ID:        *r.AnalysisID,
		ItemID:    r.ID,
		Takeaways: r.Takeaways,
		Advisory:  deref(r.Advisory),
		Ideas:     r.Ideas,
		Signal:    deref(r.Signal),
		Topics:    r.Topics,
	})
	if err != nil {
		return domain.WindowEntry{}, fmt.Errorf("decode analysis of item %d: %w", r.ID, err)
	}
	if r.AnalyzedAt != nil {
		a.AnalyzedAt = *r.AnalyzedAt
	}
	entry.Analysis = a
	return entry, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
