package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"newsletter_digest/internal/domain"
)

type AnalysisStore struct {
	db *sqlx.DB
}

func NewAnalysisStore(db *sqlx.DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

type analysisRow struct {
	ID         int64     `db:"id"`
	ItemID     int64     `db:"item_id"`
	Takeaways  []byte    `db:"takeaways"`
	Advisory   string    `db:"advisory"`
	Ideas      []byte    `db:"ideas"`
	Signal     string    `db:"signal"`
	Topics     []byte    `db:"topics"`
	AnalyzedAt time.Time `db:"analyzed_at"`
}

// Record stores the analysis of itemID. A second analysis for the same item is ignored.
func (s *AnalysisStore) Record(ctx context.Context, itemID int64, result *domain.AnalysisResult) error {
	result.Normalize()

	takeaways, err := json.Marshal(result.Takeaways)
	if err != nil {
		return fmt.Errorf("encode takeaways: %w", err)
	}
	ideas, err := json.Marshal(result.Ideas)
	if err != nil {
		return fmt.Errorf("encode ideas: %w", err)
	}
	topics, err := json.Marshal(result.Topics)
	if err != nil {
		return fmt.Errorf("encode topics: %w", err)
	}

	query := `
		INSERT INTO analyses (item_id, takeaways, advisory, ideas, signal, topics)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (item_id) DO NOTHING`

	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, query,
		itemID,
		takeaways,
		result.Advisory,
		ideas,
		string(result.Signal),
		topics,
	)
	if err != nil {
		return fmt.Errorf("insert analysis for item %d: %w", itemID, err)
	}

	result.ItemID = itemID
	return nil
}

func (s *AnalysisStore) GetByItemID(ctx context.Context, itemID int64) (*domain.AnalysisResult, error) {
	var row analysisRow
	query := `
		SELECT id, item_id, takeaways, advisory, ideas, signal, topics, analyzed_at
		FROM analyses
		WHERE item_id = $1`

	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, itemID); err != nil {
		return nil, notFound(err)
	}

	a, err := decodeAnalysis(row)
	if err != nil {
		return nil, err
	}
	a.AnalyzedAt = row.AnalyzedAt
	return a, nil
}

func decodeAnalysis(row analysisRow) (*domain.AnalysisResult, error) {
	a := &domain.AnalysisResult{
		ID:       row.ID,
		ItemID:   row.ItemID,
		Advisory: row.Advisory,
		Signal:   domain.ParseSignal(row.Signal),
	}
	if err := unmarshalList(row.Takeaways, &a.Takeaways); err != nil {
		return nil, fmt.Errorf("decode takeaways: %w", err)
	}
	if err := unmarshalList(row.Ideas, &a.Ideas); err != nil {
		return nil, fmt.Errorf("decode ideas: %w", err)
	}
	if err := unmarshalList(row.Topics, &a.Topics); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	return a, nil
}

func unmarshalList(data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

type ideaRow struct {
	Ideas   []byte  `db:"ideas"`
	Origin  string  `db:"origin"`
	Title   string  `db:"title"`
	RawText string  `db:"raw_text"`
	URL     *string `db:"url"`
}

// ListIdeas returns every persisted idea with the item it came from, oldest
// analysis first.
func (s *AnalysisStore) ListIdeas(ctx context.Context) ([]domain.StoredIdea, error) {
	query, args, err := psql.
		Select("a.ideas", "i.origin", "i.title", "i.raw_text", "i.url").
		From("analyses a").
		Join("items i ON i.id = a.item_id").
		Where("jsonb_array_length(a.ideas) > 0").
		OrderBy("a.analyzed_at ASC", "a.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ideas query: %w", err)
	}

	var rows []ideaRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}

	var out []domain.StoredIdea
	for _, r := range rows {
		var ideas []domain.Idea
		if err := unmarshalList(r.Ideas, &ideas); err != nil {
			return nil, fmt.Errorf("decode ideas of %q: %w", r.Title, err)
		}
		for _, idea := range ideas {
			out = append(out, domain.StoredIdea{
				Idea:    idea,
				Origin:  r.Origin,
				Title:   r.Title,
				RawText: r.RawText,
				URL:     r.URL,
			})
		}
	}
	return out, nil
}
