package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"newsletter_digest/internal/analysis"
	"newsletter_digest/internal/classifier"
	"newsletter_digest/internal/domain"
	"newsletter_digest/internal/extract"
)

type ItemStore interface {
	KnownIDs(ctx context.Context, externalIDs []string) (map[string]bool, error)
	Record(ctx context.Context, item *domain.InboundItem) (int64, bool, error)
	Snapshot(ctx context.Context) (time.Time, error)
	QueryWindow(ctx context.Context, since, until *time.Time) ([]domain.WindowEntry, error)
}

type AnalysisStore interface {
	Record(ctx context.Context, itemID int64, result *domain.AnalysisResult) error
}

type DigestStore interface {
	LastSentAt(ctx context.Context, exclude *domain.WeekKey) (*time.Time, error)
	Exists(ctx context.Context, key domain.WeekKey) (bool, error)
	Get(ctx context.Context, key domain.WeekKey) (*domain.DigestRecord, error)
	Commit(ctx context.Context, rec *domain.DigestRecord) error
}

type IngestStateStore interface {
	Get(ctx context.Context, sourceID string) (*domain.IngestState, error)
	Update(ctx context.Context, state *domain.IngestState) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Source interface {
	ID() string
	Name() string
	ListMessageIDs(ctx context.Context) ([]string, error)
	FetchMessage(ctx context.Context, id string) (*domain.RawItem, error)
}

type Extractor interface {
	Extract(ctx context.Context, item domain.RawItem, c classifier.Classification) extract.Result
}

type Analyzer interface {
	AnalyzeItem(ctx context.Context, in analysis.ItemInput) (*domain.AnalysisResult, error)
	ExpandIdea(ctx context.Context, idea domain.Idea, src analysis.IdeaSource) (domain.IdeaDossier, error)
	SynthesizeDigest(ctx context.Context, entries []domain.WindowEntry) (*domain.DigestPayload, error)
}

// IdeaStore reads the ideas persisted with item analyses.
type IdeaStore interface {
	ListIdeas(ctx context.Context) ([]domain.StoredIdea, error)
}

type IdeaAnalyzer interface {
	ExpandIdea(ctx context.Context, idea domain.Idea, src analysis.IdeaSource) (domain.IdeaDossier, error)
	ClassifyIdea(ctx context.Context, title, content string) (*domain.IdeaClassification, error)
}

// IdeaWorkspace edits pages that already exist in the ideas database.
type IdeaWorkspace interface {
	ListIdeaPages(ctx context.Context) ([]domain.IdeaPage, error)
	PageText(ctx context.Context, pageID string) (string, error)
	RewriteIdea(ctx context.Context, pageID string, dossier domain.IdeaDossier) error
	ClassifyIdea(ctx context.Context, pageID string, c domain.IdeaClassification) error
}

type Workspace interface {
	PublishIdea(ctx context.Context, dossier domain.IdeaDossier) (string, error)
	PublishDigest(ctx context.Context, key domain.WeekKey, payload domain.DigestPayload) (string, error)
	RepublishDigest(ctx context.Context, docRef string, payload domain.DigestPayload) error
}

type Mailer interface {
	SendDigest(ctx context.Context, rec *domain.DigestRecord) error
}

type Publisher interface {
	PublishItem(ctx context.Context, runID string, item *domain.InboundItem, analysis *domain.AnalysisResult) error
	PublishDigest(ctx context.Context, rec *domain.DigestRecord, entries int, replaced bool) error
	Close() error
}
