package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"newsletter_digest/internal/analysis"
	"newsletter_digest/internal/classifier"
	"newsletter_digest/internal/domain"
	"newsletter_digest/internal/pacing"
)

type IngestConfig struct {
	MinContentChars int
	LLMDelay        time.Duration
	Location        *time.Location
}

// IngestService runs the per-item pipeline over the unseen messages of one
// source: fetch, classify, extract, analyse, persist, expand ideas.
type IngestService struct {
	source     Source
	classifier *classifier.Classifier
	extractor  Extractor
	analyzer   Analyzer
	items      ItemStore
	analyses   AnalysisStore
	state      IngestStateStore
	txManager  TransactionManager
	workspace  Workspace
	publisher  Publisher
	logger     *slog.Logger
	config     IngestConfig

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewIngestService(
	source Source,
	cls *classifier.Classifier,
	extractor Extractor,
	analyzer Analyzer,
	items ItemStore,
	analyses AnalysisStore,
	state IngestStateStore,
	txManager TransactionManager,
	workspace Workspace,
	publisher Publisher,
	logger *slog.Logger,
	cfg IngestConfig,
) *IngestService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cls == nil {
		cls = classifier.New()
	}
	return &IngestService{
		source:     source,
		classifier: cls,
		extractor:  extractor,
		analyzer:   analyzer,
		items:      items,
		analyses:   analyses,
		state:      state,
		txManager:  txManager,
		workspace:  workspace,
		publisher:  publisher,
		logger:     logger.With("source", source.ID()),
		config:     cfg,
		now:        time.Now,
		sleep:      pacing.Sleep,
	}
}

// Run processes every message the source lists that the store does not know
// yet. A failing item is recorded in the stats and does not stop the run;
// listing, the known-id lookup, cancellation and the final state update do.
func (s *IngestService) Run(ctx context.Context) (*domain.IngestStats, error) {
	startTime := s.now()
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	logger.Info("starting ingest", "source_name", s.source.Name())

	ids, err := s.source.ListMessageIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	known, err := s.items.KnownIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup known ids: %w", err)
	}

	stats := &domain.IngestStats{
		RunID:    runID,
		SourceID: s.source.ID(),
		Listed:   len(ids),
	}

	var pending []string
	for _, id := range ids {
		if known[id] {
			stats.Skipped++
			continue
		}
		pending = append(pending, id)
	}

	logger.Info("messages to ingest", "listed", len(ids), "pending", len(pending))

	for i, id := range pending {
		itemLogger := logger.With("external_id", id, "position", fmt.Sprintf("%d/%d", i+1, len(pending)))
		name, err := s.processItem(ctx, runID, id, stats, itemLogger)
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return stats, fmt.Errorf("ingest interrupted: %w", ctx.Err())
		}
		itemLogger.Error("item failed", "error", err)
		stats.Failures = append(stats.Failures, domain.ItemFailure{ExternalID: id, Name: name, Err: err.Error()})
	}

	if err := s.updateState(ctx, stats); err != nil {
		return stats, fmt.Errorf("update ingest state: %w", err)
	}

	stats.Duration = s.now().Sub(startTime)

	logger.Info("ingest completed",
		"listed", stats.Listed,
		"skipped", stats.Skipped,
		"persisted", stats.Persisted,
		"analyzed", stats.Analyzed,
		"empty", stats.Empty,
		"ideas_published", stats.IdeasPublished,
		"failures", len(stats.Failures),
		"duration", stats.Duration,
	)
	for _, f := range stats.Failures {
		logger.Warn("failed item", "external_id", f.ExternalID, "name", f.Name, "error", f.Err)
	}

	return stats, nil
}

// processItem returns a display name for the failure list along with any error.
func (s *IngestService) processItem(ctx context.Context, runID, id string, stats *domain.IngestStats, logger *slog.Logger) (string, error) {
	raw, err := s.source.FetchMessage(ctx, id)
	if err != nil {
		return id, fmt.Errorf("fetch message: %w", err)
	}

	c := s.classifier.ClassifyItem(*raw)
	logger.Info("classified", "subject", raw.Subject, "type", c.Type, "platform", c.Platform)

	res := s.extractor.Extract(ctx, *raw, c)
	item := &domain.InboundItem{
		ExternalID:  raw.ExternalID,
		ContentType: c.Type,
		Origin:      raw.Sender,
		Title:       res.Title,
		RawText:     res.Content,
		URL:         c.URLPtr(),
		OriginAt:    raw.Date,
	}
	if item.Title == "" {
		item.Title = raw.Subject
	}

	if utf8.RuneCountInString(strings.TrimSpace(res.Content)) < s.config.MinContentChars {
		logger.Info("content too short, skipping analysis", "chars", utf8.RuneCountInString(res.Content))
		itemID, created, err := s.items.Record(ctx, item)
		if err != nil {
			return item.Title, fmt.Errorf("record item: %w", err)
		}
		if created {
			item.ID = itemID
			stats.Persisted++
			stats.Empty++
			s.publishItem(ctx, runID, item, nil, stats, logger)
		}
		return item.Title, nil
	}

	result, err := s.analyzer.AnalyzeItem(ctx, analysis.ItemInput{
		Title:   item.Title,
		Origin:  item.Origin,
		Type:    item.ContentType,
		Content: item.RawText,
	})
	if err != nil {
		return item.Title, fmt.Errorf("analyze: %w", err)
	}

	var created bool
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		itemID, isNew, err := s.items.Record(txCtx, item)
		if err != nil {
			return fmt.Errorf("record item: %w", err)
		}
		created = isNew
		if !isNew {
			return nil
		}
		item.ID = itemID
		if err := s.analyses.Record(txCtx, itemID, result); err != nil {
			return fmt.Errorf("record analysis: %w", err)
		}
		return nil
	})
	if err != nil {
		return item.Title, err
	}
	if !created {
		logger.Info("item already recorded", "title", item.Title)
		return item.Title, nil
	}

	stats.Persisted++
	stats.Analyzed++
	logger.Info("item analyzed", "title", item.Title, "signal", result.Signal, "ideas", len(result.Ideas))

	s.publishItem(ctx, runID, item, result, stats, logger)

	if err := s.sleep(ctx, s.config.LLMDelay); err != nil {
		return item.Title, err
	}

	return item.Title, s.expandIdeas(ctx, item, result, stats, logger)
}

func (s *IngestService) expandIdeas(ctx context.Context, item *domain.InboundItem, result *domain.AnalysisResult, stats *domain.IngestStats, logger *slog.Logger) error {
	if len(result.Ideas) == 0 || s.workspace == nil {
		return nil
	}

	src := analysis.IdeaSource{
		Label:     domain.SourceLabel(item.Origin, item.Title),
		Content:   item.RawText,
		WeekLabel: fmt.Sprintf("Semaine %d", domain.WeekOf(s.now().In(s.config.Location)).Week),
	}
	if item.URL != nil {
		src.URLs = []string{*item.URL}
	}

	var errs []error
	for _, idea := range result.Ideas {
		dossier, err := s.analyzer.ExpandIdea(ctx, idea, src)
		if err != nil {
			return fmt.Errorf("expand idea %q: %w", idea.Name, err)
		}

		url, err := s.workspace.PublishIdea(ctx, dossier)
		if err != nil {
			logger.Warn("publish idea failed", "idea", idea.Name, "error", err)
			errs = append(errs, fmt.Errorf("publish idea %q: %w", idea.Name, err))
		} else {
			stats.IdeasPublished++
			logger.Info("idea published", "idea", idea.Name, "url", url)
		}

		if err := s.sleep(ctx, s.config.LLMDelay); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}

func (s *IngestService) publishItem(ctx context.Context, runID string, item *domain.InboundItem, result *domain.AnalysisResult, stats *domain.IngestStats, logger *slog.Logger) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishItem(ctx, runID, item, result); err != nil {
		logger.Warn("publish item event failed", "error", err)
		return
	}
	stats.Published++
}

func (s *IngestService) updateState(ctx context.Context, stats *domain.IngestStats) error {
	state, err := s.state.Get(ctx, s.source.ID())
	if err != nil {
		return err
	}

	state.SourceID = s.source.ID()
	state.LastRunAt = s.now()
	state.TotalIngested += int64(stats.Persisted)

	return s.state.Update(ctx, state)
}
