package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"newsletter_digest/internal/analysis"
	"newsletter_digest/internal/domain"
	"newsletter_digest/internal/pacing"
)

type IdeaConfig struct {
	// PageDelay separates two regenerated pages.
	PageDelay time.Duration
	// ClassifyDelay separates two classified pages.
	ClassifyDelay time.Duration
	// MinContentChars is the shortest page text worth classifying.
	MinContentChars int
	// ContextChars bounds page text used as source context.
	ContextChars int
}

// IdeaService maintains pages that already exist in the ideas database:
// it rebuilds their dossier and classifies pages written by hand.
type IdeaService struct {
	ideas     IdeaStore
	analyzer  IdeaAnalyzer
	workspace IdeaWorkspace
	logger    *slog.Logger
	config    IdeaConfig
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewIdeaService(
	ideas IdeaStore,
	analyzer IdeaAnalyzer,
	workspace IdeaWorkspace,
	logger *slog.Logger,
	cfg IdeaConfig,
) *IdeaService {
	if cfg.MinContentChars <= 0 {
		cfg.MinContentChars = 20
	}
	if cfg.ContextChars <= 0 {
		cfg.ContextChars = 3000
	}
	return &IdeaService{
		ideas:     ideas,
		analyzer:  analyzer,
		workspace: workspace,
		logger:    logger.With("component", "ideas"),
		config:    cfg,
		now:       time.Now,
		sleep:     pacing.Sleep,
	}
}

type regeneration struct {
	page   domain.IdeaPage
	idea   domain.Idea
	source analysis.IdeaSource
	stored bool
}

// Regenerate rebuilds every idea page: board debate, competitive scan and
// deck are expanded again, the page body is replaced and the member score
// columns refreshed. Pages are matched to persisted ideas by title; a page
// with no match is expanded from its own properties and text. With dryRun
// the plan is logged and nothing is written.
func (s *IdeaService) Regenerate(ctx context.Context, dryRun bool) (*domain.IdeaRunStats, error) {
	start := s.now()
	stats := &domain.IdeaRunStats{}

	stored, err := s.ideas.ListIdeas(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored ideas: %w", err)
	}
	byName := make(map[string]domain.StoredIdea, len(stored))
	for _, st := range stored {
		byName[st.Idea.Name] = st
	}

	pages, err := s.workspace.ListIdeaPages(ctx)
	if err != nil {
		return nil, err
	}
	stats.Pages = len(pages)

	plan := make([]regeneration, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p.Title) == "" {
			stats.Skipped++
			continue
		}
		plan = append(plan, s.plan(p, byName))
	}
	stats.Planned = len(plan)

	for _, r := range plan {
		if r.stored {
			stats.FromStore++
		}
		s.logger.Info("planned regeneration", "page_id", r.page.ID, "title", r.page.Title, "from_store", r.stored)
	}
	if dryRun {
		stats.Duration = s.now().Sub(start)
		return stats, nil
	}

	for i, r := range plan {
		if i > 0 {
			if err := s.sleep(ctx, s.config.PageDelay); err != nil {
				return stats, fmt.Errorf("regeneration interrupted: %w", err)
			}
		}
		logger := s.logger.With("page_id", r.page.ID, "title", r.page.Title, "position", fmt.Sprintf("%d/%d", i+1, len(plan)))

		if err := s.regenerate(ctx, r, logger); err != nil {
			if ctx.Err() != nil {
				return stats, fmt.Errorf("regeneration interrupted: %w", err)
			}
			logger.Error("regeneration failed", "error", err)
			stats.Failures = append(stats.Failures, domain.ItemFailure{ExternalID: r.page.ID, Name: r.page.Title, Err: err.Error()})
			continue
		}
		stats.Updated++
		logger.Info("idea page regenerated")
	}

	stats.Duration = s.now().Sub(start)
	s.logger.Info("regeneration finished",
		"pages", stats.Pages,
		"updated", stats.Updated,
		"failed", len(stats.Failures),
		"duration", stats.Duration,
	)
	return stats, nil
}

func (s *IdeaService) plan(p domain.IdeaPage, byName map[string]domain.StoredIdea) regeneration {
	if st, ok := byName[p.Title]; ok {
		src := analysis.IdeaSource{
			Label:   domain.SourceLabel(st.Origin, st.Title),
			Content: st.RawText,
		}
		if st.URL != nil {
			src.URLs = []string{*st.URL}
		}
		return regeneration{page: p, idea: st.Idea, source: src, stored: true}
	}

	oneLiner := p.TLDR
	if oneLiner == "" {
		oneLiner = p.Title
	}
	label := p.Source
	if label == "" {
		label = domain.DefaultIdeaSource
	}
	return regeneration{
		page:   p,
		idea:   domain.Idea{Name: p.Title, OneLiner: oneLiner, TLDR: p.TLDR, Tags: p.Tags},
		source: analysis.IdeaSource{Label: label},
	}
}

func (s *IdeaService) regenerate(ctx context.Context, r regeneration, logger *slog.Logger) error {
	if !r.stored {
		text, err := s.workspace.PageText(ctx, r.page.ID)
		if err != nil {
			// The dossier can still be built from the title and TLDR.
			logger.Warn("page text unavailable", "error", err)
		}
		r.source.Content = truncateRunes(text, s.config.ContextChars)
	}

	dossier, err := s.analyzer.ExpandIdea(ctx, r.idea, r.source)
	if err != nil {
		return fmt.Errorf("expand idea: %w", err)
	}
	return s.workspace.RewriteIdea(ctx, r.page.ID, dossier)
}

// Classify scores, summarises and tags every page missing any of score,
// TLDR or tags. Pages with too little text are skipped; a failed page is
// recorded and the pass goes on.
func (s *IdeaService) Classify(ctx context.Context) (*domain.IdeaRunStats, error) {
	start := s.now()
	stats := &domain.IdeaRunStats{}

	pages, err := s.workspace.ListIdeaPages(ctx)
	if err != nil {
		return nil, err
	}
	stats.Pages = len(pages)

	var pending []domain.IdeaPage
	for _, p := range pages {
		if p.NeedsClassification() {
			pending = append(pending, p)
		}
	}
	stats.Planned = len(pending)
	s.logger.Info("classifying idea pages", "pages", len(pages), "pending", len(pending))

	for i, p := range pending {
		if i > 0 {
			if err := s.sleep(ctx, s.config.ClassifyDelay); err != nil {
				return stats, fmt.Errorf("classification interrupted: %w", err)
			}
		}
		logger := s.logger.With("page_id", p.ID, "title", p.Title)

		done, err := s.classify(ctx, p, logger)
		switch {
		case err != nil && ctx.Err() != nil:
			return stats, fmt.Errorf("classification interrupted: %w", err)
		case err != nil:
			logger.Error("classification failed", "error", err)
			stats.Failures = append(stats.Failures, domain.ItemFailure{ExternalID: p.ID, Name: p.Title, Err: err.Error()})
		case !done:
			stats.Skipped++
		default:
			stats.Updated++
		}
	}

	stats.Duration = s.now().Sub(start)
	s.logger.Info("classification finished",
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"failed", len(stats.Failures),
		"duration", stats.Duration,
	)
	return stats, nil
}

func (s *IdeaService) classify(ctx context.Context, p domain.IdeaPage, logger *slog.Logger) (bool, error) {
	text, err := s.workspace.PageText(ctx, p.ID)
	if err != nil {
		return false, err
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < s.config.MinContentChars {
		logger.Info("page text too short, skipping", "chars", utf8.RuneCountInString(text))
		return false, nil
	}

	c, err := s.analyzer.ClassifyIdea(ctx, p.Title, truncateRunes(text, s.config.ContextChars))
	if err != nil {
		return false, err
	}
	if err := s.workspace.ClassifyIdea(ctx, p.ID, *c); err != nil {
		return false, err
	}
	logger.Info("idea page classified", "tags", c.Tags, "has_score", c.Score != nil)
	return true, nil
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
