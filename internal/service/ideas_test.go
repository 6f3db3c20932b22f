package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"newsletter_digest/internal/analysis"
	"newsletter_digest/internal/domain"
	"newsletter_digest/internal/service/mocks"
	"newsletter_digest/testdata/utils"
)

type IdeaServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	ideas     *mocks.MockIdeaStore
	analyzer  *mocks.MockIdeaAnalyzer
	workspace *mocks.MockIdeaWorkspace

	service *IdeaService
	sleeps  []time.Duration
}

func (s *IdeaServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.ideas = mocks.NewMockIdeaStore(s.ctrl)
	s.analyzer = mocks.NewMockIdeaAnalyzer(s.ctrl)
	s.workspace = mocks.NewMockIdeaWorkspace(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewIdeaService(s.ideas, s.analyzer, s.workspace, logger, IdeaConfig{
		PageDelay:     10 * time.Second,
		ClassifyDelay: 4 * time.Second,
	})
	s.sleeps = nil
	s.service.sleep = func(ctx context.Context, d time.Duration) error {
		s.sleeps = append(s.sleeps, d)
		return ctx.Err()
	}
}

func (s *IdeaServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestIdeaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdeaServiceTestSuite))
}

func storedIdeas() []domain.StoredIdea {
	return []domain.StoredIdea{
		{
			Idea:    domain.Idea{Name: "AgentOps", TLDR: "first take"},
			Origin:  "The Batch",
			Title:   "AI Weekly #11",
			RawText: "older body",
		},
		{
			Idea:    domain.Idea{Name: "AgentOps", TLDR: "Ops for agents"},
			Origin:  "The Batch",
			Title:   "AI Weekly #12",
			RawText: "agents everywhere",
			URL:     utils.Ptr("https://example.com/12"),
		},
	}
}

func (s *IdeaServiceTestSuite) TestRegenerate_UsesStoredIdeaAndPageFallback() {
	ctx := context.Background()
	pages := []domain.IdeaPage{
		{ID: "p1", Title: "AgentOps"},
		{ID: "p2", Title: "Hand written", TLDR: "A pitch", Source: "Podcast", Tags: []string{"SaaS"}},
	}
	stored := domain.IdeaDossier{Deck: "stored"}
	manual := domain.IdeaDossier{Deck: "manual"}

	s.ideas.EXPECT().ListIdeas(ctx).Return(storedIdeas(), nil)
	s.workspace.EXPECT().ListIdeaPages(ctx).Return(pages, nil)
	gomock.InOrder(
		s.analyzer.EXPECT().ExpandIdea(ctx, storedIdeas()[1].Idea, analysis.IdeaSource{
			Label:   "The Batch — AI Weekly #12",
			URLs:    []string{"https://example.com/12"},
			Content: "agents everywhere",
		}).Return(stored, nil),
		s.workspace.EXPECT().RewriteIdea(ctx, "p1", stored).Return(nil),
		s.workspace.EXPECT().PageText(ctx, "p2").Return("Written by hand.", nil),
		s.analyzer.EXPECT().ExpandIdea(ctx,
			domain.Idea{Name: "Hand written", OneLiner: "A pitch", TLDR: "A pitch", Tags: domain.TagList{"SaaS"}},
			analysis.IdeaSource{Label: "Podcast", Content: "Written by hand."},
		).Return(manual, nil),
		s.workspace.EXPECT().RewriteIdea(ctx, "p2", manual).Return(nil),
	)

	stats, err := s.service.Regenerate(ctx, false)

	s.Require().NoError(err)
	s.Equal(2, stats.Pages)
	s.Equal(2, stats.Updated)
	s.Equal(1, stats.FromStore)
	s.Empty(stats.Failures)
	s.Equal([]time.Duration{10 * time.Second}, s.sleeps)
}

func (s *IdeaServiceTestSuite) TestRegenerate_DryRunWritesNothing() {
	ctx := context.Background()

	s.ideas.EXPECT().ListIdeas(ctx).Return(storedIdeas(), nil)
	s.workspace.EXPECT().ListIdeaPages(ctx).Return([]domain.IdeaPage{
		{ID: "p1", Title: "AgentOps"},
		{ID: "p2", Title: "Other"},
		{ID: "p3", Title: "  "},
	}, nil)

	stats, err := s.service.Regenerate(ctx, true)

	s.Require().NoError(err)
	s.Equal(3, stats.Pages)
	s.Equal(2, stats.Planned)
	s.Equal(1, stats.FromStore)
	s.Equal(1, stats.Skipped)
	s.Zero(stats.Updated)
	s.Empty(s.sleeps)
}

func (s *IdeaServiceTestSuite) TestRegenerate_PageFailureIsRecorded() {
	ctx := context.Background()
	dossier := domain.IdeaDossier{Deck: "d"}

	s.ideas.EXPECT().ListIdeas(ctx).Return(storedIdeas(), nil)
	s.workspace.EXPECT().ListIdeaPages(ctx).Return([]domain.IdeaPage{
		{ID: "p1", Title: "AgentOps"},
		{ID: "p2", Title: "Other"},
	}, nil)
	s.analyzer.EXPECT().ExpandIdea(ctx, gomock.Any(), gomock.Any()).Return(dossier, nil).Times(2)
	s.workspace.EXPECT().RewriteIdea(ctx, "p1", dossier).Return(errors.New("notion: 502"))
	s.workspace.EXPECT().PageText(ctx, "p2").Return("", errors.New("notion: 404"))
	s.workspace.EXPECT().RewriteIdea(ctx, "p2", dossier).Return(nil)

	stats, err := s.service.Regenerate(ctx, false)

	s.Require().NoError(err)
	s.Equal(1, stats.Updated)
	s.Require().Len(stats.Failures, 1)
	s.Equal(domain.ItemFailure{ExternalID: "p1", Name: "AgentOps", Err: "notion: 502"}, stats.Failures[0])
}

func (s *IdeaServiceTestSuite) TestRegenerate_CancelledStops() {
	ctx, cancel := context.WithCancel(context.Background())

	s.ideas.EXPECT().ListIdeas(ctx).Return(nil, nil)
	s.workspace.EXPECT().ListIdeaPages(ctx).Return([]domain.IdeaPage{
		{ID: "p1", Title: "One"},
		{ID: "p2", Title: "Two"},
	}, nil)
	s.workspace.EXPECT().PageText(ctx, "p1").Return("text", nil)
	s.analyzer.EXPECT().ExpandIdea(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.Idea, _ analysis.IdeaSource) (domain.IdeaDossier, error) {
			cancel()
			return domain.IdeaDossier{}, ctx.Err()
		},
	)

	stats, err := s.service.Regenerate(ctx, false)

	s.ErrorIs(err, context.Canceled)
	s.Zero(stats.Updated)
	s.Empty(stats.Failures)
}

func (s *IdeaServiceTestSuite) TestRegenerate_StoreError() {
	ctx := context.Background()

	s.ideas.EXPECT().ListIdeas(ctx).Return(nil, errors.New("connection refused"))

	_, err := s.service.Regenerate(ctx, false)

	s.ErrorContains(err, "list stored ideas")
}

func (s *IdeaServiceTestSuite) TestClassify_OnlyIncompletePages() {
	ctx := context.Background()
	classification := &domain.IdeaClassification{Score: utils.Ptr(domain.Score(6)), TLDR: "pitch", Tags: domain.TagList{"SaaS"}}

	s.workspace.EXPECT().ListIdeaPages(ctx).Return([]domain.IdeaPage{
		{ID: "done", Title: "Complete", HasScore: true, TLDR: "t", Tags: []string{"SaaS"}},
		{ID: "short", Title: "Stub"},
		{ID: "todo", Title: "AgentOps", HasScore: true},
		{ID: "broken", Title: "Broken"},
	}, nil)
	gomock.InOrder(
		s.workspace.EXPECT().PageText(ctx, "short").Return("  too short  ", nil),
		s.workspace.EXPECT().PageText(ctx, "todo").Return("Observability for teams running agents.", nil),
		s.analyzer.EXPECT().ClassifyIdea(ctx, "AgentOps", "Observability for teams running agents.").Return(classification, nil),
		s.workspace.EXPECT().ClassifyIdea(ctx, "todo", *classification).Return(nil),
		s.workspace.EXPECT().PageText(ctx, "broken").Return("A long enough description of an idea.", nil),
		s.analyzer.EXPECT().ClassifyIdea(ctx, "Broken", gomock.Any()).Return(nil, errors.New("malformed model response")),
	)

	stats, err := s.service.Classify(ctx)

	s.Require().NoError(err)
	s.Equal(4, stats.Pages)
	s.Equal(3, stats.Planned)
	s.Equal(1, stats.Updated)
	s.Equal(1, stats.Skipped)
	s.Require().Len(stats.Failures, 1)
	s.Equal("broken", stats.Failures[0].ExternalID)
	s.Equal([]time.Duration{4 * time.Second, 4 * time.Second}, s.sleeps)
}

func (s *IdeaServiceTestSuite) TestClassify_ListError() {
	ctx := context.Background()

	s.workspace.EXPECT().ListIdeaPages(ctx).Return(nil, errors.New("notion: rate limited"))

	_, err := s.service.Classify(ctx)

	s.Error(err)
}
