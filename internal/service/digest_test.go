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

	"newsletter_digest/internal/domain"
	"newsletter_digest/internal/service/mocks"
	"newsletter_digest/testdata/utils"
)

type DigestServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	items     *mocks.MockItemStore
	digests   *mocks.MockDigestStore
	analyzer  *mocks.MockAnalyzer
	workspace *mocks.MockWorkspace
	mailer    *mocks.MockMailer
	publisher *mocks.MockPublisher

	service *DigestService
	key     domain.WeekKey
	until   time.Time
}

func (s *DigestServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.items = mocks.NewMockItemStore(s.ctrl)
	s.digests = mocks.NewMockDigestStore(s.ctrl)
	s.analyzer = mocks.NewMockAnalyzer(s.ctrl)
	s.workspace = mocks.NewMockWorkspace(s.ctrl)
	s.mailer = mocks.NewMockMailer(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewDigestService(s.items, s.digests, s.analyzer, s.workspace, s.mailer, s.publisher, time.UTC, logger)
	s.service.now = func() time.Time { return time.Date(2026, time.February, 13, 12, 0, 0, 0, time.UTC) }
	s.key = domain.WeekKey{Week: 7, Year: 2026}
	s.until = time.Date(2026, time.February, 13, 11, 59, 59, 0, time.UTC)
}

func (s *DigestServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestDigestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DigestServiceTestSuite))
}

func window() []domain.WindowEntry {
	return []domain.WindowEntry{
		{
			Item:     domain.InboundItem{ID: 1, Origin: "The Batch", Title: "AI Weekly #12"},
			Analysis: &domain.AnalysisResult{Signal: domain.SignalStrong},
		},
		{Item: domain.InboundItem{ID: 2, Origin: "Lenny", Title: "Pricing"}},
	}
}

func (s *DigestServiceTestSuite) TestCompile_ExistingWeekIsNoop() {
	ctx := context.Background()

	s.digests.EXPECT().Exists(ctx, s.key).Return(true, nil)

	outcome, err := s.service.Compile(ctx, false)

	s.Require().NoError(err)
	s.Equal(domain.DigestExists, outcome.Status)
	s.Equal(s.key, outcome.Key)
}

func (s *DigestServiceTestSuite) TestCompile_EmptyWindowCreatesNothing() {
	ctx := context.Background()
	since := time.Date(2026, time.February, 6, 12, 0, 0, 0, time.UTC)

	s.digests.EXPECT().Exists(ctx, s.key).Return(false, nil)
	s.digests.EXPECT().LastSentAt(ctx, nil).Return(&since, nil)
	s.items.EXPECT().Snapshot(ctx).Return(s.until, nil)
	s.items.EXPECT().QueryWindow(ctx, &since, &s.until).Return(nil, nil)

	outcome, err := s.service.Compile(ctx, false)

	s.Require().NoError(err)
	s.Equal(domain.DigestEmpty, outcome.Status)
}

func (s *DigestServiceTestSuite) TestCompile_CommitsBeforeEmail() {
	ctx := context.Background()
	entries := window()
	payload := &domain.DigestPayload{WeekSummary: "agents everywhere"}

	gomock.InOrder(
		s.digests.EXPECT().Exists(ctx, s.key).Return(false, nil),
		s.digests.EXPECT().LastSentAt(ctx, nil).Return(nil, nil),
		s.items.EXPECT().Snapshot(ctx).Return(s.until, nil),
		s.items.EXPECT().QueryWindow(ctx, nil, &s.until).Return(entries, nil),
		s.analyzer.EXPECT().SynthesizeDigest(ctx, entries).Return(payload, nil),
		s.workspace.EXPECT().PublishDigest(ctx, s.key, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ domain.WeekKey, p domain.DigestPayload) (string, error) {
				s.Equal([]domain.SourceRef{
					{Origin: "The Batch", Title: "AI Weekly #12"},
					{Origin: "Lenny", Title: "Pricing"},
				}, p.Sources)
				return "https://notion.so/digest-7", nil
			},
		),
		s.digests.EXPECT().Commit(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, rec *domain.DigestRecord) error {
				s.Equal(s.key, rec.Key)
				s.Equal("https://notion.so/digest-7", rec.DocRef)
				s.Equal(utils.Ptr(s.until), rec.SentAt, "sent_at is the window bound")
				return nil
			},
		),
		s.mailer.EXPECT().SendDigest(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, rec *domain.DigestRecord) error {
				s.Equal(utils.Ptr(s.until), rec.SentAt)
				return nil
			},
		),
		s.publisher.EXPECT().PublishDigest(ctx, gomock.Any(), 2, false).Return(nil),
	)

	outcome, err := s.service.Compile(ctx, false)

	s.Require().NoError(err)
	s.Equal(domain.DigestCompiled, outcome.Status)
	s.Equal(2, outcome.Entries)
	s.Equal("https://notion.so/digest-7", outcome.DocRef)
}

func (s *DigestServiceTestSuite) TestCompile_ForceExcludesReplacedWeek() {
	ctx := context.Background()
	entries := window()
	previous := time.Date(2026, time.February, 6, 12, 0, 0, 0, time.UTC)

	s.digests.EXPECT().Exists(ctx, s.key).Return(true, nil)
	s.digests.EXPECT().LastSentAt(ctx, &s.key).Return(&previous, nil)
	s.items.EXPECT().Snapshot(ctx).Return(s.until, nil)
	s.items.EXPECT().QueryWindow(ctx, &previous, &s.until).Return(entries, nil)
	s.analyzer.EXPECT().SynthesizeDigest(ctx, entries).Return(&domain.DigestPayload{}, nil)
	s.workspace.EXPECT().PublishDigest(ctx, s.key, gomock.Any()).Return("ref", nil)
	s.digests.EXPECT().Commit(ctx, gomock.Any()).Return(nil)
	s.mailer.EXPECT().SendDigest(ctx, gomock.Any()).Return(nil)
	s.publisher.EXPECT().PublishDigest(ctx, gomock.Any(), 2, true).Return(nil)

	outcome, err := s.service.Compile(ctx, true)

	s.Require().NoError(err)
	s.Equal(domain.DigestCompiled, outcome.Status)
}

func (s *DigestServiceTestSuite) TestCompile_EmailFailureIsNotFatal() {
	ctx := context.Background()
	entries := window()

	s.digests.EXPECT().Exists(ctx, s.key).Return(false, nil)
	s.digests.EXPECT().LastSentAt(ctx, nil).Return(nil, nil)
	s.items.EXPECT().Snapshot(ctx).Return(s.until, nil)
	s.items.EXPECT().QueryWindow(ctx, nil, &s.until).Return(entries, nil)
	s.analyzer.EXPECT().SynthesizeDigest(ctx, entries).Return(&domain.DigestPayload{}, nil)
	s.workspace.EXPECT().PublishDigest(ctx, s.key, gomock.Any()).Return("ref", nil)
	s.digests.EXPECT().Commit(ctx, gomock.Any()).Return(nil)
	s.mailer.EXPECT().SendDigest(ctx, gomock.Any()).Return(errors.New("gmail: 403"))
	s.publisher.EXPECT().PublishDigest(ctx, gomock.Any(), 2, false).Return(errors.New("closed"))

	outcome, err := s.service.Compile(ctx, false)

	s.Require().NoError(err)
	s.Equal(domain.DigestCompiled, outcome.Status)
}

func (s *DigestServiceTestSuite) TestCompile_PublishFailureDoesNotCommit() {
	ctx := context.Background()
	entries := window()

	s.digests.EXPECT().Exists(ctx, s.key).Return(false, nil)
	s.digests.EXPECT().LastSentAt(ctx, nil).Return(nil, nil)
	s.items.EXPECT().Snapshot(ctx).Return(s.until, nil)
	s.items.EXPECT().QueryWindow(ctx, nil, &s.until).Return(entries, nil)
	s.analyzer.EXPECT().SynthesizeDigest(ctx, entries).Return(&domain.DigestPayload{}, nil)
	s.workspace.EXPECT().PublishDigest(ctx, s.key, gomock.Any()).Return("", errors.New("notion: 502"))

	outcome, err := s.service.Compile(ctx, false)

	s.Error(err)
	s.Nil(outcome)
}

func (s *DigestServiceTestSuite) TestCompile_SynthesisFailureDoesNotCommit() {
	ctx := context.Background()
	entries := window()

	s.digests.EXPECT().Exists(ctx, s.key).Return(false, nil)
	s.digests.EXPECT().LastSentAt(ctx, nil).Return(nil, nil)
	s.items.EXPECT().Snapshot(ctx).Return(s.until, nil)
	s.items.EXPECT().QueryWindow(ctx, nil, &s.until).Return(entries, nil)
	s.analyzer.EXPECT().SynthesizeDigest(ctx, entries).Return(nil, errors.New("rate limited"))

	_, err := s.service.Compile(ctx, false)

	s.Error(err)
}

func (s *DigestServiceTestSuite) TestCompile_SnapshotFailure() {
	ctx := context.Background()

	s.digests.EXPECT().Exists(ctx, s.key).Return(false, nil)
	s.digests.EXPECT().LastSentAt(ctx, nil).Return(nil, nil)
	s.items.EXPECT().Snapshot(ctx).Return(time.Time{}, errors.New("lock timeout"))

	_, err := s.service.Compile(ctx, false)

	s.ErrorContains(err, "window snapshot")
}

func (s *DigestServiceTestSuite) TestRepublish() {
	ctx := context.Background()
	rec := &domain.DigestRecord{Key: s.key, DocRef: "https://notion.so/digest-7", Payload: domain.DigestPayload{WeekSummary: "x"}}

	s.digests.EXPECT().Get(ctx, s.key).Return(rec, nil)
	s.workspace.EXPECT().RepublishDigest(ctx, rec.DocRef, rec.Payload).Return(nil)

	s.NoError(s.service.Republish(ctx, s.key))
}

func (s *DigestServiceTestSuite) TestRepublish_NotFound() {
	ctx := context.Background()

	s.digests.EXPECT().Get(ctx, s.key).Return(nil, domain.ErrNotFound)

	s.ErrorIs(s.service.Republish(ctx, s.key), domain.ErrNotFound)
}

func (s *DigestServiceTestSuite) TestRepublish_MissingDocRef() {
	ctx := context.Background()

	s.digests.EXPECT().Get(ctx, s.key).Return(&domain.DigestRecord{Key: s.key}, nil)

	s.ErrorIs(s.service.Republish(ctx, s.key), ErrNoDocRef)
}
