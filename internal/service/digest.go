package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsletter_digest/internal/domain"
)

var ErrNoDocRef = errors.New("digest has no document reference")

// DigestService closes compilation windows. The lower bound of each window is
// the sent time of the previous digest, so every item lands in exactly one.
type DigestService struct {
	items     ItemStore
	digests   DigestStore
	analyzer  Analyzer
	workspace Workspace
	mailer    Mailer
	publisher Publisher
	location  *time.Location
	logger    *slog.Logger

	now func() time.Time
}

func NewDigestService(
	items ItemStore,
	digests DigestStore,
	analyzer Analyzer,
	workspace Workspace,
	mailer Mailer,
	publisher Publisher,
	location *time.Location,
	logger *slog.Logger,
) *DigestService {
	if location == nil {
		location = time.UTC
	}
	return &DigestService{
		items:     items,
		digests:   digests,
		analyzer:  analyzer,
		workspace: workspace,
		mailer:    mailer,
		publisher: publisher,
		location:  location,
		logger:    logger.With("component", "digest"),
		now:       time.Now,
	}
}

// Compile builds the digest of the current week. Without force an existing
// record for the week makes it a no-op; with force the record is replaced and
// the window re-covers what the replaced record covered.
func (s *DigestService) Compile(ctx context.Context, force bool) (*domain.DigestOutcome, error) {
	key := domain.WeekOf(s.now().In(s.location))
	logger := s.logger.With("week", key.Week, "year", key.Year, "force", force)

	exists, err := s.digests.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check digest: %w", err)
	}
	if exists && !force {
		logger.Info("digest already compiled for this week")
		return &domain.DigestOutcome{Key: key, Status: domain.DigestExists}, nil
	}

	var exclude *domain.WeekKey
	if exists {
		exclude = &key
	}
	since, err := s.digests.LastSentAt(ctx, exclude)
	if err != nil {
		return nil, fmt.Errorf("last digest timestamp: %w", err)
	}

	// Items ingested after the snapshot belong to the next window.
	until, err := s.items.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("window snapshot: %w", err)
	}

	entries, err := s.items.QueryWindow(ctx, since, &until)
	if err != nil {
		return nil, fmt.Errorf("query window: %w", err)
	}
	if len(entries) == 0 {
		logger.Info("nothing to compile", "since", since, "until", until)
		return &domain.DigestOutcome{Key: key, Status: domain.DigestEmpty}, nil
	}
	logger.Info("compiling digest", "entries", len(entries), "since", since)

	payload, err := s.analyzer.SynthesizeDigest(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("synthesize digest: %w", err)
	}
	payload.Sources = sourceRefs(entries)

	docRef, err := s.workspace.PublishDigest(ctx, key, *payload)
	if err != nil {
		return nil, fmt.Errorf("publish digest page: %w", err)
	}

	rec := &domain.DigestRecord{Key: key, Payload: *payload, DocRef: docRef, SentAt: &until}
	if err := s.digests.Commit(ctx, rec); err != nil {
		return nil, fmt.Errorf("commit digest: %w", err)
	}
	logger.Info("digest committed", "doc_ref", docRef, "sent_at", rec.SentAt)

	if s.mailer != nil {
		if err := s.mailer.SendDigest(ctx, rec); err != nil {
			logger.Error("send digest email failed", "error", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDigest(ctx, rec, len(entries), exists); err != nil {
			logger.Warn("publish digest event failed", "error", err)
		}
	}

	return &domain.DigestOutcome{
		Key:     key,
		Status:  domain.DigestCompiled,
		Entries: len(entries),
		DocRef:  docRef,
	}, nil
}

// Republish re-renders a stored digest into its existing page. The record
// itself is left untouched.
func (s *DigestService) Republish(ctx context.Context, key domain.WeekKey) error {
	rec, err := s.digests.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get digest %s: %w", key, err)
	}
	if rec.DocRef == "" {
		return fmt.Errorf("digest %s: %w", key, ErrNoDocRef)
	}

	if err := s.workspace.RepublishDigest(ctx, rec.DocRef, rec.Payload); err != nil {
		return fmt.Errorf("republish digest %s: %w", key, err)
	}

	s.logger.Info("digest republished", "week", key.Week, "year", key.Year, "doc_ref", rec.DocRef)
	return nil
}

func sourceRefs(entries []domain.WindowEntry) []domain.SourceRef {
	refs := make([]domain.SourceRef, len(entries))
	for i, e := range entries {
		refs[i] = domain.SourceRef{Origin: e.Item.Origin, Title: e.Item.Title}
	}
	return refs
}
