package scheduler

import (
	"context"
	"log/slog"
	"time"

	"newsletter_digest/internal/domain"
)

type Ingester interface {
	Run(ctx context.Context) (*domain.IngestStats, error)
}

type Compiler interface {
	Compile(ctx context.Context, force bool) (*domain.DigestOutcome, error)
}

type Config struct {
	IngestInterval time.Duration
	DigestWeekday  time.Weekday
	DigestHour     int
	Location       *time.Location
	// Tick is how often the loop wakes up to check what is due.
	Tick time.Duration
}

type Scheduler struct {
	ingester Ingester
	compiler Compiler
	config   Config
	logger   *slog.Logger

	lastIngest time.Time
	now        func() time.Time
}

func NewScheduler(ingester Ingester, compiler Compiler, cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Tick <= 0 {
		cfg.Tick = min(time.Hour, cfg.IngestInterval)
	}
	if cfg.Tick <= 0 {
		cfg.Tick = time.Hour
	}
	return &Scheduler{
		ingester: ingester,
		compiler: compiler,
		config:   cfg,
		logger:   logger.With("component", "scheduler"),
		now:      time.Now,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"ingest_interval", s.config.IngestInterval,
		"digest_weekday", s.config.DigestWeekday,
		"digest_hour", s.config.DigestHour,
		"timezone", s.config.Location,
	)

	s.tick(ctx)

	ticker := time.NewTicker(s.config.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := s.now()
	if s.ingestDue(now) {
		s.runIngest(ctx)
		s.lastIngest = now
	}
	if s.digestDue(now) {
		s.runCompile(ctx)
	}
}

func (s *Scheduler) ingestDue(now time.Time) bool {
	return s.lastIngest.IsZero() || now.Sub(s.lastIngest) >= s.config.IngestInterval
}

// digestDue reports whether now falls on the digest weekday at or after the
// digest hour. Compile is a no-op once the week's record exists.
func (s *Scheduler) digestDue(now time.Time) bool {
	local := now.In(s.config.Location)
	return local.Weekday() == s.config.DigestWeekday && local.Hour() >= s.config.DigestHour
}

func (s *Scheduler) runIngest(ctx context.Context) {
	if _, err := s.ingester.Run(ctx); err != nil {
		s.logger.Error("ingest failed", "error", err)
	}
}

func (s *Scheduler) runCompile(ctx context.Context) {
	outcome, err := s.compiler.Compile(ctx, false)
	if err != nil {
		s.logger.Error("digest compile failed", "error", err)
		return
	}
	s.logger.Info("digest run finished", "status", outcome.Status, "week", outcome.Key.Week, "entries", outcome.Entries)
}
