package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/kkdai/youtube/v2"
	_ "github.com/lib/pq"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"newsletter_digest/internal/analysis"
	"newsletter_digest/internal/classifier"
	"newsletter_digest/internal/config"
	"newsletter_digest/internal/extract"
	"newsletter_digest/internal/gateway"
	"newsletter_digest/internal/gateway/gemini"
	"newsletter_digest/internal/googleauth"
	"newsletter_digest/internal/mailer"
	"newsletter_digest/internal/publisher"
	"newsletter_digest/internal/service"
	gmailsource "newsletter_digest/internal/source/gmail"
	"newsletter_digest/internal/storage/postgres"
	"newsletter_digest/internal/transcribe"
	"newsletter_digest/internal/workspace/notion"
)

// app holds the wired services of one process.
type app struct {
	ingest  *service.IngestService
	digest  *service.DigestService
	ideas   *service.IdeaService
	closers []func() error
	logger  *slog.Logger
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{logger: logger}
	ready := false
	defer func() {
		if !ready {
			a.Close()
		}
	}()

	loc, err := cfg.Schedule.Location()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database")

	itemStore, err := postgres.NewKnownCache(postgres.NewItemStore(db), cfg.Ingest.KnownCacheSize)
	if err != nil {
		return nil, err
	}
	analysisStore := postgres.NewAnalysisStore(db)
	digestStore := postgres.NewDigestStore(db)
	stateStore := postgres.NewIngestStateStore(db)
	txManager := postgres.NewTransactionManager(db)

	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:              cfg.RabbitMQ.URL,
			Exchange:         cfg.RabbitMQ.Exchange,
			QueueName:        cfg.RabbitMQ.QueueName,
			ItemRoutingKey:   cfg.RabbitMQ.ItemRoutingKey,
			DigestRoutingKey: cfg.RabbitMQ.DigestRoutingKey,
		}, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rabbitMQ.Close)
		events = rabbitMQ
	}

	tokens, err := googleauth.TokenSource(ctx, cfg.Gmail.CredentialsFile, cfg.Gmail.TokenFile)
	if err != nil {
		return nil, err
	}
	gmailSvc, err := gmail.NewService(ctx, option.WithTokenSource(tokens))
	if err != nil {
		return nil, fmt.Errorf("gmail client: %w", err)
	}

	provider, err := gemini.New(ctx, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, provider.Close)

	gw := gateway.New(provider, gateway.Config{
		MaxAttempts: cfg.LLM.MaxAttempts,
		BaseDelay:   cfg.LLM.BaseDelay,
	}, logger)

	analyzer := analysis.New(gw, analysis.Config{
		MaxContentChars:    cfg.LLM.MaxContentChars,
		MemberContextChars: cfg.LLM.MemberContextChars,
		Delay:              cfg.Pacing.LLMDelay,
	}, analysis.Board, logger)

	dispatcher := extract.NewDispatcher(
		extract.NewDocumentExtractor(cfg.Ingest.MinContentChars, logger),
		extract.NewVideoExtractor(
			&youtube.Client{HTTPClient: &http.Client{Timeout: cfg.YouTube.Timeout}},
			cfg.YouTube.Languages,
			logger,
		),
		extract.NewAudioExtractor(
			extract.YtDlp{Binary: cfg.Transcription.YtDlpPath},
			transcribe.NewWhisper(cfg.Transcription.APIKey, cfg.Transcription.Model),
			extract.AudioConfig{
				Language:        cfg.Transcription.Language,
				DownloadTimeout: cfg.Transcription.DownloadTimeout,
				MaxFileBytes:    cfg.Transcription.MaxFileBytes,
				TempDir:         cfg.Transcription.TempDir,
			},
			logger,
		),
		logger,
	)

	workspace := notion.NewWorkspace(notion.New(notion.Config{
		Token:       cfg.Notion.Token,
		BaseURL:     cfg.Notion.BaseURL,
		APIVersion:  cfg.Notion.APIVersion,
		MaxAttempts: cfg.Notion.MaxAttempts,
		BaseDelay:   cfg.Notion.BaseDelay,
		BlockBatch:  cfg.Notion.BlockBatch,
		WriteDelay:  cfg.Notion.WriteDelay,
		Timeout:     cfg.Notion.Timeout,
	}, logger), notion.WorkspaceConfig{
		DigestsPageID:   cfg.Notion.DigestsPageID,
		IdeasDatabaseID: cfg.Notion.IdeasDatabaseID,
		Members:         analysis.Board,
	})

	source := gmailsource.New(gmailSvc, gmailsource.Config{
		Label:    cfg.Gmail.Label,
		DaysBack: cfg.Gmail.DaysBack,
	}, logger)

	a.ingest = service.NewIngestService(
		source,
		classifier.New(),
		dispatcher,
		analyzer,
		itemStore,
		analysisStore,
		stateStore,
		txManager,
		workspace,
		events,
		logger,
		service.IngestConfig{
			MinContentChars: cfg.Ingest.MinContentChars,
			LLMDelay:        cfg.Pacing.LLMDelay,
			Location:        loc,
		},
	)

	a.digest = service.NewDigestService(
		itemStore,
		digestStore,
		analyzer,
		workspace,
		mailer.New(gmailSvc, mailer.Config{
			Sender:    cfg.Gmail.Sender,
			Recipient: cfg.Gmail.Recipient,
			IdeasURL:  ideasURL(cfg.Notion.IdeasDatabaseID),
			Location:  loc,
		}, logger),
		events,
		loc,
		logger,
	)

	a.ideas = service.NewIdeaService(analysisStore, analyzer, workspace, logger, service.IdeaConfig{
		PageDelay:     cfg.Pacing.PageDelay,
		ClassifyDelay: cfg.Pacing.ClassifyDelay,
	})

	ready = true
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

func ideasURL(databaseID string) string {
	if databaseID == "" {
		return ""
	}
	return "https://www.notion.so/" + strings.ReplaceAll(databaseID, "-", "")
}
