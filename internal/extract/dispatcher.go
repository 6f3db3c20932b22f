// Package extract turns a classified inbound item into plain text.
//
// Every strategy degrades to a short bracketed placeholder instead of
// returning an error, so a bad item can still be persisted.
package extract

import (
	"context"
	"log/slog"

	"newsletter_digest/internal/classifier"
	"newsletter_digest/internal/domain"
)

type Result struct {
	Title   string
	Content string
}

type Strategy interface {
	Extract(ctx context.Context, item domain.RawItem, c classifier.Classification) Result
}

type Dispatcher struct {
	strategies map[domain.ContentType]Strategy
	fallback   Strategy
	logger     *slog.Logger
}

func NewDispatcher(document, video, audio Strategy, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		strategies: map[domain.ContentType]Strategy{
			domain.ContentTypeDocument: document,
			domain.ContentTypeVideo:    video,
			domain.ContentTypeAudio:    audio,
		},
		fallback: document,
		logger:   logger.With("component", "extract"),
	}
}

func (d *Dispatcher) Extract(ctx context.Context, item domain.RawItem, c classifier.Classification) Result {
	strategy, ok := d.strategies[c.Type]
	if !ok || strategy == nil {
		strategy = d.fallback
	}

	res := strategy.Extract(ctx, item, c)
	res.Title = First(hasTitle, item.Subject,
		Candidate{Source: "extracted", Value: res.Title},
		Candidate{Source: "subject", Value: item.Subject},
	).Value

	d.logger.Debug("item extracted",
		"external_id", item.ExternalID,
		"type", c.Type,
		"chars", len(res.Content),
	)

	return res
}

func hasTitle(s string) bool {
	return s != "" && s != noTitle
}

const noTitle = "[no-title]"
