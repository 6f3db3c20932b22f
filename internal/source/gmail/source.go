package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"google.golang.org/api/gmail/v1"

	"newsletter_digest/internal/domain"
)

const (
	SourceID   = "gmail"
	SourceName = "Gmail newsletters"

	user = "me"
)

type Config struct {
	Label    string
	DaysBack int
}

// Source lists and fetches newsletter messages carrying a Gmail label.
type Source struct {
	svc      *gmail.Service
	label    string
	daysBack int
	labelID  string
	now      func() time.Time
	logger   *slog.Logger
}

func New(svc *gmail.Service, cfg Config, logger *slog.Logger) *Source {
	return &Source{
		svc:      svc,
		label:    cfg.Label,
		daysBack: cfg.DaysBack,
		now:      time.Now,
		logger:   logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// ListMessageIDs returns the ids of labelled messages received in the last
// DaysBack days, in listing order.
func (s *Source) ListMessageIDs(ctx context.Context) ([]string, error) {
	labelID, err := s.resolveLabel(ctx)
	if err != nil {
		return nil, err
	}

	query := "after:" + s.now().AddDate(0, 0, -s.daysBack).Format("2006/01/02")

	var ids []string
	pageToken := ""
	for page := 0; ; page++ {
		call := s.svc.Users.Messages.List(user).LabelIds(labelID).Q(query).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return ids, fmt.Errorf("list messages page %d: %w", page, err)
		}

		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
		}

		s.logger.Debug("listed page",
			"page", page,
			"messages", len(resp.Messages),
			"total", len(ids),
		)

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return ids, nil
}

// FetchMessage downloads one message and flattens it into a RawItem.
func (s *Source) FetchMessage(ctx context.Context, id string) (*domain.RawItem, error) {
	msg, err := s.svc.Users.Messages.Get(user, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", id, err)
	}
	return s.transform(msg)
}

func (s *Source) resolveLabel(ctx context.Context) (string, error) {
	if s.labelID != "" {
		return s.labelID, nil
	}

	resp, err := s.svc.Users.Labels.List(user).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list labels: %w", err)
	}

	for _, l := range resp.Labels {
		if l.Name == s.label {
			s.labelID = l.Id
			return l.Id, nil
		}
	}
	return "", fmt.Errorf("label %q not found", s.label)
}

func (s *Source) transform(msg *gmail.Message) (*domain.RawItem, error) {
	item := &domain.RawItem{ExternalID: msg.Id}
	if msg.Payload == nil {
		return item, nil
	}

	item.Subject = header(msg.Payload.Headers, "Subject")
	item.Sender = header(msg.Payload.Headers, "From")

	if raw := header(msg.Payload.Headers, "Date"); raw != "" {
		date, err := mail.ParseDate(raw)
		if err != nil {
			s.logger.Warn("failed to parse date",
				"external_id", msg.Id,
				"date", raw,
			)
		} else {
			item.Date = date
		}
	}
	if item.Date.IsZero() && msg.InternalDate > 0 {
		item.Date = time.UnixMilli(msg.InternalDate)
	}

	bodies, err := collectBodies(msg.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode message %s: %w", msg.Id, err)
	}
	item.HTMLBody = bodies.html
	item.TextBody = bodies.text

	return item, nil
}
