package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"newsletter_digest/internal/domain"
)

type RabbitMQ struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	exchange  string
	itemKey   string
	digestKey string
	logger    *slog.Logger
}

type Config struct {
	URL              string
	Exchange         string
	QueueName        string
	ItemRoutingKey   string
	DigestRoutingKey string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	for _, key := range []string{cfg.ItemRoutingKey, cfg.DigestRoutingKey} {
		if err := ch.QueueBind(q.Name, key, cfg.Exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue to %s: %w", key, err)
		}
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"item_routing_key", cfg.ItemRoutingKey,
		"digest_routing_key", cfg.DigestRoutingKey,
	)

	return &RabbitMQ{
		conn:      conn,
		channel:   ch,
		exchange:  cfg.Exchange,
		itemKey:   cfg.ItemRoutingKey,
		digestKey: cfg.DigestRoutingKey,
		logger:    logger,
	}, nil
}

// ItemMessage announces an item that was persisted by an ingest run.
type ItemMessage struct {
	RunID       string             `json:"run_id"`
	ItemID      int64              `json:"item_id"`
	ExternalID  string             `json:"external_id"`
	ContentType domain.ContentType `json:"content_type"`
	Title       string             `json:"title"`
	Origin      string             `json:"origin"`
	URL         *string            `json:"url,omitempty"`
	Signal      string             `json:"signal,omitempty"`
	Ideas       int                `json:"ideas"`
	Timestamp   time.Time          `json:"timestamp"`
}

// DigestMessage announces a committed weekly digest.
type DigestMessage struct {
	Week      int       `json:"week"`
	Year      int       `json:"year"`
	DocRef    string    `json:"doc_ref"`
	Entries   int       `json:"entries"`
	Replaced  bool      `json:"replaced"`
	SentAt    time.Time `json:"sent_at"`
	Timestamp time.Time `json:"timestamp"`
}

func (r *RabbitMQ) PublishItem(ctx context.Context, runID string, item *domain.InboundItem, analysis *domain.AnalysisResult) error {
	msg := ItemMessage{
		RunID:       runID,
		ItemID:      item.ID,
		ExternalID:  item.ExternalID,
		ContentType: item.ContentType,
		Title:       item.Title,
		Origin:      item.Origin,
		URL:         item.URL,
		Timestamp:   time.Now().UTC(),
	}
	if analysis != nil {
		msg.Signal = string(analysis.Signal)
		msg.Ideas = len(analysis.Ideas)
	}

	if err := r.publish(ctx, r.itemKey, msg); err != nil {
		return err
	}

	r.logger.Debug("published item", "external_id", item.ExternalID, "item_id", item.ID)
	return nil
}

func (r *RabbitMQ) PublishDigest(ctx context.Context, rec *domain.DigestRecord, entries int, replaced bool) error {
	msg := DigestMessage{
		Week:      rec.Key.Week,
		Year:      rec.Key.Year,
		DocRef:    rec.DocRef,
		Entries:   entries,
		Replaced:  replaced,
		Timestamp: time.Now().UTC(),
	}
	if rec.SentAt != nil {
		msg.SentAt = *rec.SentAt
	}

	if err := r.publish(ctx, r.digestKey, msg); err != nil {
		return err
	}

	r.logger.Debug("published digest", "week", rec.Key.String(), "replaced", replaced)
	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, routingKey string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Type:         routingKey,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
