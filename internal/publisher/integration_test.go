//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"newsletter_digest/internal/domain"
	"newsletter_digest/testdata/utils"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) config(name string) Config {
	return Config{
		URL:              s.amqpURL,
		Exchange:         "exchange-" + name,
		QueueName:        "queue-" + name,
		ItemRoutingKey:   "item.ingested",
		DigestRoutingKey: "digest.compiled",
	}
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	pub, err := NewRabbitMQ(s.config("connect"), s.logger)
	s.NoError(err)
	s.NotNil(pub)

	s.NoError(pub.Close())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishItem() {
	cfg := s.config("item")
	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	item := &domain.InboundItem{
		ID:          7,
		ExternalID:  "msg-7",
		ContentType: domain.ContentTypeVideo,
		Title:       "YouTube: abc",
		Origin:      "creator@example.com",
		URL:         utils.Ptr("https://youtu.be/abc"),
	}
	analysis := &domain.AnalysisResult{
		Signal: domain.SignalStrong,
		Ideas:  []domain.Idea{{Name: "Idea"}},
	}

	s.NoError(pub.PublishItem(s.ctx, "run-1", item, analysis))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal("application/json", msg.ContentType)
	s.Equal("item.ingested", msg.RoutingKey)
	s.NotEmpty(msg.MessageId)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)

	var received ItemMessage
	s.NoError(json.Unmarshal(msg.Body, &received))
	s.Equal("run-1", received.RunID)
	s.Equal(int64(7), received.ItemID)
	s.Equal("msg-7", received.ExternalID)
	s.Equal(domain.ContentTypeVideo, received.ContentType)
	s.Equal("strong", received.Signal)
	s.Equal(1, received.Ideas)
	s.Require().NotNil(received.URL)
	s.Equal("https://youtu.be/abc", *received.URL)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishDigest() {
	cfg := s.config("digest")
	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	sent := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)
	rec := &domain.DigestRecord{
		Key:    domain.WeekKey{Week: 7, Year: 2026},
		DocRef: "page-1",
		SentAt: &sent,
	}

	s.NoError(pub.PublishDigest(s.ctx, rec, 12, true))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal("digest.compiled", msg.RoutingKey)

	var received DigestMessage
	s.NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(7, received.Week)
	s.Equal(2026, received.Year)
	s.Equal(12, received.Entries)
	s.True(received.Replaced)
	s.True(sent.Equal(received.SentAt))
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
