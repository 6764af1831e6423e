package msg

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"

	"reserve-portal/internal/pkg/errs"
	"reserve-portal/internal/pkg/tracing"
)

// Publisher writes JSON events to Kafka, keyed so all events of one
// reservation share a partition. Transient broker failures are retried
// with exponential backoff; exhausting the retry budget surfaces the
// error to the caller, who compensates.
type Publisher struct {
	writer     *kafka.Writer
	log        *slog.Logger
	maxElapsed time.Duration
}

func NewPublisher(log *slog.Logger, brokers []string, maxElapsed time.Duration) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		log:        log,
		maxElapsed: maxElapsed,
	}
}

func (p *Publisher) Publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal event payload")
	}

	msg := kafka.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   value,
		Headers: tracing.InjectKafkaHeaders(ctx, nil),
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = p.maxElapsed

	attempt := 0
	operation := func() error {
		attempt++
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.log.Warn("publish attempt failed",
				"topic", topic, "key", key, "attempt", attempt, "error", err)
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return errs.Wrapf(err, "failed to publish to %s after retries", topic)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
