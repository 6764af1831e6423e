package msg

import (
	"context"
	"errors"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"reserve-portal/internal/pkg/tracing"
)

// Handler processes one message. Returning an error leaves the message
// uncommitted so the broker redelivers it; handlers must therefore be
// idempotent.
type Handler func(ctx context.Context, key, value []byte) error

type Consumer struct {
	log    *slog.Logger
	reader *kafka.Reader
	dedupe *Dedupe
	tracer trace.Tracer
	name   string
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string, dedupe *Dedupe) *Consumer {
	return &Consumer{
		log: log,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: group,
		}),
		dedupe: dedupe,
		tracer: otel.Tracer("consumer/" + topic),
		name:   topic,
	}
}

// Run fetches until ctx is cancelled, dispatching each message to
// handle. Commit happens only after the handler succeeds; duplicates
// already processed are committed without dispatching.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		key := c.dedupe.Key(msg.Topic, msg.Partition, msg.Offset)
		seen, err := c.dedupe.Seen(ctx, key)
		if err != nil {
			c.log.Error("dedupe check failed", "topic", c.name, "error", err)
			continue
		}
		if seen {
			c.log.Info("duplicate message skipped", "topic", c.name, "key", string(msg.Key))
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "consume "+c.name)

		if err := handle(msgCtx, msg.Key, msg.Value); err != nil {
			c.log.Error("message handling failed, leaving uncommitted",
				"topic", c.name, "key", string(msg.Key), "error", err)
			span.End()
			continue
		}
		span.End()

		if err := c.dedupe.Mark(ctx, key); err != nil {
			c.log.Warn("dedupe mark failed", "topic", c.name, "error", err)
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Error("commit failed", "topic", c.name, "error", err)
		}
	}
}
