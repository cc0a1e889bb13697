package nats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/fraudsight/fraudsight/internal/pkg/logger"
)

// ErrNonRetryable marks a message as permanently unprocessable. The consumer
// terminates such messages instead of requesting redelivery.
var ErrNonRetryable = errors.New("non-retryable message")

// MessageHandler processes a single JetStream message. Returning nil
// acknowledges the message; returning an error NAKs it for redelivery unless
// the error wraps ErrNonRetryable.
type MessageHandler func(msg jetstream.Msg) error

// ConsumerConfig describes a durable JetStream consumer
type ConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	FilterSubject string
	MaxDeliver    int
}

// Consumer consumes messages from a JetStream stream with explicit acks
type Consumer struct {
	consumer   jetstream.Consumer
	consumeCtx jetstream.ConsumeContext
}

// NewConsumer creates (or reuses) a durable consumer on the given stream and
// starts delivering messages to the handler.
func NewConsumer(ctx context.Context, client *Client, config ConsumerConfig, handler MessageHandler) (*Consumer, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}

	stream, err := client.js.Stream(ctx, config.StreamName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream %s: %w", config.StreamName, err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       config.ConsumerName,
		FilterSubject: config.FilterSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    config.MaxDeliver,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer %s: %w", config.ConsumerName, err)
	}

	consumeCtx, err := consumer.Consume(func(msg jetstream.Msg) {
		if err := handler(msg); err != nil {
			if errors.Is(err, ErrNonRetryable) {
				logger.Error("Terminating unprocessable message",
					logger.String("subject", msg.Subject()),
					logger.Err(err))
				if termErr := msg.Term(); termErr != nil {
					logger.Error("Failed to TERM message", logger.Err(termErr))
				}
				return
			}

			logger.Error("Error processing message",
				logger.String("subject", msg.Subject()),
				logger.Err(err))
			if nakErr := msg.Nak(); nakErr != nil {
				logger.Error("Failed to NAK message", logger.Err(nakErr))
			}
			return
		}

		if ackErr := msg.Ack(); ackErr != nil {
			logger.Error("Failed to ACK message", logger.Err(ackErr))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	return &Consumer{consumer: consumer, consumeCtx: consumeCtx}, nil
}

// Stop gracefully stops message delivery
func (c *Consumer) Stop() {
	if c.consumeCtx != nil {
		c.consumeCtx.Stop()
		c.consumeCtx = nil
	}
}

// IsActive returns true if the consumer is actively consuming messages
func (c *Consumer) IsActive() bool {
	return c.consumeCtx != nil
}
