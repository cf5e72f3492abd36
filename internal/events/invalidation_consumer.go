package events

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Invalidator drops cached reads for one resource's key family.
type Invalidator interface {
	InvalidateResource(ctx context.Context, resource string) error
}

// InvalidationConsumer listens to resource change events and invalidates the
// corresponding cache key family.
type InvalidationConsumer struct {
	reader      *kafkago.Reader
	invalidator Invalidator
	logger      *zap.Logger
}

// NewInvalidationConsumer creates a consumer in the given consumer group.
func NewInvalidationConsumer(
	brokers []string,
	groupID string,
	invalidator Invalidator,
	logger *zap.Logger,
) *InvalidationConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   TopicResourceChanges,
	})
	return &InvalidationConsumer{
		reader:      reader,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Start consumes change events until the context is cancelled.
func (c *InvalidationConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return context.Canceled
			}
			return err
		}
		c.handleMessage(ctx, msg)
	}
}

// Close closes the underlying Kafka reader.
func (c *InvalidationConsumer) Close() error {
	return c.reader.Close()
}

func (c *InvalidationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) {
	var evt ResourceChanged
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		c.logger.Error("failed to parse resource change event",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return // don't retry malformed messages
	}

	if err := c.invalidator.InvalidateResource(ctx, evt.Resource); err != nil {
		c.logger.Error("failed to invalidate cache for resource",
			zap.String("resource", evt.Resource),
			zap.Error(err),
		)
		return
	}

	c.logger.Debug("cache invalidated",
		zap.String("resource", evt.Resource),
		zap.String("op", string(evt.Op)),
	)
}
