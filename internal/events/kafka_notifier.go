package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is the slice of kafka-go's Writer the notifier needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// KafkaNotifier publishes ResourceChanged events to the changes topic,
// keyed by resource so consumers see per-resource ordering.
type KafkaNotifier struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaNotifier creates a notifier writing to the given brokers.
func NewKafkaNotifier(brokers []string, logger *zap.Logger) *KafkaNotifier {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        TopicResourceChanges,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaNotifier{writer: writer, logger: logger}
}

// newKafkaNotifierWithWriter is used by tests to inject a recording writer.
func newKafkaNotifierWithWriter(writer messageWriter, logger *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, logger: logger}
}

// ResourceChanged publishes the event. Failures are logged, not returned:
// the mutation already committed and must not be reported as failed.
func (n *KafkaNotifier) ResourceChanged(ctx context.Context, evt ResourceChanged) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		n.logger.Error("failed to marshal resource change event",
			zap.String("resource", evt.Resource),
			zap.Error(err),
		)
		return
	}

	msg := kafkago.Message{
		Key:   []byte(evt.Resource),
		Value: payload,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.logger.Error("failed to publish resource change event",
			zap.String("resource", evt.Resource),
			zap.String("op", string(evt.Op)),
			zap.Error(err),
		)
		return
	}

	n.logger.Debug("resource change published",
		zap.String("resource", evt.Resource),
		zap.String("op", string(evt.Op)),
		zap.Int64("id", evt.ID),
	)
}

// Close closes the underlying writer if it is closable.
func (n *KafkaNotifier) Close() error {
	if closer, ok := n.writer.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
