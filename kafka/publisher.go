package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/velmar/catalog-sync/internal/catalog/usecase/command"
	"github.com/velmar/catalog-sync/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishSyncCompleted publishes a stock sync completed event with tracing
func (p *Publisher) PublishSyncCompleted(ctx context.Context, event StockSyncCompletedEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.stock_sync_completed",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicStockSyncResults),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeStockSyncCompleted),
			attribute.String("sync.run_id", event.RunID),
			attribute.Int("sync.received", event.Received),
			attribute.Int("sync.upserted", event.Upserted),
		),
	)
	defer span.End()

	// Set event metadata
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = EventTypeStockSyncCompleted
	event.Timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", event.EventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event_type"),
			Value: []byte(EventTypeStockSyncCompleted),
		},
		{
			Key:   []byte("event_id"),
			Value: []byte(event.EventID),
		},
	}

	// Add trace context to headers
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   TopicStockSyncResults,
		Key:     sarama.StringEncoder(fmt.Sprintf("sync_%s", event.RunID)),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", TopicStockSyncResults).
			Str("run_id", event.RunID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("topic", TopicStockSyncResults).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("run_id", event.RunID).
		Int("received", event.Received).
		Int("upserted", event.Upserted).
		Int("failed", event.Failed).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Stock sync completed event published")

	return nil
}

// NotifySyncCompleted implements command.CompletionNotifier on top of
// PublishSyncCompleted so sync runs can announce their results downstream.
func (p *Publisher) NotifySyncCompleted(ctx context.Context, result command.SyncBatchResult) error {
	return p.PublishSyncCompleted(ctx, StockSyncCompletedEvent{
		RunID:    result.RunID,
		Received: result.Received,
		Accepted: result.Accepted,
		Upserted: result.Upserted,
		Failed:   result.Failed,
	})
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
