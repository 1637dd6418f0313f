package event

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cartstream/analytics-sync/pkg/log"
)

// EmitterConfig configures the producer handle.
type EmitterConfig struct {
	Brokers  string `mapstructure:"brokers"`
	ClientID string `mapstructure:"client_id"`
	// Partitions used when EnsureTopics creates missing topics.
	Partitions        int `mapstructure:"partitions"`
	ReplicationFactor int `mapstructure:"replication_factor"`
}

// Emitter publishes domain-event envelopes to Kafka, keyed by entity id so
// all events for one entity land on the same partition.
//
// Emission discipline: call Emit only after the upstream write that produced
// the payload has durably committed. The emitter cannot verify this; the
// consumer side assumes it.
type Emitter struct {
	producer *kafka.Producer
	config   EmitterConfig
	logger   zerolog.Logger
	doneCh   chan struct{}
}

// NewEmitter creates a Kafka producer for domain events.
func NewEmitter(cfg EmitterConfig, logger zerolog.Logger) (*Emitter, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Brokers,
		"client.id":         cfg.ClientID,
		"acks":              "all",
		"linger.ms":         5,
		"compression.type":  "snappy",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	e := &Emitter{
		producer: p,
		config:   cfg,
		logger:   logger,
		doneCh:   make(chan struct{}),
	}

	go e.deliveryReportHandler()

	return e, nil
}

// Emit publishes one envelope for a committed upstream write. The entity id
// becomes the partition key; event_id and the emission timestamp are
// generated here.
func (e *Emitter) Emit(eventType Type, entityID string, data any) error {
	topic, ok := TopicFor(eventType)
	if !ok {
		return fmt.Errorf("no topic for event type %q", eventType)
	}

	env, err := NewEnvelope(eventType, uuid.NewString(), entityID, Time{time.Now().UTC()}, data)
	if err != nil {
		return err
	}

	value, err := env.Encode()
	if err != nil {
		return err
	}

	topicName := string(topic)
	err = e.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topicName, Partition: kafka.PartitionAny},
		Key:            []byte(entityID),
		Value:          value,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to produce %s for %s: %w", eventType, entityID, err)
	}

	e.logger.Debug().
		Str(log.FieldEventType, string(eventType)).
		Str(log.FieldEventID, env.EventID).
		Str(log.FieldEntityID, entityID).
		Msg("event queued")

	return nil
}

// deliveryReportHandler drains the producer event channel and logs failed
// deliveries. Runs until Close terminates the producer.
func (e *Emitter) deliveryReportHandler() {
	defer close(e.doneCh)

	for ev := range e.producer.Events() {
		switch m := ev.(type) {
		case *kafka.Message:
			if m.TopicPartition.Error != nil {
				e.logger.Error().
					Err(m.TopicPartition.Error).
					Str(log.FieldTopic, safeTopic(m)).
					Str("key", string(m.Key)).
					Msg("event delivery failed")
			}
		case kafka.Error:
			e.logger.Error().
				Err(m).
				Bool("fatal", m.IsFatal()).
				Msg("kafka producer error")
		}
	}
}

// EnsureTopics creates the domain topics if they do not exist yet, so a
// fresh local stack comes up without manual topic creation.
func (e *Emitter) EnsureTopics(ctx context.Context) error {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": e.config.Brokers,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	partitions := e.config.Partitions
	if partitions <= 0 {
		partitions = 4
	}
	replication := e.config.ReplicationFactor
	if replication <= 0 {
		replication = 1
	}

	specs := make([]kafka.TopicSpecification, 0, len(Topics()))
	for _, topic := range Topics() {
		specs = append(specs, kafka.TopicSpecification{
			Topic:             topic,
			NumPartitions:     partitions,
			ReplicationFactor: replication,
		})
	}

	results, err := admin.CreateTopics(ctx, specs)
	if err != nil {
		return fmt.Errorf("failed to create topics: %w", err)
	}

	for _, res := range results {
		if res.Error.Code() != kafka.ErrNoError && res.Error.Code() != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("failed to create topic %s: %w", res.Topic, res.Error)
		}
	}

	return nil
}

// Flush waits for queued messages to be delivered and returns the number
// still pending when the timeout expires.
func (e *Emitter) Flush(timeout time.Duration) int {
	return e.producer.Flush(int(timeout.Milliseconds()))
}

// Close flushes pending messages and releases the producer.
func (e *Emitter) Close() {
	e.producer.Flush(10_000)
	e.producer.Close()
	<-e.doneCh
}

func safeTopic(m *kafka.Message) string {
	if m.TopicPartition.Topic != nil {
		return *m.TopicPartition.Topic
	}
	return ""
}
