// Package consumer runs the Kafka poll loop that drives replication. Offsets
// are stored only after a message is fully applied (or skipped by policy), so
// a crash mid-apply leads to redelivery rather than loss.
package consumer

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/cartstream/analytics-sync/internal/config"
	"github.com/cartstream/analytics-sync/internal/handler"
	"github.com/cartstream/analytics-sync/pkg/event"
	"github.com/cartstream/analytics-sync/pkg/log"
)

// Consumer consumes domain events from Kafka and applies them to the
// analytics replica through the handler registry.
type Consumer struct {
	consumer *kafka.Consumer
	groupID  string
	registry handler.Registry
}

// New creates a new Kafka consumer. Offset storage is manual: auto-commit
// periodically flushes whatever offsets have been stored, and offsets are
// stored per message only after it is handled.
func New(cfg config.KafkaConfig, registry handler.Registry) (*Consumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":        cfg.Brokers,
		"group.id":                 cfg.GroupID,
		"auto.offset.reset":        cfg.AutoOffsetReset,
		"enable.auto.commit":       true,
		"enable.auto.offset.store": false,
		"auto.commit.interval.ms":  5000,
		"max.poll.interval.ms":     cfg.MaxPollIntervalMs,
		"session.timeout.ms":       cfg.SessionTimeoutMs,
		"heartbeat.interval.ms":    cfg.HeartbeatIntervalMs,
		"fetch.min.bytes":          cfg.FetchMinBytes,
		"fetch.wait.max.ms":        cfg.FetchMaxWaitMs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	return &Consumer{
		consumer: c,
		groupID:  cfg.GroupID,
		registry: registry,
	}, nil
}

// Run starts consuming messages from all domain topics until ctx is
// cancelled or a fatal broker error occurs.
func (c *Consumer) Run(ctx context.Context) error {
	topics := event.Topics()
	if err := c.consumer.SubscribeTopics(topics, nil); err != nil {
		return fmt.Errorf("failed to subscribe to topics %v: %w", topics, err)
	}

	log.L().Info().
		Strs("topics", topics).
		Str("group", c.groupID).
		Msg("kafka consumer started")

	for {
		select {
		case <-ctx.Done():
			log.L().Info().Msg("kafka consumer stopping")
			return nil
		default:
		}

		ev := c.consumer.Poll(500)
		if ev == nil {
			continue
		}

		switch e := ev.(type) {
		case *kafka.Message:
			if c.dispatch(ctx, e) {
				if _, err := c.consumer.StoreMessage(e); err != nil {
					log.L().Error().Err(err).
						Str(log.FieldTopic, topicOf(e)).
						Int32(log.FieldPartition, e.TopicPartition.Partition).
						Msg("failed to store offset")
				}
			}
		case kafka.Error:
			if e.IsFatal() {
				return fmt.Errorf("fatal kafka error: %w", e)
			}
			log.L().Warn().
				Int("code", int(e.Code())).
				Msgf("kafka error: %v", e)
		case kafka.OffsetsCommitted:
			// Normal auto-commit acknowledgement
		default:
			// Ignore other events (rebalance, stats, etc.)
		}
	}
}

// dispatch applies one message and reports whether its offset may be
// stored. Malformed envelopes and unknown event kinds are logged and
// skipped (true); handler failures are retried via redelivery (false).
func (c *Consumer) dispatch(ctx context.Context, msg *kafka.Message) bool {
	topic := topicOf(msg)

	env, err := event.Decode(msg.Value)
	if err != nil {
		log.L().Warn().Err(err).
			Str(log.FieldTopic, topic).
			Int32(log.FieldPartition, msg.TopicPartition.Partition).
			Int64(log.FieldOffset, int64(msg.TopicPartition.Offset)).
			Msg("skipping malformed envelope")
		return true
	}

	logger := log.L().With().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEventID, env.EventID).
		Str(log.FieldEntityID, env.EntityID).
		Str(log.FieldTopic, topic).
		Int32(log.FieldPartition, msg.TopicPartition.Partition).
		Int64(log.FieldOffset, int64(msg.TopicPartition.Offset)).
		Logger()
	ctx = log.WithLogger(ctx, logger)

	// Producers never publish across domains; a mismatch here means a
	// misrouted or forged message.
	if !event.Topic(topic).Contains(env.Type) {
		logger.Warn().Msg("skipping event type outside its topic")
		return true
	}

	fn, ok := c.registry[env.Type]
	if !ok {
		logger.Warn().Msg("skipping unknown event type")
		return true
	}

	if err := fn(ctx, env); err != nil {
		logger.Error().Err(err).Msg("handler failed, offset not stored")
		return false
	}
	return true
}

// Close closes the Kafka consumer, committing stored offsets first.
func (c *Consumer) Close() error {
	log.L().Info().Msg("closing kafka consumer")
	return c.consumer.Close()
}

func topicOf(msg *kafka.Message) string {
	if msg.TopicPartition.Topic == nil {
		return ""
	}
	return *msg.TopicPartition.Topic
}
