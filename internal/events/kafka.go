package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher produces transfer events to a Kafka topic, keyed by token id
// so per-token history stays ordered within a partition.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

type KafkaOption func(*KafkaPublisher)

func WithKafkaLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

// NewKafka connects to the brokers and ensures the topic exists. Topic
// creation conflicts are fine: another instance won the race.
func NewKafka(ctx context.Context, brokers []string, topic string, opts ...KafkaOption) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerLinger(0),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(ctx, 1, 1, nil, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ensure topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, fmt.Errorf("ensure topic %s: %w", topic, resp.Err)
	}

	p := &KafkaPublisher{client: client, topic: topic, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Emit produces the event asynchronously. Delivery failures are logged, never
// surfaced: the ledger has already committed by the time this runs.
func (p *KafkaPublisher) Emit(ctx context.Context, event Transfer) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transfer event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.TokenID.String()),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(r *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("transfer event delivery failed",
				"token_id", event.TokenID.String(),
				"to", event.ToHex,
				"error", err,
			)
		}
	})
	return nil
}

// Flush drains pending produce buffers; call before shutdown.
func (p *KafkaPublisher) Flush(ctx context.Context) error {
	return p.client.Flush(ctx)
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}
