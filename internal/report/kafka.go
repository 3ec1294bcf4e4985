package report

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Kafka publishes findings to a topic for downstream presentation systems.
// Production is asynchronous; delivery failures are logged, never surfaced to
// the reporting check.
type Kafka struct {
	client *kgo.Client
	topic  string
	runID  string
	log    *slog.Logger
}

// kafkaEvent is the wire form of a finding, annotated with the run it
// belongs to.
type kafkaEvent struct {
	RunID string `json:"run_id"`
	Finding
}

// KafkaOption configures a Kafka sink.
type KafkaOption func(*Kafka)

// WithKafkaLogger sets the logger used for delivery failures.
func WithKafkaLogger(log *slog.Logger) KafkaOption {
	return func(k *Kafka) {
		if log != nil {
			k.log = log
		}
	}
}

// NewKafka connects a producer to brokers and makes sure topic exists. A
// topic that already exists is not an error.
func NewKafka(ctx context.Context, brokers []string, topic, runID string, opts ...KafkaOption) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, err
	}
	admin := kadm.NewClient(client)
	if _, err := admin.CreateTopic(ctx, 1, 1, nil, topic); err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		client.Close()
		return nil, err
	}
	k := &Kafka{client: client, topic: topic, runID: runID, log: slog.Default()}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

func (k *Kafka) Problem(ctx context.Context, subject, message string) {
	k.publish(ctx, Finding{Severity: SeverityProblem, Subject: subject, Message: message, At: time.Now()})
}

func (k *Kafka) OK(ctx context.Context, subject, message string) {
	k.publish(ctx, Finding{Severity: SeverityOK, Subject: subject, Message: message, At: time.Now()})
}

func (k *Kafka) publish(ctx context.Context, f Finding) {
	payload, err := json.Marshal(kafkaEvent{RunID: k.runID, Finding: f})
	if err != nil {
		k.log.ErrorContext(ctx, "marshal finding", slog.String("subject", f.Subject), slog.Any("error", err))
		return
	}
	record := &kgo.Record{Topic: k.topic, Key: []byte(f.Subject), Value: payload}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			k.log.Error("publish finding", slog.String("subject", f.Subject), slog.Any("error", err))
		}
	})
}

// Close flushes pending findings and releases the producer.
func (k *Kafka) Close(ctx context.Context) error {
	defer k.client.Close()
	return k.client.Flush(ctx)
}
