package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"ruru-backoffice/internal/audit"
	"ruru-backoffice/internal/logx"
)

var newSyncProducer = sarama.NewSyncProducer

// Producer publishes audit events to Kafka.
type Producer struct {
	logger   logx.Logger
	producer sarama.SyncProducer
	topic    string
}

// NewProducer creates a sync producer for topic.
func NewProducer(logger logx.Logger, brokers []string, topic string) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Producer{logger: logger, producer: p, topic: topic}, nil
}

// Publish sends e keyed by its target so events on one entity stay ordered.
func (p *Producer) Publish(_ context.Context, e audit.Event) error {
	b, err := json.Marshal(FromDomain(e))
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.Resource + ":" + e.TargetID),
		Value: sarama.ByteEncoder(b),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish audit event %s: %w", e.ID, err)
	}
	p.logger.Debug("audit event published",
		logx.String("id", e.ID),
		logx.Int("partition", int(partition)),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close closes the underlying producer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
