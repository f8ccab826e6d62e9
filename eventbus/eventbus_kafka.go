package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"voxnote/events"
	"voxnote/logger"
)

// KafkaPublisher publishes outcome events through a confluent-kafka-go
// producer.
type KafkaPublisher struct {
	producer *kafka.Producer
	brokers  string
}

// NewKafkaPublisher initializes the producer.
func NewKafkaPublisher(brokers string) (*KafkaPublisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	// drain delivery reports and producer errors
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Log.Errorf("event delivery failed %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				logger.Log.Errorf("kafka error: %v", ev)
			}
		}
	}()

	return &KafkaPublisher{producer: p, brokers: brokers}, nil
}

// Close flushes pending messages and shuts the producer down.
func (k *KafkaPublisher) Close() {
	if k.producer != nil {
		if remaining := k.producer.Flush(5000); remaining > 0 {
			logger.Log.Warnf("%d events still pending after flush", remaining)
		}
		k.producer.Close()
		logger.Log.Info("kafka producer closed")
	}
}

// Publish serializes event and produces it to the article events topic,
// waiting for the delivery report.
func (k *KafkaPublisher) Publish(ctx context.Context, event interface{}) error {
	payload, eventType, err := events.SerializeEvent(event)
	if err != nil {
		return err
	}

	var base struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &base); err != nil {
		return fmt.Errorf("failed to read event id: %w", err)
	}

	data, err := json.Marshal(envelope{ID: base.ID, Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	topic := TopicArticleEvents
	deliveryChan := make(chan kafka.Event, 1)
	defer close(deliveryChan)

	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(base.ID),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to produce event: %w", err)
	}

	select {
	case ev := <-deliveryChan:
		m := ev.(*kafka.Message)
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("event delivery failed: %w", m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}
