package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shenikar/disaster_incident_system/internal/config"
)

// KafkaPublisher пишет события инцидентов в топик Kafka
type KafkaPublisher struct {
	writer *kafkago.Writer
}

// NewKafkaPublisher создает продюсера для настроенного топика
func NewKafkaPublisher(cfg *config.Config) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &KafkaPublisher{writer: w}
}

// Publish отправляет событие; ключ сообщения - id инцидента,
// чтобы события одного инцидента попадали в одну партицию по порядку
func (p *KafkaPublisher) Publish(ctx context.Context, event IncidentEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish incident event to Kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(event IncidentEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize incident event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.IncidentID.String()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "severity_level", Value: []byte(event.SeverityLevel)},
			{Key: "occurred_at", Value: []byte(event.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
