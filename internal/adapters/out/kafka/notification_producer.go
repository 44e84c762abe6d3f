// Package kafka publishes stored notifications to a Kafka topic so other
// services can follow order activity.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"

	"github.com/segmentio/kafka-go"
)

const producerName = "jewelry-orders"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope wraps every published notification.
type Envelope struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	OccurredAt time.Time `json:"occurredAt"`
	Producer   string    `json:"producer"`
	Payload    Payload   `json:"payload"`
}

type Payload struct {
	Actor       kernel.Actor               `json:"actor"`
	Entity      notification.EntityRef     `json:"entity"`
	Audience    []kernel.Role              `json:"audience"`
	Recipients  []string                   `json:"recipients,omitempty"`
	AddressedTo string                     `json:"addressedTo,omitempty"`
	Originator  string                     `json:"originator,omitempty"`
	Title       string                     `json:"title"`
	Message     string                     `json:"message"`
	Changes     []notification.FieldChange `json:"changes,omitempty"`
	Metadata    map[string]string          `json:"metadata,omitempty"`
}

// NotificationProducer implements ports.NotificationPublisher. Messages are
// keyed by entity id so events of one order stay in one partition.
type NotificationProducer struct {
	writer messageWriter
}

func NewNotificationProducer(brokers []string, topic string) *NotificationProducer {
	return newNotificationProducer(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	})
}

func newNotificationProducer(writer messageWriter) *NotificationProducer {
	return &NotificationProducer{writer: writer}
}

func NewEnvelope(n *notification.Notification) Envelope {
	return Envelope{
		EventID:    n.ID().String(),
		EventType:  n.EventType().String(),
		OccurredAt: n.Timestamp(),
		Producer:   producerName,
		Payload: Payload{
			Actor:       n.Actor(),
			Entity:      n.Entity(),
			Audience:    n.Audience(),
			Recipients:  n.Recipients(),
			AddressedTo: n.AddressedTo(),
			Originator:  n.Originator(),
			Title:       n.Title(),
			Message:     n.Message(),
			Changes:     n.Changes(),
			Metadata:    n.Metadata(),
		},
	}
}

func (p *NotificationProducer) Publish(ctx context.Context, n *notification.Notification) error {
	value, err := json.Marshal(NewEnvelope(n))
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", n.ID(), err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.Entity().ID),
		Value: value,
		Time:  n.Timestamp(),
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(n.EventType().String())},
		},
	})
	if err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID(), err)
	}
	return nil
}

func (p *NotificationProducer) Close() error {
	return p.writer.Close()
}
