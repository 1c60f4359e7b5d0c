package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"realtime_chat_service/internal/chat/domain"

	"github.com/segmentio/kafka-go"
)

// EventType message event stream type
type EventType string

const (
	// EventMessageCreated a message was persisted
	EventMessageCreated EventType = "message_created"
	// EventMessagesSeen a viewer marked a conversation seen
	EventMessagesSeen EventType = "messages_seen"
)

// MessageEvent one record of the message event stream, keyed by conversation id
type MessageEvent struct {
	Type           EventType             `json:"type"`
	ConversationID domain.ConversationID `json:"conversation_id"`
	Message        *domain.Message       `json:"message,omitempty"`
	ViewerID       string                `json:"viewer_id,omitempty"`
	SeenCount      int64                 `json:"seen_count,omitempty"`
	At             time.Time             `json:"at"`
}

// EventPublisher publish message events for downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, event MessageEvent) error
	Close() error
}

// kafkaWriter the part of *kafka.Writer the publisher uses
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaEventPublisher struct {
	writer kafkaWriter
}

// NewKafkaEventPublisher publish on a kafka writer (see database.NewKafkaWriter)
func NewKafkaEventPublisher(writer kafkaWriter) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, event MessageEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ConversationID),
		Value: value,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
}

func (p *kafkaEventPublisher) Close() error {
	return p.writer.Close()
}

type nopEventPublisher struct{}

// NewNopEventPublisher publisher used when kafka is disabled
func NewNopEventPublisher() EventPublisher {
	return nopEventPublisher{}
}

func (nopEventPublisher) Publish(context.Context, MessageEvent) error { return nil }

func (nopEventPublisher) Close() error { return nil }
