package database

import (
	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter create an async Kafka writer; messages with the same key land on one partition
func NewKafkaWriter(k KafkaConnection) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(k.Brokers...),
		Topic:                  k.Topic,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		AllowAutoTopicCreation: true,
	}
}
