package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Producer streams event lifecycle messages. One writer handles all topics;
// each message names its topic explicitly.
type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer}
}

func (p *Producer) Publish(topic, key string, value []byte) error {
	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: value,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
