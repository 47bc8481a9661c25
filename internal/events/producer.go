package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/khmer25/shop-api/config"
	"github.com/khmer25/shop-api/pkg/circuit"
	"github.com/khmer25/shop-api/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

// Producer publishes domain events to Kafka. A nil or disabled producer
// is safe to call: publishing becomes a no-op so a missing broker never
// fails a request. Writes go through a circuit breaker so a dead broker
// fails fast instead of making every request wait out the write timeout.
type Producer struct {
	writer  *kafka.Writer
	breaker *circuit.Breaker
}

type envelope struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func NewProducer(cfg config.KafkaConfig) *Producer {
	if !cfg.Enabled {
		return &Producer{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}

	if cfg.Username != "" {
		writer.Transport = &kafka.Transport{
			SASL: plain.Mechanism{
				Username: cfg.Username,
				Password: cfg.Password,
			},
		}
	}

	logger.GetLogger().Info("Kafka producer initialized",
		zap.String("broker", cfg.Broker),
		zap.String("topic", cfg.Topic),
	)

	return &Producer{
		writer:  writer,
		breaker: circuit.NewBreaker("kafka", circuit.DefaultConfig(), logger.GetLogger()),
	}
}

func (p *Producer) Publish(ctx context.Context, eventType string, payload map[string]any) error {
	if p == nil || p.writer == nil {
		return nil
	}

	value, err := json.Marshal(envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.breaker.Execute(func() error {
		return p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(eventType),
			Value: value,
			Time:  time.Now(),
		})
	})
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
