package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"shopsvc/internal/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// StockEvent describes a stock mutation performed against the shop.
type StockEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // "stock.adjusted" or "stock.set"
	ProductID   string    `json:"product_id"`
	VariantID   string    `json:"variant_id"`
	Identifier  string    `json:"identifier"`
	Kind        string    `json:"kind"`
	OldQuantity int       `json:"old_quantity,omitempty"`
	NewQuantity int       `json:"new_quantity,omitempty"`
	Delta       int       `json:"delta,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher emits stock events to Kafka. A nil Publisher is a no-op, so
// event emission stays optional without call-site branching.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers, topic string, log *logger.Logger) *Publisher {
	if brokers == "" {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}

	return &Publisher{
		writer: writer,
		logger: log,
	}
}

func (p *Publisher) PublishStockEvent(ctx context.Context, event StockEvent) error {
	if p == nil {
		return nil
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProductID),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to publish %s event for product %s: %v", event.Type, event.ProductID, err)
		return err
	}

	p.logger.Debug("Published %s event %s", event.Type, event.ID)
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
