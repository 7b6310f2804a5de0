package events

import (
	"context"
	"testing"

	"shopsvc/internal/logger"
)

func TestNewPublisherWithoutBrokersIsNil(t *testing.T) {
	p := NewPublisher("", "stock-events", logger.New("error"))
	if p != nil {
		t.Fatal("expected nil publisher when no brokers are configured")
	}
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher

	err := p.PublishStockEvent(context.Background(), StockEvent{
		Type:      "stock.set",
		ProductID: "456",
	})
	if err != nil {
		t.Fatalf("nil publisher returned %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nil close returned %v", err)
	}
}
