package services

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/events"
	"go.uber.org/zap"
)

type captureSubscriber struct {
	stream  string
	handler func(events.Event)
}

func (c *captureSubscriber) Subscribe(ctx context.Context, stream string, handler func(events.Event)) error {
	c.stream = stream
	c.handler = handler
	return nil
}

func TestTaxonomyService_SubscribeInvalidation(t *testing.T) {
	// The redis client points nowhere; the Del inside the handler fails and
	// must only be logged.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()
	svc := NewTaxonomyService(nil, nil, rdb, &config.Config{}, zap.NewNop())

	sub := &captureSubscriber{}
	if err := svc.SubscribeInvalidation(context.Background(), sub); err != nil {
		t.Fatal(err)
	}
	if sub.stream != events.StreamObservations {
		t.Errorf("subscribed to %q, want %q", sub.stream, events.StreamObservations)
	}
	if sub.handler == nil {
		t.Fatal("no handler registered")
	}

	sub.handler(events.Event{Type: events.EventObservationModerated})
}
