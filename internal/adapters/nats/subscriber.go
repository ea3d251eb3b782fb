package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/unaigarro/mapstamp/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := connect(url)
	if err != nil {
		return nil, err
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeSnapshotRequests delivers queued snapshot requests to the
// handler. A handler error Naks the message for redelivery, up to the
// MaxDeliver limit.
func (s *Subscriber) SubscribeSnapshotRequests(ctx context.Context, handler func(ctx context.Context, req *domain.SnapshotRequest) error) error {
	sub, err := s.js.Subscribe(SubjectSnapshotRequested, func(msg *nats.Msg) {
		var req domain.SnapshotRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &req); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("snapshot-worker"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
