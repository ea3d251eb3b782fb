package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/unaigarro/mapstamp/internal/core/domain"
)

// Subjects used by the snapshot pipeline.
const (
	SubjectSnapshotRequested = "maps.snapshot.requested"
	SubjectSnapshotStored    = "maps.snapshot.stored"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS, enables JetStream, and ensures the
// snapshot streams exist.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := connect(url)
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	streams := []nats.StreamConfig{
		{
			// Work queue: each request is processed by exactly one worker.
			Name:      "SNAPSHOT_REQUESTS",
			Subjects:  []string{SubjectSnapshotRequested},
			Retention: nats.WorkQueuePolicy,
			MaxAge:    1 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			// Fan-out: stored events feed the WebSocket relay and anything else listening.
			Name:      "SNAPSHOT_EVENTS",
			Subjects:  []string{SubjectSnapshotStored},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil && err != nats.ErrStreamNameAlreadyInUse {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishSnapshotRequested(ctx context.Context, req *domain.SnapshotRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal snapshot request: %w", err)
	}
	_, err = p.js.Publish(SubjectSnapshotRequested, data, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishSnapshotStored(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = p.js.Publish(SubjectSnapshotStored, data, nats.Context(ctx))
	return err
}

// Close drains the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn returns a plain NATS connection for the WebSocket relay.
func RawConn(url string) (*nats.Conn, error) {
	return connect(url)
}

func connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}
