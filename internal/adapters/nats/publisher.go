package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// refreshSubject is the subject prefix for view refresh events. The final
// token is the view name, so relays can subscribe to one view or all.
const refreshSubject = "geowatch.refresh."

// RefreshEvent is the wire payload of a view refresh.
type RefreshEvent struct {
	View string    `json:"view"`
	At   time.Time `json:"at"`
}

// Publisher implements ports.RefreshPublisher over plain NATS pub/sub.
// Refresh events are fire-and-forget hints to re-fetch; a missed one costs a
// stale list until the next mutation, so no JetStream retention is involved.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// PublishRefresh announces that the named view's data changed.
func (p *Publisher) PublishRefresh(ctx context.Context, view string) error {
	data, err := json.Marshal(RefreshEvent{View: view, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	return p.conn.Publish(refreshSubject+view, data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (the WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
