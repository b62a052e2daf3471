package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const subjectPrefix = "guesthouse."

type NATSPublisher struct {
	conn *nats.Conn
	log  *zap.Logger
}

func NewNATSPublisher(url string, log *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("guesthouse-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, log: log}, nil
}

// Subject maps an event type onto its NATS subject.
func Subject(eventType string) string {
	return subjectPrefix + eventType
}

func (n *NATSPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	subject := Subject(e.Type)
	n.log.Debug("publishing event", zap.String("subject", subject), zap.String("reservation_id", e.ReservationID))
	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	return n.conn.Drain()
}
