// Package events fans reservation lifecycle changes out to live
// websocket clients and, when configured, to NATS.
package events

import (
	"context"
	"errors"
	"time"
)

const (
	ReservationCreated    = "reservation.created"
	ReservationUpdated    = "reservation.updated"
	ReservationDeleted    = "reservation.deleted"
	ReservationCheckedOut = "reservation.checked_out"
)

type Event struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	HouseID       string    `json:"house_id,omitempty"`
	RoomID        string    `json:"room_id"`
	At            time.Time `json:"at"`
	Payload       any       `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
