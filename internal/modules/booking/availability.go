package booking

import (
	"context"
	"fmt"

	"guesthouse/internal/domain"
)

// ReservationLister is the only store capability the availability engine
// needs: every reservation ever held against a room.
type ReservationLister interface {
	ListByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error)
}

type Availability struct {
	reservations ReservationLister
}

func NewAvailability(reservations ReservationLister) *Availability {
	return &Availability{reservations: reservations}
}

// IsRoomFree reports whether no reservation on roomID overlaps candidate.
// The reservation named by excludeID is skipped so that an update does not
// collide with the record it is replacing; pass "" to exclude nothing.
func (a *Availability) IsRoomFree(ctx context.Context, roomID string, candidate domain.Interval, excludeID string) (bool, error) {
	conflicts, err := a.Conflicts(ctx, roomID, candidate, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// CheckRoomAvailability is the read-only probe: is the room free for
// exactly this interval right now.
func (a *Availability) CheckRoomAvailability(ctx context.Context, roomID string, candidate domain.Interval) (bool, error) {
	return a.IsRoomFree(ctx, roomID, candidate, "")
}

// Conflicts returns the reservations on roomID that overlap candidate.
func (a *Availability) Conflicts(ctx context.Context, roomID string, candidate domain.Interval, excludeID string) ([]domain.Reservation, error) {
	existing, err := a.reservations.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list reservations for room %s: %w", roomID, err)
	}

	var out []domain.Reservation
	for _, r := range existing {
		if r.RoomID != roomID || (excludeID != "" && r.ID == excludeID) {
			continue
		}
		if domain.Overlaps(candidate, r.Stay()) {
			out = append(out, r)
		}
	}
	return out, nil
}
