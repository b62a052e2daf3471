package booking

import (
	"time"

	"guesthouse/internal/domain"
)

type CreateReservationRequest struct {
	RoomID       string    `json:"room_id" binding:"required"`
	GuestID      string    `json:"guest_id" binding:"required"`
	CheckInDate  time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate time.Time `json:"check_out_date" binding:"required"`
}

func (r CreateReservationRequest) Stay() domain.Interval {
	return domain.Interval{Start: r.CheckInDate.UTC(), End: r.CheckOutDate.UTC()}
}

// UpdateReservationRequest replaces all four mutable fields.
type UpdateReservationRequest = CreateReservationRequest

type CheckoutRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// Result is the outcome of a reservation mutation. Message is the text
// shown to the caller.
type Result struct {
	Reservation *domain.Reservation `json:"reservation,omitempty"`
	Message     string              `json:"message"`
}

type AvailabilityResponse struct {
	RoomID       string    `json:"room_id"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Available    bool      `json:"available"`
}
