package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guesthouse/internal/domain"
	"guesthouse/internal/events"
	"guesthouse/internal/pkg/clock"
	"guesthouse/internal/pkg/lock"
	"guesthouse/internal/repository"
)

// lockKey is shared by every reservation mutation: an availability check
// and the write that depends on it must not interleave with another one.
const lockKey = "reservations"

// Service is the reservation lifecycle manager. It keeps Room.IsBooked in
// step with reservation creates, updates, deletes and checkouts.
type Service struct {
	store  *repository.Store
	locker lock.Locker
	events events.Publisher
	clock  clock.Clock
	log    *zap.Logger
	newID  func() string
}

func NewService(
	store *repository.Store,
	locker lock.Locker,
	publisher events.Publisher,
	clk clock.Clock,
	log *zap.Logger,
) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		store:  store,
		locker: locker,
		events: publisher,
		clock:  clk,
		log:    log,
		newID:  uuid.NewString,
	}
}

// Availability returns the engine bound to the committed store.
func (s *Service) Availability() *Availability {
	return NewAvailability(s.store.Reservations)
}

func (s *Service) CheckRoomAvailability(ctx context.Context, roomID string, stay domain.Interval) (*AvailabilityResponse, error) {
	if !stay.Valid() {
		return nil, domain.Validation(MsgInvalidStay)
	}
	if _, err := s.store.Rooms.GetByID(ctx, roomID); err != nil {
		return nil, notFoundAs(err, MsgRoomNotFound, "get room")
	}
	free, err := s.Availability().CheckRoomAvailability(ctx, roomID, stay)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResponse{
		RoomID:       roomID,
		CheckInDate:  stay.Start,
		CheckOutDate: stay.End,
		Available:    free,
	}, nil
}

// Create books a room for a guest. The room and guest must exist and the
// stay must not overlap any other reservation of the room.
func (s *Service) Create(ctx context.Context, req CreateReservationRequest) (*Result, error) {
	stay := req.Stay()
	if !stay.Valid() {
		return nil, domain.Validation(MsgInvalidStay)
	}

	var res *domain.Reservation
	err := s.mutate(ctx, func(tx *repository.Store) error {
		room, err := s.bookableRoom(ctx, tx, req.RoomID, req.GuestID, stay, "")
		if err != nil {
			return err
		}

		res = &domain.Reservation{
			ID:           s.newID(),
			HouseID:      room.HouseID,
			RoomID:       room.ID,
			GuestID:      req.GuestID,
			CheckInDate:  stay.Start,
			CheckOutDate: stay.End,
			CreatedAt:    s.clock.Now(),
		}
		if err := tx.Reservations.Create(ctx, res); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		return markBooked(ctx, tx, room.ID, true)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ReservationCreated, res, nil)
	return &Result{Reservation: res, Message: createdMessage(res.ID)}, nil
}

// Update moves a reservation to a new room, guest and stay. A rejected
// update leaves the stored record untouched. When the room changes the
// previous room keeps its booked flag.
func (s *Service) Update(ctx context.Context, id string, req UpdateReservationRequest) (*Result, error) {
	stay := req.Stay()
	if !stay.Valid() {
		return nil, domain.Validation(MsgInvalidStay)
	}

	var res *domain.Reservation
	err := s.mutate(ctx, func(tx *repository.Store) error {
		existing, err := tx.Reservations.GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, MsgReservationNotFound, "get reservation")
		}

		room, err := s.bookableRoom(ctx, tx, req.RoomID, req.GuestID, stay, existing.ID)
		if err != nil {
			return err
		}

		existing.HouseID = room.HouseID
		existing.RoomID = room.ID
		existing.GuestID = req.GuestID
		existing.CheckInDate = stay.Start
		existing.CheckOutDate = stay.End
		if err := tx.Reservations.Save(ctx, existing); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		res = existing
		return markBooked(ctx, tx, room.ID, true)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ReservationUpdated, res, nil)
	return &Result{Reservation: res, Message: updatedMessage(res.ID)}, nil
}

// Delete removes a reservation and frees its room. The room is freed even
// if other reservations still exist for it.
func (s *Service) Delete(ctx context.Context, id string) (*Result, error) {
	var res *domain.Reservation
	err := s.mutate(ctx, func(tx *repository.Store) error {
		existing, err := tx.Reservations.GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, MsgReservationNotFound, "get reservation")
		}
		if err := tx.Reservations.Delete(ctx, existing.ID); err != nil {
			return fmt.Errorf("delete reservation: %w", err)
		}
		res = existing
		return freeRoom(ctx, tx, existing.RoomID)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ReservationDeleted, res, nil)
	return &Result{Message: deletedMessage(res.ID)}, nil
}

// CheckOutAndPay frees the reservation's room and records a paid payment.
// The reservation itself is kept. The returned response is non-nil on
// ErrNotFound too (zero amount, not-found message) so callers can render
// it as is.
func (s *Service) CheckOutAndPay(ctx context.Context, id, amount string) (*domain.PaymentResponse, error) {
	amount = strings.TrimSpace(amount)
	var (
		res   *domain.Reservation
		value float64
	)
	err := s.mutate(ctx, func(tx *repository.Store) error {
		existing, err := tx.Reservations.GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, MsgReservationNotFound, "get reservation")
		}
		value, err = domain.ParseAmount(amount)
		if err != nil {
			return err
		}
		if err := freeRoom(ctx, tx, existing.RoomID); err != nil {
			return err
		}
		payment := &domain.Payment{
			ID:            s.newID(),
			ReservationID: existing.ID,
			Amount:        amount,
			Status:        domain.PaymentPaid,
			CreatedAt:     s.clock.Now(),
		}
		if err := tx.Payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		res = existing
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.PaymentResponse{Msg: MsgReservationNotFound, Amount: 0}, err
	}
	if err != nil {
		return nil, err
	}

	resp := &domain.PaymentResponse{Msg: paidMessage(res.ID), Amount: value}
	s.publish(ctx, events.ReservationCheckedOut, res, resp)
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.store.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, MsgReservationNotFound, "get reservation")
	}
	return res, nil
}

func (s *Service) ListByGuest(ctx context.Context, guestID string) ([]domain.Reservation, error) {
	return s.store.Reservations.ListByGuest(ctx, guestID)
}

func (s *Service) ListByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error) {
	return s.store.Reservations.ListByRoom(ctx, roomID)
}

// mutate runs fn inside the reservation lock and a single transaction.
func (s *Service) mutate(ctx context.Context, fn func(tx *repository.Store) error) error {
	unlock, err := s.locker.Lock(ctx, lockKey)
	if err != nil {
		s.log.Error("reservation lock unavailable", zap.Error(err))
		return fmt.Errorf("acquire reservation lock: %w", err)
	}
	defer unlock()
	return s.store.Transaction(ctx, fn)
}

// bookableRoom resolves the room and guest and runs the availability check.
func (s *Service) bookableRoom(ctx context.Context, tx *repository.Store, roomID, guestID string, stay domain.Interval, excludeID string) (*domain.Room, error) {
	room, err := tx.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, notFoundAs(err, MsgRoomNotFound, "get room")
	}
	if _, err := tx.Guests.GetByID(ctx, guestID); err != nil {
		return nil, notFoundAs(err, MsgGuestNotFound, "get guest")
	}

	conflicts, err := NewAvailability(tx.Reservations).Conflicts(ctx, room.ID, stay, excludeID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		s.log.Info("reservation rejected: room unavailable",
			zap.String("room_id", room.ID),
			zap.String("conflicting_reservation_id", conflicts[0].ID),
			zap.Time("check_in", stay.Start),
			zap.Time("check_out", stay.End),
		)
		return nil, domain.Conflict(MsgRoomUnavailable)
	}
	return room, nil
}

func (s *Service) publish(ctx context.Context, eventType string, res *domain.Reservation, payload any) {
	e := events.Event{
		Type:          eventType,
		ReservationID: res.ID,
		HouseID:       res.HouseID,
		RoomID:        res.RoomID,
		At:            s.clock.Now(),
		Payload:       payload,
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn("publish reservation event failed",
			zap.String("type", eventType),
			zap.String("reservation_id", res.ID),
			zap.Error(err),
		)
	}
}

func markBooked(ctx context.Context, tx *repository.Store, roomID string, booked bool) error {
	if err := tx.Rooms.SetBooked(ctx, roomID, booked); err != nil {
		return notFoundAs(err, MsgRoomNotFound, "update room")
	}
	return nil
}

// freeRoom clears the booked flag; a room deleted in the meantime is not
// an error.
func freeRoom(ctx context.Context, tx *repository.Store, roomID string) error {
	err := tx.Rooms.SetBooked(ctx, roomID, false)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("free room: %w", err)
	}
	return nil
}

func notFoundAs(err error, msg, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFound(msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
