package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guesthouse/internal/domain"
	"guesthouse/internal/modules/booking"
	"guesthouse/internal/pkg/clock"
	"guesthouse/internal/repository"
)

type Service struct {
	store *repository.Store
	clock clock.Clock
	log   *zap.Logger
	newID func() string
}

func NewService(store *repository.Store, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{
		store: store,
		clock: clk,
		log:   log,
		newID: uuid.NewString,
	}
}

// AddRoom adds a room to the house. Only the house owner may add rooms.
func (s *Service) AddRoom(ctx context.Context, caller string, req AddRoomRequest) (string, error) {
	price, err := normalizePrice(req.Price)
	if err != nil {
		return "", err
	}
	if _, err := s.ownedHouse(ctx, caller, req.HouseID); err != nil {
		return "", err
	}

	room := &domain.Room{
		ID:         s.newID(),
		HouseID:    req.HouseID,
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		Type:       req.Type,
		Price:      price,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.store.Rooms.Create(ctx, room); err != nil {
		return "", roomWriteError(err, "create room")
	}
	return room.ID, nil
}

func (s *Service) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.store.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound(MsgRoomNotFound)
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

// UpdateRoom replaces number, type and price. The booked flag is left to
// the reservation lifecycle; the returned room carries the flag as stored
// after the write.
func (s *Service) UpdateRoom(ctx context.Context, caller, id string, req UpdateRoomRequest) (*domain.Room, error) {
	price, err := normalizePrice(req.Price)
	if err != nil {
		return nil, err
	}
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedHouse(ctx, caller, room.HouseID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	room.RoomNumber = strings.TrimSpace(req.RoomNumber)
	room.Type = req.Type
	room.Price = price
	room.UpdatedAt = &now
	if err := s.store.Rooms.UpdateDetails(ctx, room); err != nil {
		return nil, roomWriteError(err, "update room")
	}
	return s.GetRoom(ctx, id)
}

// DeleteRoom removes the room. Its reservations are kept.
func (s *Service) DeleteRoom(ctx context.Context, caller, id string) (string, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return "", err
	}
	if _, err := s.ownedHouse(ctx, caller, room.HouseID); err != nil {
		return "", err
	}
	if err := s.store.Rooms.Delete(ctx, room.ID); err != nil {
		return "", fmt.Errorf("delete room: %w", err)
	}
	s.log.Info("room deleted", zap.String("room_id", room.ID), zap.String("house_id", room.HouseID))
	return deletedMessage(room.ID), nil
}

// SearchAvailableRoomsByDateRange returns unbooked rooms with no
// reservation overlapping [stay.Start, stay.End).
func (s *Service) SearchAvailableRoomsByDateRange(ctx context.Context, houseID string, stay domain.Interval) ([]domain.Room, error) {
	if !stay.Valid() {
		return nil, domain.Validation(MsgInvalidDateRange)
	}
	rooms, err := s.available(ctx, houseID)
	if err != nil {
		return nil, err
	}

	engine := booking.NewAvailability(s.store.Reservations)
	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		free, err := engine.CheckRoomAvailability(ctx, r.ID, stay)
		if err != nil {
			return nil, err
		}
		if free {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, domain.NotFound(MsgNoRoomsForDates)
	}
	return out, nil
}

func (s *Service) SearchAvailableRoomsByType(ctx context.Context, houseID string, roomType domain.RoomType) ([]domain.Room, error) {
	rooms, err := s.available(ctx, houseID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if strings.EqualFold(string(r.Type), string(roomType)) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, domain.NotFound(MsgNoRoomsForType)
	}
	return out, nil
}

// SearchAvailableRoomsByPriceRange filters unbooked rooms by price, both
// bounds inclusive. Rooms whose price is not a number never match.
func (s *Service) SearchAvailableRoomsByPriceRange(ctx context.Context, houseID, minPrice, maxPrice string) ([]domain.Room, error) {
	lo, err := domain.ParseAmount(minPrice)
	if err != nil {
		return nil, domain.Validation(MsgInvalidPrice)
	}
	hi, err := domain.ParseAmount(maxPrice)
	if err != nil {
		return nil, domain.Validation(MsgInvalidPrice)
	}
	if lo > hi {
		return nil, domain.Validation(MsgInvalidPriceRange)
	}

	rooms, err := s.available(ctx, houseID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if p, ok := r.PriceValue(); ok && p >= lo && p <= hi {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, domain.NotFound(MsgNoRoomsPriceRange)
	}
	return out, nil
}

func (s *Service) available(ctx context.Context, houseID string) ([]domain.Room, error) {
	rooms, err := s.store.Rooms.ListAvailable(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("list available rooms: %w", err)
	}
	return rooms, nil
}

func (s *Service) ownedHouse(ctx context.Context, caller, houseID string) (*domain.House, error) {
	h, err := s.store.Houses.GetByID(ctx, houseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound(MsgHouseNotFound)
		}
		return nil, fmt.Errorf("get house: %w", err)
	}
	if !h.IsOwnedBy(caller) {
		return nil, domain.Unauthorized(MsgNotOwner)
	}
	return h, nil
}

func normalizePrice(text string) (string, error) {
	if _, err := domain.ParseAmount(text); err != nil {
		return "", domain.Validation(MsgInvalidPrice)
	}
	return strings.TrimSpace(text), nil
}

func roomWriteError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return domain.Conflict(MsgDuplicateNumber)
	case errors.Is(err, repository.ErrNotFound):
		return domain.NotFound(MsgRoomNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
