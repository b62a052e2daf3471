package house

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/clock"
	"guesthouse/internal/pkg/lock"
	"guesthouse/internal/repository"
)

const lockKey = "house"

type Service struct {
	store  *repository.Store
	locker lock.Locker
	clock  clock.Clock
	log    *zap.Logger
	newID  func() string
}

func NewService(store *repository.Store, locker lock.Locker, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{
		store:  store,
		locker: locker,
		clock:  clk,
		log:    log,
		newID:  uuid.NewString,
	}
}

// InitHouse creates the single house of the deployment and records caller
// as its owner.
func (s *Service) InitHouse(ctx context.Context, caller string, req InitHouseRequest) (string, error) {
	if caller == "" {
		return "", domain.Unauthorized(MsgNotOwner)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", domain.Validation(MsgNameRequired)
	}

	unlock, err := s.locker.Lock(ctx, lockKey)
	if err != nil {
		return "", fmt.Errorf("acquire house lock: %w", err)
	}
	defer unlock()

	var id string
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		n, err := tx.Houses.Count(ctx)
		if err != nil {
			return fmt.Errorf("count houses: %w", err)
		}
		if n > 0 {
			return domain.AlreadyInitialized(MsgAlreadyInitialized)
		}

		h := &domain.House{
			ID:        s.newID(),
			Name:      name,
			Owner:     caller,
			Address:   strings.TrimSpace(req.Address),
			CreatedAt: s.clock.Now(),
		}
		if err := tx.Houses.Create(ctx, h); err != nil {
			return fmt.Errorf("create house: %w", err)
		}
		id = h.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info("house initialized", zap.String("house_id", id), zap.String("owner", caller))
	return id, nil
}

func (s *Service) GetHouse(ctx context.Context, id string) (*domain.House, error) {
	h, err := s.store.Houses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound(MsgHouseNotFound)
		}
		return nil, fmt.Errorf("get house: %w", err)
	}
	return h, nil
}

// OwnedHouse returns the house when caller owns it.
func (s *Service) OwnedHouse(ctx context.Context, caller, id string) (*domain.House, error) {
	h, err := s.GetHouse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !h.IsOwnedBy(caller) {
		return nil, domain.Unauthorized(MsgNotOwner)
	}
	return h, nil
}

// UpdateHouse renames or re-addresses the house. Only the owner may do it.
func (s *Service) UpdateHouse(ctx context.Context, caller, id string, req UpdateHouseRequest) (*domain.House, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.Validation(MsgNameRequired)
	}

	h, err := s.OwnedHouse(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	h.Name = name
	h.Address = strings.TrimSpace(req.Address)
	h.UpdatedAt = &now
	if err := s.store.Houses.Save(ctx, h); err != nil {
		return nil, fmt.Errorf("save house: %w", err)
	}
	return h, nil
}

// GetAvailableRooms lists the rooms of the house whose booked flag is
// clear.
func (s *Service) GetAvailableRooms(ctx context.Context, houseID string) ([]domain.Room, error) {
	if _, err := s.GetHouse(ctx, houseID); err != nil {
		return nil, err
	}
	rooms, err := s.store.Rooms.ListAvailable(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("list available rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, domain.NotFound(MsgNoAvailableRooms)
	}
	return rooms, nil
}
