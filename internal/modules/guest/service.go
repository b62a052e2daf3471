package guest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guesthouse/internal/domain"
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

func (s *Service) AddGuest(ctx context.Context, req GuestRequestBody) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", domain.Validation(MsgNameRequired)
	}

	g := &domain.Guest{
		ID:        s.newID(),
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Guests.Create(ctx, g); err != nil {
		return "", fmt.Errorf("create guest: %w", err)
	}
	return g.ID, nil
}

func (s *Service) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	g, err := s.store.Guests.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, MsgGuestNotFound, "get guest")
	}
	return g, nil
}

func (s *Service) UpdateGuest(ctx context.Context, id string, req GuestRequestBody) (*domain.Guest, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.Validation(MsgNameRequired)
	}
	g, err := s.GetGuest(ctx, id)
	if err != nil {
		return nil, err
	}

	g.Name = name
	g.Email = strings.TrimSpace(req.Email)
	g.Phone = strings.TrimSpace(req.Phone)
	if err := s.store.Guests.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save guest: %w", err)
	}
	return g, nil
}

// DeleteGuest removes the guest. Reservations and requests are kept.
func (s *Service) DeleteGuest(ctx context.Context, id string) (string, error) {
	g, err := s.GetGuest(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.store.Guests.Delete(ctx, g.ID); err != nil {
		return "", fmt.Errorf("delete guest: %w", err)
	}
	return deletedMessage(g.ID), nil
}

// SubmitGuestRequest logs a service request for an existing guest with
// status Pending.
func (s *Service) SubmitGuestRequest(ctx context.Context, guestID, details string) (string, error) {
	details = strings.TrimSpace(details)
	if details == "" {
		return "", domain.Validation(MsgDetailsRequired)
	}
	if _, err := s.GetGuest(ctx, guestID); err != nil {
		return "", err
	}

	req := &domain.GuestRequest{
		ID:        s.newID(),
		GuestID:   guestID,
		Details:   details,
		Status:    domain.GuestRequestPending,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.GuestRequests.Create(ctx, req); err != nil {
		return "", fmt.Errorf("create guest request: %w", err)
	}
	s.log.Info("guest request submitted", zap.String("request_id", req.ID), zap.String("guest_id", guestID))
	return req.ID, nil
}

func (s *Service) GetGuestRequestsByGuestID(ctx context.Context, guestID string) ([]domain.GuestRequest, error) {
	reqs, err := s.store.GuestRequests.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("list guest requests: %w", err)
	}
	if len(reqs) == 0 {
		return nil, domain.NotFound(MsgNoRequests)
	}
	return reqs, nil
}

// UpdateGuestRequestStatus sets a free-text status on a request.
func (s *Service) UpdateGuestRequestStatus(ctx context.Context, id, status string) (string, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", domain.Validation(MsgStatusRequired)
	}
	req, err := s.store.GuestRequests.GetByID(ctx, id)
	if err != nil {
		return "", notFoundAs(err, MsgRequestNotFound, "get guest request")
	}

	req.Status = status
	if err := s.store.GuestRequests.Save(ctx, req); err != nil {
		return "", fmt.Errorf("save guest request: %w", err)
	}
	return req.ID, nil
}

func notFoundAs(err error, msg, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFound(msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
