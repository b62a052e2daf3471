package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/clock"
	"guesthouse/internal/repository"
)

type Service struct {
	reservations reservationReader
	houses       houseReader
	payments     paymentRepo
	clock        clock.Clock
	log          *zap.Logger
	newID        func() string
}

func NewService(store *repository.Store, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{
		reservations: store.Reservations,
		houses:       store.Houses,
		payments:     store.Payments,
		clock:        clk,
		log:          log,
		newID:        uuid.NewString,
	}
}

// MakePayment records a paid ledger row for a reservation. Unlike checkout
// it leaves the room alone. On an unknown reservation the zero-amount
// response comes back with the error.
func (s *Service) MakePayment(ctx context.Context, reservationID, amount string) (*domain.PaymentResponse, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.PaymentResponse{Msg: MsgReservationNotFound, Amount: 0}, domain.NotFound(MsgReservationNotFound)
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}

	amount = strings.TrimSpace(amount)
	value, err := domain.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	p := &domain.Payment{
		ID:            s.newID(),
		ReservationID: res.ID,
		Amount:        amount,
		Status:        domain.PaymentPaid,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.log.Info("payment recorded",
		zap.String("payment_id", p.ID),
		zap.String("reservation_id", res.ID),
		zap.Float64("amount", value),
	)
	return &domain.PaymentResponse{Msg: paidMessage(res.ID), Amount: value}, nil
}

func (s *Service) GetPaymentHistory(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	payments, err := s.payments.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if len(payments) == 0 {
		return nil, domain.NotFound(MsgNoPayments)
	}
	return payments, nil
}

// ExportLedger writes every payment of the house's reservations to w as
// an XLSX workbook. Only the house owner may export.
func (s *Service) ExportLedger(ctx context.Context, caller, houseID string, w io.Writer) error {
	h, err := s.houses.GetByID(ctx, houseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound(MsgHouseNotFound)
		}
		return fmt.Errorf("get house: %w", err)
	}
	if !h.IsOwnedBy(caller) {
		return domain.Unauthorized(MsgNotOwner)
	}

	rows, err := s.payments.ListLedgerByHouse(ctx, houseID)
	if err != nil {
		return fmt.Errorf("list ledger: %w", err)
	}
	return writeLedger(w, rows)
}
