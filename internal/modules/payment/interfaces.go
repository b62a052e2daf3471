package payment

import (
	"context"

	"guesthouse/internal/domain"
	"guesthouse/internal/repository"
)

type reservationReader interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
}

type houseReader interface {
	GetByID(ctx context.Context, id string) (*domain.House, error)
}

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error)
	ListLedgerByHouse(ctx context.Context, houseID string) ([]repository.LedgerRow, error)
}
