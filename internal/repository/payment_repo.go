package repository

import (
	"context"
	"time"

	"guesthouse/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *PaymentRepository) ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at, id").
		Find(&out).Error
	return out, err
}

// LedgerRow is a payment joined with the reservation it settles.
type LedgerRow struct {
	PaymentID     string
	ReservationID string
	RoomID        string
	GuestID       string
	Amount        string
	Status        string
	CreatedAt     time.Time
}

// ListLedgerByHouse returns the payments of every reservation in a house.
func (r *PaymentRepository) ListLedgerByHouse(ctx context.Context, houseID string) ([]LedgerRow, error) {
	var rows []LedgerRow
	err := r.db.WithContext(ctx).
		Table("payments").
		Select(`payments.id AS payment_id,
			payments.reservation_id,
			reservations.room_id,
			reservations.guest_id,
			payments.amount,
			payments.status,
			payments.created_at`).
		Joins("JOIN reservations ON reservations.id = payments.reservation_id").
		Where("reservations.house_id = ?", houseID).
		Order("payments.created_at, payments.id").
		Scan(&rows).Error
	return rows, err
}
