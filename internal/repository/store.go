package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Store groups the per-entity repositories over one connection (or one
// transaction).
type Store struct {
	db *gorm.DB

	Houses        *HouseRepository
	Rooms         *RoomRepository
	Guests        *GuestRepository
	Reservations  *ReservationRepository
	Payments      *PaymentRepository
	GuestRequests *GuestRequestRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Houses:        NewHouseRepository(db),
		Rooms:         NewRoomRepository(db),
		Guests:        NewGuestRepository(db),
		Reservations:  NewReservationRepository(db),
		Payments:      NewPaymentRepository(db),
		GuestRequests: NewGuestRequestRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database
// transaction. Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrDuplicate
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
