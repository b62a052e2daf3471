package repository

import (
	"context"

	"guesthouse/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return translate(r.db.WithContext(ctx).Create(res).Error)
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&res).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domain.Reservation) error {
	return translate(r.db.WithContext(ctx).Save(res).Error)
}

func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Reservation{}).Error)
}

// ListByRoom returns every reservation held against a room, past ones
// included.
func (r *ReservationRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error) {
	return r.list(ctx, "room_id = ?", roomID)
}

func (r *ReservationRepository) ListByGuest(ctx context.Context, guestID string) ([]domain.Reservation, error) {
	return r.list(ctx, "guest_id = ?", guestID)
}

func (r *ReservationRepository) ListByHouse(ctx context.Context, houseID string) ([]domain.Reservation, error) {
	return r.list(ctx, "house_id = ?", houseID)
}

func (r *ReservationRepository) list(ctx context.Context, query string, arg string) ([]domain.Reservation, error) {
	out := []domain.Reservation{}
	err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("check_in_date, id").
		Find(&out).Error
	return out, err
}
