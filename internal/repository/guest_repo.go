package repository

import (
	"context"

	"guesthouse/internal/domain"

	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	return translate(r.db.WithContext(ctx).Create(g).Error)
}

func (r *GuestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	var g domain.Guest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *GuestRepository) Save(ctx context.Context, g *domain.Guest) error {
	return translate(r.db.WithContext(ctx).Save(g).Error)
}

func (r *GuestRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Guest{}).Error)
}

type GuestRequestRepository struct {
	db *gorm.DB
}

func NewGuestRequestRepository(db *gorm.DB) *GuestRequestRepository {
	return &GuestRequestRepository{db: db}
}

func (r *GuestRequestRepository) Create(ctx context.Context, req *domain.GuestRequest) error {
	return translate(r.db.WithContext(ctx).Create(req).Error)
}

func (r *GuestRequestRepository) GetByID(ctx context.Context, id string) (*domain.GuestRequest, error) {
	var req domain.GuestRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *GuestRequestRepository) Save(ctx context.Context, req *domain.GuestRequest) error {
	return translate(r.db.WithContext(ctx).Save(req).Error)
}

func (r *GuestRequestRepository) ListByGuest(ctx context.Context, guestID string) ([]domain.GuestRequest, error) {
	var out []domain.GuestRequest
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at, id").
		Find(&out).Error
	return out, err
}
