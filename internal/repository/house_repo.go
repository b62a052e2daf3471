package repository

import (
	"context"

	"guesthouse/internal/domain"

	"gorm.io/gorm"
)

type HouseRepository struct {
	db *gorm.DB
}

func NewHouseRepository(db *gorm.DB) *HouseRepository {
	return &HouseRepository{db: db}
}

func (r *HouseRepository) Create(ctx context.Context, h *domain.House) error {
	return translate(r.db.WithContext(ctx).Create(h).Error)
}

func (r *HouseRepository) GetByID(ctx context.Context, id string) (*domain.House, error) {
	var h domain.House
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&h).Error; err != nil {
		return nil, translate(err)
	}
	return &h, nil
}

func (r *HouseRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.House{}).Count(&n).Error
	return n, err
}

func (r *HouseRepository) Save(ctx context.Context, h *domain.House) error {
	return translate(r.db.WithContext(ctx).Save(h).Error)
}
