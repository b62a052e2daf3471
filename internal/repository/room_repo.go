package repository

import (
	"context"

	"guesthouse/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return translate(r.db.WithContext(ctx).Create(room).Error)
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// UpdateDetails writes the owner-editable columns only. is_booked belongs
// to the reservation lifecycle and is never written from a stale read.
func (r *RoomRepository) UpdateDetails(ctx context.Context, room *domain.Room) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", room.ID).
		Select("room_number", "type", "price", "updated_at").
		Updates(room)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetBooked flips the booked flag. It reports ErrNotFound when no room
// has that id.
func (r *RoomRepository) SetBooked(ctx context.Context, id string, booked bool) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", id).
		Update("is_booked", booked)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Room{}).Error)
}

func (r *RoomRepository) ListByHouse(ctx context.Context, houseID string) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("house_id = ?", houseID).
		Order("room_number, id").
		Find(&rooms).Error
	return rooms, err
}

// ListAvailable returns the rooms of a house whose booked flag is clear.
func (r *RoomRepository) ListAvailable(ctx context.Context, houseID string) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("house_id = ? AND is_booked = ?", houseID, false).
		Order("room_number, id").
		Find(&rooms).Error
	return rooms, err
}
