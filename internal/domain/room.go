package domain

import (
	"strconv"
	"time"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
)

type Room struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HouseID    string     `json:"house_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_room_house_number"`
	RoomNumber string     `json:"room_number" gorm:"not null;uniqueIndex:idx_room_house_number"`
	Type       RoomType   `json:"type,omitempty"`
	Price      string     `json:"price"`
	IsBooked   bool       `json:"is_booked" gorm:"not null;default:false"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
}

// PriceValue parses the decimal price text. ok is false when the text is
// not a number.
func (r *Room) PriceValue() (v float64, ok bool) {
	v, err := strconv.ParseFloat(r.Price, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
