package domain

import "time"

type Reservation struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	HouseID      string    `json:"house_id" gorm:"type:varchar(36);index"`
	RoomID       string    `json:"room_id" gorm:"type:varchar(36);not null;index"`
	GuestID      string    `json:"guest_id" gorm:"type:varchar(36);not null;index"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime:false"`
}

// Stay returns the half-open interval the reservation occupies.
func (r *Reservation) Stay() Interval {
	return Interval{Start: r.CheckInDate, End: r.CheckOutDate}
}
