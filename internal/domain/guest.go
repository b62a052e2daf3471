package domain

import "time"

type Guest struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime:false"`
}

const (
	GuestRequestPending   = "Pending"
	GuestRequestFulfilled = "Fulfilled"
)

// GuestRequest is a free-form service request logged by a guest
// (extra towels, late checkout and so on).
type GuestRequest struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	GuestID   string    `json:"guest_id" gorm:"type:varchar(36);not null;index"`
	Details   string    `json:"details" gorm:"type:text"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime:false"`
}
