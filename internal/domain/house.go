package domain

import "time"

type House struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string     `json:"name" gorm:"not null"`
	Owner     string     `json:"owner" gorm:"not null;index"`
	Address   string     `json:"address,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
}

// IsOwnedBy reports whether principal initialized the house.
func (h *House) IsOwnedBy(principal string) bool {
	return principal != "" && h.Owner == principal
}
