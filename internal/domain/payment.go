package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
)

// Payment is a plain ledger row; amounts stay decimal text until they
// reach a response.
type Payment struct {
	ID            string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ReservationID string        `json:"reservation_id" gorm:"type:varchar(36);not null;index"`
	Amount        string        `json:"amount"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
}

// PaymentResponse is what checkout and payment operations report back.
type PaymentResponse struct {
	Msg    string  `json:"msg"`
	Amount float64 `json:"amount"`
}

// ParseAmount parses decimal amount text. Negative, non-finite and
// non-numeric values are rejected.
func ParseAmount(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, Validation("Amount must be a number")
	}
	if v < 0 {
		return 0, Validation("Amount must not be negative")
	}
	return v, nil
}
