package models

import "time"

// CreditCard holds a card and its billing cycle configuration. The cycle
// days are copied into each expense at creation time; editing them here
// never rewrites existing rows.
type CreditCard struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Name        string    `json:"name"`
	Provider    string    `json:"provider"`   // issuing bank
	LastFour    string    `gorm:"type:varchar(4)" json:"last_four"`
	Mode        string    `gorm:"default:credit" json:"mode"` // credit, debit
	ClosingDay  int       `gorm:"default:31;check:closing_day >= 1 AND closing_day <= 31" json:"closing_day"`
	PaymentDay  int       `gorm:"default:10;check:payment_day >= 1 AND payment_day <= 31" json:"payment_day"`
	CreditLimit float64   `json:"credit_limit"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
