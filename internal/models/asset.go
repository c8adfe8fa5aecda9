package models

import "time"

// Asset is an investment holding tracked by the user.
type Asset struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"` // stock, bond, crypto, fund, other
	Symbol       string    `json:"symbol"`
	Quantity     float64   `json:"quantity"`
	UnitCost     float64   `json:"unit_cost"`
	Currency     string    `json:"currency"`
	PurchaseDate string    `json:"purchase_date"` // 2006-01-02
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
