package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Expense is one persisted charge. A multi-installment purchase creates
// one row per installment; the rows share an InstallmentGroup and carry
// the original purchase date, while DueDate advances one month per
// installment. PurchaseDate and DueDate are 2006-01-02 strings.
type Expense struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"index;not null" json:"user_id"`
	CategoryID    uint        `json:"category_id"`
	CreditCardID  *uint       `json:"credit_card_id,omitempty"`
	Description   string      `json:"description"`
	Amount        float64     `json:"amount"`
	Currency      string      `json:"currency"`
	PaymentMethod string      `json:"payment_method"` // cash, debit_card, credit_card
	PurchaseDate  string      `gorm:"index" json:"purchase_date"`
	DueDate       string      `gorm:"index" json:"due_date"`
	Installment   int         `gorm:"default:1" json:"installment"`
	Installments  int         `gorm:"default:1" json:"installments"`
	Group         string      `gorm:"column:installment_group;index" json:"installment_group,omitempty"`
	Tags          StringArray `gorm:"type:jsonb" json:"tags"`
	Notes         string      `json:"notes"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type StringArray []string

func (sa StringArray) Value() (driver.Value, error) {
	if len(sa) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(sa)
}

func (sa *StringArray) Scan(value interface{}) error {
	if value == nil {
		*sa = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringArray: %T", value)
	}
	if len(data) == 0 {
		*sa = nil
		return nil
	}
	return json.Unmarshal(data, sa)
}
