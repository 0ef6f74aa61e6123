package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeWage    Type = "wage"
	TypeBonus   Type = "bonus"
	TypeAdvance Type = "advance"
	TypeOther   Type = "other"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeWage, TypeBonus, TypeAdvance, TypeOther:
		return true
	}
	return false
}

// Payment is a ledger entry. It is not tied to any attendance record.
type Payment struct {
	ID          string
	WorkerID    string
	SiteID      string
	Amount      decimal.Decimal
	Date        string // YYYY-MM-DD
	PaymentType Type
	Notes       *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	WorkerName *string
	WorkerRole *string
}
