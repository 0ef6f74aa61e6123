package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

type Worker struct {
	ID         string
	WorkerCode string
	SiteID     string
	Name       string
	Role       string
	WageRate   decimal.Decimal
	WageType   WageType
	Phone      string
	Address    string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WageType is the unit the wage rate is quoted in.
type WageType string

const (
	WageTypeHour  WageType = "hour"
	WageTypeDay   WageType = "day"
	WageTypeMonth WageType = "month"
)

const DefaultRole = "Worker"

func (t WageType) IsValid() bool {
	switch t {
	case WageTypeHour, WageTypeDay, WageTypeMonth:
		return true
	}
	return false
}
