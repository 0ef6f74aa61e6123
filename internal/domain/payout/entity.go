package payout

import (
	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

// AssumedWorkingDays prorates a monthly wage into a per-day amount. It is a
// fixed business constant, not the number of days in the calendar month.
const AssumedWorkingDays = 26

// HalfDayFactor scales a full-day earning for a halfday record.
var HalfDayFactor = decimal.NewFromFloat(0.5)

type WorkerEarnings struct {
	EarnedAmount decimal.Decimal
	PresentDays  int
	HalfDays     int
}

type WorkerSummary struct {
	EarnedAmount    decimal.Decimal `json:"earned_amount"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PresentDays     int             `json:"present_days"`
	HalfDays        int             `json:"half_days"`
	TotalDays       int             `json:"total_days"`
}

type SitePayoutRow struct {
	WorkerID    string          `json:"worker_id"`
	Name        string          `json:"name"`
	TotalHours  float64         `json:"total_hours"`
	WageRate    decimal.Decimal `json:"wage_rate"`
	WageType    worker.WageType `json:"wage_type"`
	TotalPayout decimal.Decimal `json:"total_payout"`
	DaysPresent int             `json:"days_present"`
}

// SiteRef identifies the site a report was produced for.
type SiteRef struct {
	ID   string
	Name string
}

// WorkerSalarySlip is the per-worker report for one period.
type WorkerSalarySlip struct {
	Worker worker.Worker
	Site   SiteRef
	Period period.Range

	Summary    WorkerSummary
	TotalHours float64

	PaymentsByType    map[payment.Type][]payment.Payment
	PaymentTypeTotals map[payment.Type]decimal.Decimal

	// Sorted by date ascending.
	Attendance []attendance.Record
	Payments   []payment.Payment
}

type SiteSummary struct {
	TotalWorkers   int             `json:"total_workers"`
	TotalEarned    decimal.Decimal `json:"total_earned"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
}
