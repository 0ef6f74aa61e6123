package payout

import (
	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
)

type SitePayoutResponse struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Site    string          `json:"site"`
	SiteID  string          `json:"site_id"`
	Results []SitePayoutRow `json:"results"`
}

type SalarySlipResponse struct {
	WorkerID   string          `json:"worker_id"`
	WorkerName string          `json:"worker_name"`
	WorkerRole string          `json:"worker_role"`
	Site       string          `json:"site"`
	SiteID     string          `json:"site_id"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	WageRate   decimal.Decimal `json:"wage_rate"`
	WageType   string          `json:"wage_type"`

	DaysPresent     int             `json:"days_present"`
	DaysHalf        int             `json:"days_half"`
	TotalDays       int             `json:"total_days"`
	TotalHours      float64         `json:"total_hours"`
	TotalEarned     decimal.Decimal `json:"total_earned"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`

	Payments          []payment.PaymentResponse            `json:"payments"`
	PaymentsByType    map[string][]payment.PaymentResponse `json:"payments_by_type"`
	PaymentTypeTotals map[string]decimal.Decimal           `json:"payment_type_totals"`
	Attendance        []attendance.AttendanceResponse      `json:"attendance"`
}

func ToSalarySlipResponse(slip WorkerSalarySlip) SalarySlipResponse {
	byType := make(map[string][]payment.PaymentResponse, len(slip.PaymentsByType))
	for t, ps := range slip.PaymentsByType {
		byType[string(t)] = payment.ToResponses(ps)
	}
	totals := make(map[string]decimal.Decimal, len(slip.PaymentTypeTotals))
	for t, amount := range slip.PaymentTypeTotals {
		totals[string(t)] = amount
	}

	return SalarySlipResponse{
		WorkerID:          slip.Worker.ID,
		WorkerName:        slip.Worker.Name,
		WorkerRole:        slip.Worker.Role,
		Site:              slip.Site.Name,
		SiteID:            slip.Site.ID,
		From:              slip.Period.From,
		To:                slip.Period.To,
		WageRate:          slip.Worker.WageRate,
		WageType:          string(slip.Worker.WageType),
		DaysPresent:       slip.Summary.PresentDays,
		DaysHalf:          slip.Summary.HalfDays,
		TotalDays:         slip.Summary.TotalDays,
		TotalHours:        slip.TotalHours,
		TotalEarned:       slip.Summary.EarnedAmount,
		TotalPaid:         slip.Summary.TotalPaid,
		RemainingAmount:   slip.Summary.RemainingAmount,
		Payments:          payment.ToResponses(slip.Payments),
		PaymentsByType:    byType,
		PaymentTypeTotals: totals,
		Attendance:        attendance.ToResponses(slip.Attendance),
	}
}

type WorkerSummaryResponse struct {
	Worker     worker.WorkerResponse           `json:"worker"`
	Attendance []attendance.AttendanceResponse `json:"attendance"`
	Payments   []payment.PaymentResponse       `json:"payments"`
	Summary    WorkerSummary                   `json:"summary"`
}
