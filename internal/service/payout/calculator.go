package payout

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payout"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

// Calculator turns attendance and payment records into earnings figures.
// It holds no state besides its logger and is safe for concurrent use.
type Calculator struct {
	logger *slog.Logger
}

func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

var assumedWorkingDays = decimal.NewFromInt(payout.AssumedWorkingDays)

// EarningsForRecord returns what w earned for a single attendance record.
// Unknown wage types are paid like day wages. The result is never negative.
func (c *Calculator) EarningsForRecord(w *worker.Worker, record attendance.Record) (decimal.Decimal, error) {
	if w == nil {
		return decimal.Zero, fmt.Errorf("%w: worker is required", payout.ErrInvalidArgument)
	}
	if !record.Status.IsValid() {
		return decimal.Zero, fmt.Errorf("%w: attendance %s has status %q", payout.ErrInvalidArgument, record.ID, record.Status)
	}

	if record.Status == attendance.StatusAbsent {
		return decimal.Zero, nil
	}

	amount := fullDayEarning(w, record.HoursWorked)
	if record.Status == attendance.StatusHalfDay {
		amount = amount.Mul(payout.HalfDayFactor)
	}

	if amount.IsNegative() {
		return decimal.Zero, nil
	}
	return amount, nil
}

func fullDayEarning(w *worker.Worker, hoursWorked float64) decimal.Decimal {
	switch w.WageType {
	case worker.WageTypeHour:
		return hours(hoursWorked).Mul(w.WageRate)
	case worker.WageTypeMonth:
		return w.WageRate.Div(assumedWorkingDays)
	default:
		return w.WageRate
	}
}

func hours(h float64) decimal.Decimal {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(h)
}

// Earnings sums EarningsForRecord over records and counts present and halfday records.
func (c *Calculator) Earnings(w *worker.Worker, records []attendance.Record) (payout.WorkerEarnings, error) {
	earnings := payout.WorkerEarnings{EarnedAmount: decimal.Zero}

	for _, r := range records {
		amount, err := c.EarningsForRecord(w, r)
		if err != nil {
			return payout.WorkerEarnings{}, err
		}
		earnings.EarnedAmount = earnings.EarnedAmount.Add(amount)

		switch r.Status {
		case attendance.StatusPresent:
			earnings.PresentDays++
		case attendance.StatusHalfDay:
			earnings.HalfDays++
		}
	}

	return earnings, nil
}

// TotalPaid sums every payment regardless of its type.
func (c *Calculator) TotalPaid(payments []payment.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Summarize reconciles a worker's attendance against their payments. Both
// slices must already be scoped to the worker and period.
func (c *Calculator) Summarize(w *worker.Worker, records []attendance.Record, payments []payment.Payment) (payout.WorkerSummary, error) {
	if w == nil {
		return payout.WorkerSummary{}, fmt.Errorf("%w: worker is required", payout.ErrInvalidArgument)
	}
	if w.WageType == "" {
		return payout.WorkerSummary{}, fmt.Errorf("%w: worker %s has no wage type", payout.ErrInvalidArgument, w.ID)
	}

	earnings, err := c.Earnings(w, records)
	if err != nil {
		return payout.WorkerSummary{}, err
	}
	totalPaid := c.TotalPaid(payments)

	return payout.WorkerSummary{
		EarnedAmount:    earnings.EarnedAmount,
		TotalPaid:       totalPaid,
		RemainingAmount: floorZero(earnings.EarnedAmount.Sub(totalPaid)),
		PresentDays:     earnings.PresentDays,
		HalfDays:        earnings.HalfDays,
		TotalDays:       earnings.PresentDays + earnings.HalfDays,
	}, nil
}

// AggregateSitePayouts groups a site's attendance by worker, ordered by
// descending payout. Only present records are paid here; halfday records add
// hours but no payout. Orphaned records and records with an unknown status are
// logged and skipped.
func (c *Calculator) AggregateSitePayouts(records []attendance.Record) []payout.SitePayoutRow {
	rows := make([]payout.SitePayoutRow, 0)
	index := make(map[string]int)

	for _, r := range records {
		if r.Worker == nil {
			c.logger.Warn("Skipping orphaned attendance record",
				"attendance_id", r.ID,
				"site_id", r.SiteID,
				"worker_id", r.WorkerID,
			)
			continue
		}
		if !r.Status.IsValid() {
			c.logger.Warn("Skipping attendance record with unknown status",
				"attendance_id", r.ID,
				"site_id", r.SiteID,
				"status", string(r.Status),
			)
			continue
		}

		workerID := r.Worker.ID
		if workerID == "" {
			workerID = r.WorkerID
		}

		i, ok := index[workerID]
		if !ok {
			wageType := r.Worker.WageType
			if wageType == "" {
				wageType = worker.WageTypeDay
			}
			rows = append(rows, payout.SitePayoutRow{
				WorkerID:    workerID,
				Name:        r.Worker.Name,
				WageRate:    r.Worker.WageRate,
				WageType:    wageType,
				TotalPayout: decimal.Zero,
			})
			i = len(rows) - 1
			index[workerID] = i
		}

		row := &rows[i]
		if !math.IsNaN(r.HoursWorked) && !math.IsInf(r.HoursWorked, 0) {
			row.TotalHours += r.HoursWorked
		}

		if r.Status == attendance.StatusPresent {
			row.DaysPresent++
			amount, _ := c.EarningsForRecord(r.Worker, r)
			row.TotalPayout = row.TotalPayout.Add(amount)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPayout.GreaterThan(rows[j].TotalPayout)
	})

	return rows
}

// AssembleSalarySlip builds the per-period slip. Earned, paid and remaining
// figures come from Summarize unchanged.
func (c *Calculator) AssembleSalarySlip(
	w *worker.Worker,
	site payout.SiteRef,
	rng period.Range,
	records []attendance.Record,
	payments []payment.Payment,
) (payout.WorkerSalarySlip, error) {
	if !rng.IsZero() {
		if _, err := period.ParseRequired(rng.From, rng.To); err != nil {
			return payout.WorkerSalarySlip{}, fmt.Errorf("%w: %v", payout.ErrInvalidArgument, err)
		}
	}

	summary, err := c.Summarize(w, records, payments)
	if err != nil {
		return payout.WorkerSalarySlip{}, err
	}

	sortedAttendance := make([]attendance.Record, len(records))
	copy(sortedAttendance, records)
	sort.SliceStable(sortedAttendance, func(i, j int) bool {
		return sortedAttendance[i].Date < sortedAttendance[j].Date
	})

	sortedPayments := make([]payment.Payment, len(payments))
	copy(sortedPayments, payments)
	sort.SliceStable(sortedPayments, func(i, j int) bool {
		return sortedPayments[i].Date < sortedPayments[j].Date
	})

	totalHours := 0.0
	for _, r := range sortedAttendance {
		if !math.IsNaN(r.HoursWorked) && !math.IsInf(r.HoursWorked, 0) {
			totalHours += r.HoursWorked
		}
	}

	byType := make(map[payment.Type][]payment.Payment)
	totals := make(map[payment.Type]decimal.Decimal)
	for _, p := range sortedPayments {
		byType[p.PaymentType] = append(byType[p.PaymentType], p)
		if current, ok := totals[p.PaymentType]; ok {
			totals[p.PaymentType] = current.Add(p.Amount)
		} else {
			totals[p.PaymentType] = p.Amount
		}
	}

	return payout.WorkerSalarySlip{
		Worker:            *w,
		Site:              site,
		Period:            rng,
		Summary:           summary,
		TotalHours:        totalHours,
		PaymentsByType:    byType,
		PaymentTypeTotals: totals,
		Attendance:        sortedAttendance,
		Payments:          sortedPayments,
	}, nil
}

// SummarizeSite totals Summarize across a site's workers. Records are looked
// up by worker id; workers without records contribute zero.
func (c *Calculator) SummarizeSite(
	workers []worker.Worker,
	attendanceByWorker map[string][]attendance.Record,
	paymentsByWorker map[string][]payment.Payment,
) (payout.SiteSummary, error) {
	totalEarned := decimal.Zero
	totalPaid := decimal.Zero

	for i := range workers {
		w := &workers[i]
		summary, err := c.Summarize(w, attendanceByWorker[w.ID], paymentsByWorker[w.ID])
		if err != nil {
			return payout.SiteSummary{}, err
		}
		totalEarned = totalEarned.Add(summary.EarnedAmount)
		totalPaid = totalPaid.Add(summary.TotalPaid)
	}

	return payout.SiteSummary{
		TotalWorkers:   len(workers),
		TotalEarned:    totalEarned,
		TotalPaid:      totalPaid,
		TotalRemaining: floorZero(totalEarned.Sub(totalPaid)),
	}, nil
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
