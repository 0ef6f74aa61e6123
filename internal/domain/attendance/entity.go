package attendance

import (
	"time"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "halfday"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

// Record is one worker's attendance at one site on one date.
// (WorkerID, SiteID, Date) is unique.
type Record struct {
	ID          string
	WorkerID    string
	SiteID      string
	Date        string // YYYY-MM-DD
	Status      Status
	HoursWorked float64
	CheckIn     *time.Time
	CheckOut    *time.Time
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields. Worker is nil when the referenced worker was deleted.
	Worker *worker.Worker
}

// ApplyCheckTimes recomputes HoursWorked from CheckIn/CheckOut when both are set.
func (r *Record) ApplyCheckTimes() {
	if r.CheckIn == nil || r.CheckOut == nil {
		return
	}
	r.HoursWorked = HoursBetween(*r.CheckIn, *r.CheckOut)
}

// HoursBetween is checkOut - checkIn in hours, clamped to zero.
func HoursBetween(checkIn, checkOut time.Time) float64 {
	diff := checkOut.Sub(checkIn)
	if diff <= 0 {
		return 0
	}
	return diff.Hours()
}
