package attendance

import (
	"time"

	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/validator"
)

type MarkRequest struct {
	WorkerID    string   `json:"worker_id"`
	SiteID      string   `json:"site_id"`
	Date        *string  `json:"date,omitempty"`
	Status      *string  `json:"status,omitempty"`
	HoursWorked *float64 `json:"hours_worked,omitempty"`
	CheckIn     *string  `json:"check_in,omitempty"`
	CheckOut    *string  `json:"check_out,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	}
	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{Field: "site_id", Message: "is required"})
	}
	errs = append(errs, validateEntry(r.Date, r.Status, r.HoursWorked, r.CheckIn, r.CheckOut, "")...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkMarkEntry struct {
	WorkerID    string   `json:"worker_id"`
	Status      *string  `json:"status,omitempty"`
	HoursWorked *float64 `json:"hours_worked,omitempty"`
	CheckIn     *string  `json:"check_in,omitempty"`
	CheckOut    *string  `json:"check_out,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

type BulkMarkRequest struct {
	SiteID  string          `json:"site_id"`
	Date    *string         `json:"date,omitempty"`
	Records []BulkMarkEntry `json:"records"`
}

func (r *BulkMarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{Field: "site_id", Message: "is required"})
	}
	if r.Records == nil {
		errs = append(errs, validator.ValidationError{Field: "records", Message: "is required"})
	}
	errs = append(errs, validateEntry(r.Date, nil, nil, nil, nil, "")...)
	for i, e := range r.Records {
		prefix := "records[" + validator.Itoa(i) + "]."
		errs = append(errs, validateEntry(nil, e.Status, e.HoursWorked, e.CheckIn, e.CheckOut, prefix)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkMarkResponse struct {
	Updated int `json:"updated"`
}

func validateEntry(date, status *string, hours *float64, checkIn, checkOut *string, prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if date != nil {
		if _, ok := validator.IsValidDate(*date); !ok {
			errs = append(errs, validator.ValidationError{Field: prefix + "date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if status != nil && !Status(*status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: prefix + "status", Message: "must be one of present, absent, halfday"})
	}
	if hours != nil && *hours < 0 {
		errs = append(errs, validator.ValidationError{Field: prefix + "hours_worked", Message: "must be non-negative"})
	}
	if checkIn != nil {
		if _, ok := validator.IsValidDateTime(*checkIn); !ok {
			errs = append(errs, validator.ValidationError{Field: prefix + "check_in", Message: "must be an ISO8601 timestamp"})
		}
	}
	if checkOut != nil {
		if _, ok := validator.IsValidDateTime(*checkOut); !ok {
			errs = append(errs, validator.ValidationError{Field: prefix + "check_out", Message: "must be an ISO8601 timestamp"})
		}
	}
	return errs
}

// ParseTime assumes the value already passed validation.
func ParseTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := validator.IsValidDateTime(*s)
	if !ok {
		return nil
	}
	return &t
}

type WorkerRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	WageRate string `json:"wage_rate"`
	WageType string `json:"wage_type"`
}

type AttendanceResponse struct {
	ID          string     `json:"id"`
	WorkerID    string     `json:"worker_id"`
	SiteID      string     `json:"site_id"`
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	HoursWorked float64    `json:"hours_worked"`
	CheckIn     *string    `json:"check_in,omitempty"`
	CheckOut    *string    `json:"check_out,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Worker      *WorkerRef `json:"worker"`
}

func ToResponse(r Record) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          r.ID,
		WorkerID:    r.WorkerID,
		SiteID:      r.SiteID,
		Date:        r.Date,
		Status:      string(r.Status),
		HoursWorked: r.HoursWorked,
		CheckIn:     formatTime(r.CheckIn),
		CheckOut:    formatTime(r.CheckOut),
		Notes:       r.Notes,
	}
	if r.Worker != nil {
		resp.Worker = &WorkerRef{
			ID:       r.Worker.ID,
			Name:     r.Worker.Name,
			Role:     r.Worker.Role,
			WageRate: r.Worker.WageRate.String(),
			WageType: string(r.Worker.WageType),
		}
	}
	return resp
}

func ToResponses(records []Record) []AttendanceResponse {
	result := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		result = append(result, ToResponse(r))
	}
	return result
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
