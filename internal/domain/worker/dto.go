package worker

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	Name     string           `json:"name"`
	Role     *string          `json:"role,omitempty"`
	SiteID   string           `json:"site_id"`
	WageRate *decimal.Decimal `json:"wage_rate,omitempty"`
	WageType *string          `json:"wage_type,omitempty"`
	Phone    *string          `json:"phone,omitempty"`
	Address  *string          `json:"address,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{Field: "site_id", Message: "is required"})
	}
	if r.WageRate != nil && r.WageRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "wage_rate", Message: "must be non-negative"})
	}
	if r.WageType != nil && !WageType(*r.WageType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "wage_type", Message: "must be one of hour, day, month"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkerRequest struct {
	ID       string           `json:"-"`
	Name     *string          `json:"name,omitempty"`
	Role     *string          `json:"role,omitempty"`
	WageRate *decimal.Decimal `json:"wage_rate,omitempty"`
	WageType *string          `json:"wage_type,omitempty"`
	Phone    *string          `json:"phone,omitempty"`
	Address  *string          `json:"address,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.WageRate != nil && r.WageRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "wage_rate", Message: "must be non-negative"})
	}
	if r.WageType != nil && !WageType(*r.WageType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "wage_type", Message: "must be one of hour, day, month"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the set fields onto w.
func (r *UpdateWorkerRequest) Apply(w *Worker) {
	if r.Name != nil {
		w.Name = *r.Name
	}
	if r.Role != nil {
		w.Role = *r.Role
	}
	if r.WageRate != nil {
		w.WageRate = *r.WageRate
	}
	if r.WageType != nil {
		w.WageType = WageType(*r.WageType)
	}
	if r.Phone != nil {
		w.Phone = *r.Phone
	}
	if r.Address != nil {
		w.Address = *r.Address
	}
}

type WorkerResponse struct {
	ID         string          `json:"id"`
	WorkerCode string          `json:"worker_code"`
	SiteID     string          `json:"site_id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	WageRate   decimal.Decimal `json:"wage_rate"`
	WageType   string          `json:"wage_type"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	CreatedAt  string          `json:"created_at"`
}

func ToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:         w.ID,
		WorkerCode: w.WorkerCode,
		SiteID:     w.SiteID,
		Name:       w.Name,
		Role:       w.Role,
		WageRate:   w.WageRate,
		WageType:   string(w.WageType),
		Phone:      w.Phone,
		Address:    w.Address,
		CreatedAt:  w.CreatedAt.Format(time.RFC3339),
	}
}
