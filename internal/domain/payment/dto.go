package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/validator"
)

type CreatePaymentRequest struct {
	WorkerID    string          `json:"worker_id"`
	SiteID      string          `json:"site_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	PaymentType *string         `json:"payment_type,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	}
	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{Field: "site_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.PaymentType != nil && !Type(*r.PaymentType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "payment_type", Message: "must be one of wage, bonus, advance, other"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePaymentRequest struct {
	ID          string           `json:"-"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty"`
	PaymentType *string          `json:"payment_type,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r *UpdatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount != nil && !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.PaymentType != nil && !Type(*r.PaymentType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "payment_type", Message: "must be one of wage, bonus, advance, other"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the set fields onto p.
func (r *UpdatePaymentRequest) Apply(p *Payment) {
	if r.Amount != nil {
		p.Amount = *r.Amount
	}
	if r.Date != nil {
		p.Date = *r.Date
	}
	if r.PaymentType != nil {
		p.PaymentType = Type(*r.PaymentType)
	}
	if r.Notes != nil {
		p.Notes = r.Notes
	}
}

type SiteFilter struct {
	WorkerID *string
	Range    period.Range
}

type PaymentResponse struct {
	ID          string          `json:"id"`
	WorkerID    string          `json:"worker_id"`
	SiteID      string          `json:"site_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	PaymentType string          `json:"payment_type"`
	Notes       *string         `json:"notes,omitempty"`
	WorkerName  *string         `json:"worker_name,omitempty"`
	WorkerRole  *string         `json:"worker_role,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   string          `json:"created_at"`
}

func ToResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		WorkerID:    p.WorkerID,
		SiteID:      p.SiteID,
		Amount:      p.Amount,
		Date:        p.Date,
		PaymentType: string(p.PaymentType),
		Notes:       p.Notes,
		WorkerName:  p.WorkerName,
		WorkerRole:  p.WorkerRole,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func ToResponses(payments []Payment) []PaymentResponse {
	result := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, ToResponse(p))
	}
	return result
}
