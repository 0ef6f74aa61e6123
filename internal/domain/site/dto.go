package site

import (
	"time"

	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/validator"
)

type CreateSiteRequest struct {
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *CreateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSiteRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *UpdateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SiteResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Location  *string `json:"location,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	CreatedBy string  `json:"created_by"`
	Deleted   bool    `json:"deleted"`
	CreatedAt string  `json:"created_at"`
}

func ToResponse(s Site) SiteResponse {
	return SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		Notes:     s.Notes,
		CreatedBy: s.CreatedBy,
		Deleted:   s.Deleted,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}
