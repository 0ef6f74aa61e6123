package site

import "time"

type Site struct {
	ID        string
	Name      string
	Location  *string
	Notes     *string
	CreatedBy string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether uid is the tenant that created the site.
func (s Site) OwnedBy(uid string) bool {
	return s.CreatedBy != "" && s.CreatedBy == uid
}
