package site

import "errors"

var (
	ErrSiteNotFound = errors.New("site not found")
	ErrForbidden    = errors.New("site belongs to another owner")
)
