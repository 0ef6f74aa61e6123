// Package period handles the inclusive YYYY-MM-DD date ranges used to scope
// attendance and payment lookups.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/validator"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidRange = errors.New("from must not be after to")
)

// Range is inclusive on both ends. The zero Range matches every date.
type Range struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Parse builds a Range from optional query values. Both bounds must be given
// together; a lone bound is ignored the same way an absent range is.
func Parse(from, to string) (Range, error) {
	if from == "" || to == "" {
		return Range{}, nil
	}
	return ParseRequired(from, to)
}

// ParseRequired is Parse for endpoints where the range is mandatory.
func ParseRequired(from, to string) (Range, error) {
	if _, ok := validator.IsValidDate(from); !ok {
		return Range{}, fmt.Errorf("from %q: %w", from, ErrInvalidDate)
	}
	if _, ok := validator.IsValidDate(to); !ok {
		return Range{}, fmt.Errorf("to %q: %w", to, ErrInvalidDate)
	}
	if from > to {
		return Range{}, fmt.Errorf("%s > %s: %w", from, to, ErrInvalidRange)
	}
	return Range{From: from, To: to}, nil
}

func (r Range) IsZero() bool {
	return r.From == "" && r.To == ""
}

// Contains compares lexicographically; canonical dates sort the same way as time.
func (r Range) Contains(date string) bool {
	if r.IsZero() {
		return true
	}
	return date >= r.From && date <= r.To
}

// Today returns the current UTC date key.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
