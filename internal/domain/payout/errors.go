package payout

import "errors"

// ErrInvalidArgument is returned for a missing worker, wage configuration,
// attendance status or malformed period. Callers wrap it with detail.
var ErrInvalidArgument = errors.New("invalid argument")
