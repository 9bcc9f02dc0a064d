package season

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidWindow  = errors.New("invalid season window")
	ErrUnknownWeekday = errors.New("unknown weekday")
)
