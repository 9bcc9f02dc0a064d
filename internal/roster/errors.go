package roster

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrLoadRoster    = errors.New("load roster failed")
	ErrInvalidRoster = errors.New("invalid roster")
	ErrLoadVenues    = errors.New("load venue aliases failed")
	ErrLoadEvents    = errors.New("load events failed")
)
