package selection

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrTooManyPriorityPlayers = errors.New("too many priority players")
)
