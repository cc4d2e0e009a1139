package gen

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidParams = errors.New("invalid generator params")
	ErrInvalidCount  = errors.New("invalid play count")
)
