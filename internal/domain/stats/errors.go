package stats

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMalformedScale = errors.New("malformed bucket scale")
)
