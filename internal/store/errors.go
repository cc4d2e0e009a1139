package store

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrOpen   = errors.New("store open failed")
	ErrInsert = errors.New("store insert failed")
	ErrQuery  = errors.New("store query failed")
)
