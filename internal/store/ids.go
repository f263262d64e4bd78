package store

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// IDFunc returns a fresh identifier each time it is called.
type IDFunc func() string

// Identifier strategies accepted by NewIDFunc.
const (
	IDsUUID    = "uuid"
	IDsCounter = "counter"
)

// UUIDs generates random version 4 UUIDs.
func UUIDs() IDFunc {
	return uuid.NewString
}

// Counter generates "1", "2", "3", ... Each call to Counter starts its own
// sequence.
func Counter() IDFunc {
	var n uint64
	return func() string {
		n++
		return strconv.FormatUint(n, 10)
	}
}

// NewIDFunc maps a strategy name to a generator.
func NewIDFunc(strategy string) (IDFunc, error) {
	switch strategy {
	case "", IDsUUID:
		return UUIDs(), nil
	case IDsCounter:
		return Counter(), nil
	}
	return nil, fmt.Errorf("unknown id strategy %q", strategy)
}
