package testutil

import (
	"time"

	"dbu-go/internal/dbu"
)

// FixedClock always returns the same instant, pinning "today" in tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

var _ dbu.Clock = FixedClock{}
