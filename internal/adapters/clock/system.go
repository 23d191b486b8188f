package clock

import (
	"time"

	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
)

type systemClock struct{}

// NewSystem returns a clock backed by the time package.
func NewSystem() ports.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) ports.Timer {
	return time.AfterFunc(d, fn)
}
