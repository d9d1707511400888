package uiglue

import "time"

// CloseDelay is how long the pointer may leave a dropdown or hover modal
// before it closes.
const CloseDelay = 150 * time.Millisecond

// Timer is a cancelable delayed call.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed calls. Tests substitute a manual implementation.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns the wall-clock backed Clock.
func SystemClock() Clock {
	return realClock{}
}
