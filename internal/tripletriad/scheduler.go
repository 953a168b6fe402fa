package tripletriad

import "time"

// Timer is a cancellable delayed callback.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot timers.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

// NewScheduler - returns a Scheduler backed by time.AfterFunc.
func NewScheduler() Scheduler {
	return clockScheduler{}
}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
