package service

import "time"

// Clock supplies the current time. The overdue derivation depends on "today",
// so services take a Clock instead of reading the wall clock directly and
// tests can pin time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock implementation used in production
var SystemClock Clock = systemClock{}
