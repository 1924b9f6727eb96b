package alarmd

import "time"

// Stopwatch measures time since its last Reset.
type Stopwatch struct {
	now  func() time.Time
	last time.Time
}

func NewStopwatch() *Stopwatch {
	return newStopwatch(time.Now)
}

func newStopwatch(now func() time.Time) *Stopwatch {
	s := &Stopwatch{now: now}
	s.Reset()
	return s
}

func (s *Stopwatch) Elapsed() time.Duration {
	return s.now().Sub(s.last)
}

func (s *Stopwatch) Reset() {
	s.last = s.now()
}
