package scanner

import "time"

// Scheduler drives a polling loop. The ticker implementation is used in
// production; tests substitute a manually fired one.
type Scheduler interface {
	C() <-chan time.Time
	Stop()
}

type tickerScheduler struct {
	t *time.Ticker
}

func NewTickerScheduler(interval time.Duration) Scheduler {
	return &tickerScheduler{t: time.NewTicker(interval)}
}

func (s *tickerScheduler) C() <-chan time.Time { return s.t.C }
func (s *tickerScheduler) Stop()               { s.t.Stop() }

// ManualScheduler fires only when Fire is called.
type ManualScheduler struct {
	ch chan time.Time
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{ch: make(chan time.Time, 1)}
}

func (s *ManualScheduler) C() <-chan time.Time { return s.ch }
func (s *ManualScheduler) Stop()               {}

func (s *ManualScheduler) Fire() {
	s.ch <- time.Now()
}
