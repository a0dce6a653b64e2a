// Package executive drives the periodic tick that advances a timer.
package executive

import (
	"sync"
	"time"

	"magictimer/internal/clock"
)

// DefaultInterval is used when no positive interval was configured.
const DefaultInterval = time.Second

// Executive fires a handler on every tick of an underlying ticker.
// Ticks for one firing are delivered from a single goroutine.
type Executive struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	handler  func()
	ticker   clock.Ticker
	stopCh   chan struct{}
	firing   bool
}

// New creates an idle Executive bound to the given clock.
func New(source clock.Clock) *Executive {
	if source == nil {
		source = clock.NewRealClock()
	}
	return &Executive{
		clock:    source,
		interval: DefaultInterval,
	}
}

// SetTimeInterval configures the tick period. It applies from the next Fire.
func (executive *Executive) SetTimeInterval(interval time.Duration) {
	executive.mu.Lock()
	executive.interval = interval
	executive.mu.Unlock()
}

// TimeInterval returns the configured tick period.
func (executive *Executive) TimeInterval() time.Duration {
	executive.mu.Lock()
	defer executive.mu.Unlock()
	return executive.interval
}

// SetHandler replaces the per-tick callback. The next tick uses the new one.
func (executive *Executive) SetHandler(handler func()) {
	executive.mu.Lock()
	executive.handler = handler
	executive.mu.Unlock()
}

// IsFiring reports whether ticks are being delivered.
func (executive *Executive) IsFiring() bool {
	executive.mu.Lock()
	defer executive.mu.Unlock()
	return executive.firing
}

// Fire starts ticking and calls onStarted once scheduling is done.
// Calling Fire while already firing keeps the running loop.
func (executive *Executive) Fire(onStarted func()) {
	executive.mu.Lock()
	if !executive.firing {
		interval := executive.interval
		if interval <= 0 {
			interval = DefaultInterval
		}
		executive.ticker = executive.clock.NewTicker(interval)
		executive.stopCh = make(chan struct{})
		executive.firing = true
		go executive.run(executive.ticker, executive.stopCh)
	}
	executive.mu.Unlock()

	if onStarted != nil {
		onStarted()
	}
}

// Suspend cancels future ticks and calls onStopped. It is safe to call from
// inside the tick handler and when not firing.
func (executive *Executive) Suspend(onStopped func()) {
	executive.mu.Lock()
	if executive.firing {
		executive.ticker.Stop()
		close(executive.stopCh)
		executive.ticker = nil
		executive.stopCh = nil
		executive.firing = false
	}
	executive.mu.Unlock()

	if onStopped != nil {
		onStopped()
	}
}

func (executive *Executive) run(ticker clock.Ticker, stopCh chan struct{}) {
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			executive.deliver(stopCh)
		}
	}
}

func (executive *Executive) deliver(stopCh chan struct{}) {
	executive.mu.Lock()
	if !executive.firing || executive.stopCh != stopCh {
		executive.mu.Unlock()
		return
	}
	handler := executive.handler
	executive.mu.Unlock()

	if handler != nil {
		handler()
	}
}
