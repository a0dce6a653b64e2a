// Package background measures wall-clock time that passed while a timer was
// not able to tick, such as while the process was suspended.
package background

import (
	"math"
	"sync"
	"time"

	"magictimer/internal/clock"
)

// Calculator records when ticking started and reports the elapsed time on
// return to the foreground.
type Calculator struct {
	mu             sync.Mutex
	clock          clock.Clock
	firedDate      time.Time
	hasFiredDate   bool
	active         bool
	wentBackground bool
	handler        func(time.Duration)
}

// New creates an active Calculator.
func New(source clock.Clock) *Calculator {
	if source == nil {
		source = clock.NewRealClock()
	}
	return &Calculator{clock: source, active: true}
}

// SetFiredDate records the moment ticking (re)started.
func (calculator *Calculator) SetFiredDate(at time.Time) {
	calculator.mu.Lock()
	calculator.firedDate = at
	calculator.hasFiredDate = true
	calculator.wentBackground = false
	calculator.mu.Unlock()
}

// FiredDate returns the recorded fired date, if any.
func (calculator *Calculator) FiredDate() (time.Time, bool) {
	calculator.mu.Lock()
	defer calculator.mu.Unlock()
	return calculator.firedDate, calculator.hasFiredDate
}

// SetActive toggles whether elapsed time is reported at all.
func (calculator *Calculator) SetActive(active bool) {
	calculator.mu.Lock()
	calculator.active = active
	calculator.mu.Unlock()
}

// IsActive reports whether elapsed time is reported.
func (calculator *Calculator) IsActive() bool {
	calculator.mu.Lock()
	defer calculator.mu.Unlock()
	return calculator.active
}

// SetHandler registers the callback receiving elapsed durations.
func (calculator *Calculator) SetHandler(handler func(time.Duration)) {
	calculator.mu.Lock()
	calculator.handler = handler
	calculator.mu.Unlock()
}

// EnterBackground marks that ticking is about to be suspended.
func (calculator *Calculator) EnterBackground() {
	calculator.mu.Lock()
	calculator.wentBackground = true
	calculator.mu.Unlock()
}

// EnterForeground reports the whole seconds elapsed since the fired date,
// then clears it. It does nothing unless active, a fired date exists and a
// background transition was seen.
func (calculator *Calculator) EnterForeground() {
	calculator.mu.Lock()
	if !calculator.active || !calculator.wentBackground || !calculator.hasFiredDate {
		calculator.mu.Unlock()
		return
	}
	elapsed := wholeSeconds(calculator.clock.Now().Sub(calculator.firedDate))
	calculator.firedDate = time.Time{}
	calculator.hasFiredDate = false
	calculator.wentBackground = false
	handler := calculator.handler
	calculator.mu.Unlock()

	if handler != nil {
		handler(elapsed)
	}
}

func wholeSeconds(delta time.Duration) time.Duration {
	seconds := math.Floor(math.Abs(delta.Seconds()))
	return time.Duration(seconds) * time.Second
}
