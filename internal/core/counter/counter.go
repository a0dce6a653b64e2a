// Package counter accumulates the timer's counted value.
package counter

// Counter holds the counted total and the step applied on every tick.
type Counter struct {
	total        float64
	effective    float64
	defaultValue float64
}

// New creates a Counter with a step of one second and no default.
func New() *Counter {
	return &Counter{effective: 1}
}

// Total returns the counted value in seconds.
func (counter *Counter) Total() float64 {
	return counter.total
}

// SetTotal replaces the counted value. Used for background reconciliation.
func (counter *Counter) SetTotal(value float64) {
	counter.total = value
}

// EffectiveValue returns the step size.
func (counter *Counter) EffectiveValue() float64 {
	return counter.effective
}

// SetEffectiveValue sets the step size, clamped to zero.
func (counter *Counter) SetEffectiveValue(value float64) {
	counter.effective = nonNegative(value)
}

// DefaultValue returns the baseline used by ResetToDefaultValue.
func (counter *Counter) DefaultValue() float64 {
	return counter.defaultValue
}

// SetDefaultValue sets the baseline, clamped to zero.
func (counter *Counter) SetDefaultValue(value float64) {
	counter.defaultValue = nonNegative(value)
}

// Add adds one step to the total.
func (counter *Counter) Add() {
	counter.total += counter.effective
}

// Subtract removes one step from the total.
func (counter *Counter) Subtract() {
	counter.total -= counter.effective
}

// ResetTotalCounted sets the total to zero.
func (counter *Counter) ResetTotalCounted() {
	counter.total = 0
}

// ResetToDefaultValue sets the total to the default value.
func (counter *Counter) ResetToDefaultValue() {
	counter.total = counter.defaultValue
}

func nonNegative(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}
