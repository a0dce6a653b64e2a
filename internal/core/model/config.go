package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfiguration indicates a negative or otherwise unusable setting.
var ErrInvalidConfiguration = errors.New("invalid timer configuration")

// ErrInvalidCountdownAlignment indicates the count-down start is not a
// multiple of the step relative to the default value.
var ErrInvalidCountdownAlignment = errors.New("count-down seconds not aligned to effective value")

// ModeKind distinguishes counting directions.
type ModeKind string

const (
	KindStopWatch ModeKind = "stopwatch"
	KindCountDown ModeKind = "countdown"
)

// Mode is the counting policy of a timer.
type Mode struct {
	Kind        ModeKind
	FromSeconds float64
}

// StopWatch counts up without bound.
func StopWatch() Mode {
	return Mode{Kind: KindStopWatch}
}

// CountDown counts down from seconds to zero.
func CountDown(seconds float64) Mode {
	return Mode{Kind: KindCountDown, FromSeconds: seconds}
}

// IsCountDown reports whether the mode counts down.
func (mode Mode) IsCountDown() bool {
	return mode.Kind == KindCountDown
}

func (mode Mode) String() string {
	if mode.IsCountDown() {
		return fmt.Sprintf("countdown(%gs)", mode.FromSeconds)
	}
	return string(KindStopWatch)
}

// TimerConfig contains the settings of a single timer engine.
type TimerConfig struct {
	DefaultValue      float64
	EffectiveValue    float64
	TickInterval      time.Duration
	Mode              Mode
	BackgroundEnabled bool
	// CountdownFloor keeps an exhausted count-down at one second after
	// background reconciliation instead of zero.
	CountdownFloor bool
}

// DefaultTimerConfig returns a one-second stop-watch with background
// reconciliation enabled.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		DefaultValue:      0,
		EffectiveValue:    1,
		TickInterval:      time.Second,
		Mode:              StopWatch(),
		BackgroundEnabled: true,
		CountdownFloor:    true,
	}
}

// Validate checks that every value is non-negative and the mode is known.
func (config TimerConfig) Validate() error {
	if config.DefaultValue < 0 {
		return fmt.Errorf("%w: default value %g is negative", ErrInvalidConfiguration, config.DefaultValue)
	}
	if config.EffectiveValue < 0 {
		return fmt.Errorf("%w: effective value %g is negative", ErrInvalidConfiguration, config.EffectiveValue)
	}
	if config.TickInterval < 0 {
		return fmt.Errorf("%w: tick interval %s is negative", ErrInvalidConfiguration, config.TickInterval)
	}
	switch config.Mode.Kind {
	case KindStopWatch:
	case KindCountDown:
		if config.Mode.FromSeconds < 0 {
			return fmt.Errorf("%w: count-down seconds %g is negative", ErrInvalidConfiguration, config.Mode.FromSeconds)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, config.Mode.Kind)
	}
	return nil
}
