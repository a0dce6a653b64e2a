package timekeeper

import "time"

// State represents the current TimeKeeper mode.
type State string

const (
	StateNone      State = "none"
	StateFired     State = "fired"
	StateStopped   State = "stopped"
	StateRestarted State = "restarted"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventElapsed     EventType = "elapsed"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type    EventType
	State   State
	Elapsed float64
	At      time.Time
}

// Listener receives TimeKeeper notifications synchronously. When one call
// produces both, OnStateChanged is invoked before OnElapsedTimeChanged.
type Listener interface {
	OnStateChanged(state State)
	OnElapsedTimeChanged(seconds float64)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	StateChanged       func(State)
	ElapsedTimeChanged func(float64)
}

// OnStateChanged implements Listener.
func (funcs ListenerFuncs) OnStateChanged(state State) {
	if funcs.StateChanged != nil {
		funcs.StateChanged(state)
	}
}

// OnElapsedTimeChanged implements Listener.
func (funcs ListenerFuncs) OnElapsedTimeChanged(seconds float64) {
	if funcs.ElapsedTimeChanged != nil {
		funcs.ElapsedTimeChanged(seconds)
	}
}

func deliver(listener Listener, event Event) {
	switch event.Type {
	case EventStateChange:
		listener.OnStateChanged(event.State)
	case EventElapsed:
		listener.OnElapsedTimeChanged(event.Elapsed)
	}
}
