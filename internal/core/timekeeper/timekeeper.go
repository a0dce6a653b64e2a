package timekeeper

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"magictimer/internal/clock"
	"magictimer/internal/core/background"
	"magictimer/internal/core/counter"
	"magictimer/internal/core/executive"
	"magictimer/internal/core/model"
)

// ErrTimerRunning indicates a setting cannot change while the timer is fired.
var ErrTimerRunning = errors.New("timer is running")

// ErrClosed indicates the TimeKeeper was closed.
var ErrClosed = errors.New("timekeeper closed")

// Option customises a TimeKeeper.
type Option func(*TimeKeeper)

// WithClock injects the clock used for ticking and background timestamps.
func WithClock(source clock.Clock) Option {
	return func(keeper *TimeKeeper) {
		if source != nil {
			keeper.clock = source
		}
	}
}

// WithLogger injects a logger.
func WithLogger(logger *log.Logger) Option {
	return func(keeper *TimeKeeper) {
		if logger != nil {
			keeper.logger = logger
		}
	}
}

// WithListener registers a listener at construction.
func WithListener(listener Listener) Option {
	return func(keeper *TimeKeeper) {
		if listener != nil {
			keeper.listeners = append(keeper.listeners, listener)
		}
	}
}

// TimeKeeper is a stop-watch / count-down state machine. It owns one
// counter, one executive and one background calculator.
type TimeKeeper struct {
	mu         sync.Mutex
	config     model.TimerConfig
	clock      clock.Clock
	logger     *log.Logger
	counter    *counter.Counter
	executive  *executive.Executive
	background *background.Calculator
	state      State
	run        uint64
	// baseline is the counted value when the fired date was last set.
	baseline float64
	// parked is set while ticking is suspended for a background transition.
	parked    bool
	listeners []Listener
	events    []chan Event
	closed    bool
}

// New creates a TimeKeeper with the provided configuration.
func New(config model.TimerConfig, opts ...Option) (*TimeKeeper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	keeper := &TimeKeeper{
		clock:  clock.NewRealClock(),
		logger: log.Default(),
		state:  StateNone,
	}
	for _, opt := range opts {
		opt(keeper)
	}
	keeper.logger = keeper.logger.WithPrefix("timekeeper")

	keeper.counter = counter.New()
	keeper.executive = executive.New(keeper.clock)
	keeper.background = background.New(keeper.clock)
	keeper.background.SetHandler(keeper.reconcile)
	keeper.applyConfigLocked(config)

	keeper.logger.Debug("initialized", "mode", config.Mode)
	return keeper, nil
}

// Configure replaces the configuration. On error the previous configuration
// stays in effect. While the timer is fired the mode cannot change, and a
// count-down keeps the step and default it was aligned with at Start.
func (keeper *TimeKeeper) Configure(config model.TimerConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return ErrClosed
	}
	if keeper.state == StateFired {
		if config.Mode != keeper.config.Mode {
			return fmt.Errorf("change mode to %s: %w", config.Mode, ErrTimerRunning)
		}
		if config.Mode.IsCountDown() && (config.EffectiveValue != keeper.config.EffectiveValue ||
			config.DefaultValue != keeper.config.DefaultValue) {
			return fmt.Errorf("change count-down step: %w", ErrTimerRunning)
		}
	}
	keeper.applyConfigLocked(config)
	if keeper.state == StateFired && !keeper.parked {
		// Ticks counted so far used the previous step.
		keeper.baseline = keeper.counter.Total()
		keeper.background.SetFiredDate(keeper.clock.Now())
	}
	keeper.logger.Debug("configured", "mode", config.Mode, "effective", config.EffectiveValue, "interval", config.TickInterval)
	return nil
}

// Config returns the active configuration.
func (keeper *TimeKeeper) Config() model.TimerConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config
}

// State returns the current state.
func (keeper *TimeKeeper) State() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Elapsed returns the counted value in seconds.
func (keeper *TimeKeeper) Elapsed() float64 {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.counter.Total()
}

// AddListener registers a listener.
func (keeper *TimeKeeper) AddListener(listener Listener) {
	if listener == nil {
		return
	}
	keeper.mu.Lock()
	keeper.listeners = append(keeper.listeners, listener)
	keeper.mu.Unlock()
}

// Subscribe registers a new observer channel. Events are dropped when the
// channel buffer is full.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Start begins counting in the configured mode.
func (keeper *TimeKeeper) Start() error {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return ErrClosed
	}

	mode := keeper.config.Mode
	if mode.IsCountDown() {
		if err := keeper.checkAlignmentLocked(mode.FromSeconds); err != nil {
			keeper.mu.Unlock()
			return err
		}
		keeper.counter.SetTotal(mode.FromSeconds)
	}

	keeper.fireLocked()
	keeper.state = StateFired

	pending := []Event{
		keeper.stateEventLocked(),
		keeper.elapsedEventLocked(),
	}
	keeper.emitLocked(pending)
	listeners := keeper.listenersLocked()
	keeper.mu.Unlock()

	keeper.logger.Info("timer started", "mode", mode)
	notify(listeners, pending)
	return nil
}

// Stop suspends counting. It does nothing unless the timer is fired.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if keeper.closed || keeper.state != StateFired {
		keeper.mu.Unlock()
		return
	}
	keeper.suspendLocked()
	keeper.state = StateStopped

	pending := []Event{keeper.stateEventLocked()}
	keeper.emitLocked(pending)
	listeners := keeper.listenersLocked()
	keeper.mu.Unlock()

	keeper.logger.Info("timer stopped")
	notify(listeners, pending)
}

// Reset suspends counting and sets the counted value to zero.
func (keeper *TimeKeeper) Reset() {
	keeper.restart(keeper.counter.ResetTotalCounted, "timer restarted")
}

// ResetToDefault suspends counting and sets the counted value to the default.
func (keeper *TimeKeeper) ResetToDefault() {
	keeper.restart(keeper.counter.ResetToDefaultValue, "timer restarted to default")
}

// EnterBackground signals that the host is about to stop delivering ticks.
// With background reconciliation enabled, a fired timer stops ticking until
// EnterForeground.
func (keeper *TimeKeeper) EnterBackground() {
	keeper.mu.Lock()
	if !keeper.closed && keeper.state == StateFired && keeper.config.BackgroundEnabled && !keeper.parked {
		keeper.suspendLocked()
		keeper.parked = true
		keeper.logger.Debug("ticking parked for background")
	}
	keeper.mu.Unlock()

	keeper.background.EnterBackground()
}

// EnterForeground signals the host resumed. The counted value is recomputed
// from the wall-clock time elapsed since the timer last fired, then ticking
// resumes.
func (keeper *TimeKeeper) EnterForeground() {
	keeper.background.EnterForeground()

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || !keeper.parked || keeper.state != StateFired {
		return
	}
	keeper.fireLocked()
	keeper.logger.Debug("ticking resumed from background")
}

// Close stops counting and closes observer channels.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.suspendLocked()
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.listeners = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	keeper.logger.Debug("closed")
}

func (keeper *TimeKeeper) restart(resetCounter func(), message string) {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.suspendLocked()
	resetCounter()
	keeper.state = StateRestarted

	pending := []Event{
		keeper.stateEventLocked(),
		keeper.elapsedEventLocked(),
	}
	keeper.emitLocked(pending)
	listeners := keeper.listenersLocked()
	keeper.mu.Unlock()

	keeper.logger.Info(message)
	notify(listeners, pending)
}

func (keeper *TimeKeeper) tick(run uint64) {
	keeper.mu.Lock()
	if keeper.closed || run != keeper.run || keeper.state != StateFired {
		keeper.mu.Unlock()
		return
	}

	var pending []Event
	if keeper.config.Mode.IsCountDown() {
		pending = keeper.countDownLocked()
	} else {
		keeper.counter.Add()
		pending = []Event{keeper.elapsedEventLocked()}
	}
	keeper.emitLocked(pending)
	listeners := keeper.listenersLocked()
	keeper.mu.Unlock()

	notify(listeners, pending)
}

func (keeper *TimeKeeper) countDownLocked() []Event {
	if keeper.counter.Total() > 0 {
		keeper.counter.Subtract()
		if keeper.counter.Total() > 0 {
			return []Event{keeper.elapsedEventLocked()}
		}
	}
	keeper.suspendLocked()
	keeper.state = StateStopped
	keeper.logger.Info("count-down finished")
	return []Event{keeper.stateEventLocked()}
}

func (keeper *TimeKeeper) reconcile(elapsed time.Duration) {
	keeper.mu.Lock()
	if keeper.closed || keeper.state != StateFired {
		keeper.mu.Unlock()
		return
	}

	counted := keeper.ticksIn(elapsed) * keeper.config.EffectiveValue
	if keeper.config.Mode.IsCountDown() {
		remaining := keeper.baseline - counted
		switch {
		case remaining > 0:
			keeper.counter.SetTotal(remaining)
		case keeper.config.CountdownFloor:
			keeper.counter.SetTotal(1)
		default:
			keeper.counter.SetTotal(0)
		}
	} else {
		keeper.counter.SetTotal(keeper.baseline + counted)
	}

	pending := []Event{keeper.elapsedEventLocked()}
	keeper.emitLocked(pending)
	listeners := keeper.listenersLocked()
	total := keeper.counter.Total()
	keeper.mu.Unlock()

	keeper.logger.Debug("background time reconciled", "elapsed", elapsed, "total", total)
	notify(listeners, pending)
}

func (keeper *TimeKeeper) checkAlignmentLocked(fromSeconds float64) error {
	effective := keeper.config.EffectiveValue
	if effective == 0 || math.Mod(keeper.config.DefaultValue+fromSeconds, effective) != 0 {
		return fmt.Errorf("%w: default %g + count-down %g with step %g",
			model.ErrInvalidCountdownAlignment, keeper.config.DefaultValue, fromSeconds, effective)
	}
	return nil
}

func (keeper *TimeKeeper) applyConfigLocked(config model.TimerConfig) {
	keeper.config = config
	keeper.counter.SetDefaultValue(config.DefaultValue)
	keeper.counter.SetEffectiveValue(config.EffectiveValue)
	keeper.executive.SetTimeInterval(config.TickInterval)
	keeper.background.SetActive(config.BackgroundEnabled)
}

// fireLocked opens a new run and records the fired date and the value
// counted so far.
func (keeper *TimeKeeper) fireLocked() {
	keeper.run++
	run := keeper.run
	keeper.parked = false
	keeper.baseline = keeper.counter.Total()
	keeper.executive.SetHandler(func() {
		keeper.tick(run)
	})
	keeper.executive.Fire(func() {
		keeper.background.SetFiredDate(keeper.clock.Now())
	})
}

// suspendLocked stops the executive and invalidates ticks already in flight.
func (keeper *TimeKeeper) suspendLocked() {
	keeper.executive.Suspend(nil)
	keeper.run++
	keeper.parked = false
}

// ticksIn returns how many whole ticks fit in elapsed.
func (keeper *TimeKeeper) ticksIn(elapsed time.Duration) float64 {
	interval := keeper.config.TickInterval
	if interval <= 0 {
		interval = executive.DefaultInterval
	}
	return math.Floor(float64(elapsed) / float64(interval))
}

func (keeper *TimeKeeper) stateEventLocked() Event {
	return Event{
		Type:    EventStateChange,
		State:   keeper.state,
		Elapsed: keeper.counter.Total(),
		At:      keeper.clock.Now(),
	}
}

func (keeper *TimeKeeper) elapsedEventLocked() Event {
	return Event{
		Type:    EventElapsed,
		State:   keeper.state,
		Elapsed: keeper.counter.Total(),
		At:      keeper.clock.Now(),
	}
}

func (keeper *TimeKeeper) listenersLocked() []Listener {
	return append([]Listener(nil), keeper.listeners...)
}

func (keeper *TimeKeeper) emitLocked(pending []Event) {
	for _, event := range pending {
		for _, ch := range keeper.events {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

func notify(listeners []Listener, pending []Event) {
	for _, event := range pending {
		for _, listener := range listeners {
			deliver(listener, event)
		}
	}
}
