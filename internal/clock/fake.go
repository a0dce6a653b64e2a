package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Clock. Time only moves on Advance or Set and
// tickers only fire on Tick.
type Fake struct {
	mu      sync.Mutex
	current time.Time
	tickers []*fakeTicker
}

// NewFake returns a Fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{current: start}
}

// Now returns the fake current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Advance moves the clock forward by d without firing tickers.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.current = f.current.Add(d)
	f.mu.Unlock()
}

// Set moves the clock to t without firing tickers.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.current = t
	f.mu.Unlock()
}

// NewTicker registers a ticker that fires on Tick.
func (f *Fake) NewTicker(d time.Duration) Ticker {
	ticker := &fakeTicker{
		owner:    f,
		interval: d,
		ch:       make(chan time.Time),
		done:     make(chan struct{}),
	}
	f.mu.Lock()
	f.tickers = append(f.tickers, ticker)
	f.mu.Unlock()
	return ticker
}

// Active returns the number of tickers that have not been stopped.
func (f *Fake) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// Tick advances the clock by each active ticker's interval and hands one tick
// to every active ticker. It blocks until each tick has been received or its
// ticker stopped, and returns how many ticks were received.
func (f *Fake) Tick() int {
	f.mu.Lock()
	tickers := append([]*fakeTicker(nil), f.tickers...)
	if len(tickers) > 0 {
		f.current = f.current.Add(tickers[0].interval)
	}
	now := f.current
	f.mu.Unlock()

	delivered := 0
	for _, ticker := range tickers {
		select {
		case ticker.ch <- now:
			delivered++
		case <-ticker.done:
		}
	}
	return delivered
}

func (f *Fake) remove(target *fakeTicker) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, ticker := range f.tickers {
		if ticker == target {
			f.tickers = append(f.tickers[:i], f.tickers[i+1:]...)
			return
		}
	}
}

type fakeTicker struct {
	owner    *Fake
	interval time.Duration
	ch       chan time.Time
	done     chan struct{}
	once     sync.Once
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTicker) Stop() {
	t.once.Do(func() {
		close(t.done)
		t.owner.remove(t)
	})
}
