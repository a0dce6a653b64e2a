package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// RealClock tests
// =============================================================================

func TestRealClock_Now(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	got := clock.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "Now() = %v is before %v", got, before)
	assert.False(t, got.After(after), "Now() = %v is after %v", got, after)
}

func TestRealClock_Ticker(t *testing.T) {
	clock := NewRealClock()
	ticker := clock.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
	case <-time.After(time.Second):
		t.Fatal("real ticker did not fire")
	}
}

// =============================================================================
// Fake tests
// =============================================================================

func TestFake_AdvanceAndSet(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fake := NewFake(start)

	assert.Equal(t, start, fake.Now())

	fake.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), fake.Now())

	fake.Set(start)
	assert.Equal(t, start, fake.Now())
}

func TestFake_TickDeliversToActiveTicker(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fake := NewFake(start)
	ticker := fake.NewTicker(time.Second)
	require.Equal(t, 1, fake.Active())

	received := make(chan time.Time, 1)
	go func() {
		received <- <-ticker.C()
	}()

	assert.Equal(t, 1, fake.Tick())
	select {
	case at := <-received:
		assert.Equal(t, start.Add(time.Second), at)
	case <-time.After(time.Second):
		t.Fatal("tick not received")
	}
}

func TestFake_TickSkipsStoppedTicker(t *testing.T) {
	fake := NewFake(time.Now())
	ticker := fake.NewTicker(time.Second)
	ticker.Stop()
	ticker.Stop()

	assert.Equal(t, 0, fake.Active())
	assert.Equal(t, 0, fake.Tick())
}
