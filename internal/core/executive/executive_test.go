package executive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magictimer/internal/clock"
)

func newFakeExecutive(t *testing.T) (*Executive, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(fake), fake
}

func waitTick(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case value := <-ch:
		return value
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
		return ""
	}
}

func TestNew_DefaultInterval(t *testing.T) {
	executive := New(nil)

	assert.Equal(t, DefaultInterval, executive.TimeInterval())
	assert.False(t, executive.IsFiring())
}

func TestExecutive_FireDeliversTicks(t *testing.T) {
	executive, fake := newFakeExecutive(t)
	ticks := make(chan string, 4)
	executive.SetHandler(func() { ticks <- "tick" })

	started := 0
	executive.Fire(func() { started++ })
	require.True(t, executive.IsFiring())
	assert.Equal(t, 1, started)

	for i := 0; i < 3; i++ {
		require.Equal(t, 1, fake.Tick())
		assert.Equal(t, "tick", waitTick(t, ticks))
	}
}

func TestExecutive_FireIsIdempotent(t *testing.T) {
	executive, fake := newFakeExecutive(t)

	started := 0
	executive.Fire(func() { started++ })
	executive.Fire(func() { started++ })

	assert.Equal(t, 2, started)
	assert.Equal(t, 1, fake.Active())
}

func TestExecutive_SuspendStopsTicks(t *testing.T) {
	executive, fake := newFakeExecutive(t)
	executive.Fire(nil)

	stopped := 0
	executive.Suspend(func() { stopped++ })

	assert.Equal(t, 1, stopped)
	assert.False(t, executive.IsFiring())
	assert.Equal(t, 0, fake.Active())
	assert.Equal(t, 0, fake.Tick())
}

func TestExecutive_SuspendWhenIdle(t *testing.T) {
	executive, _ := newFakeExecutive(t)

	stopped := 0
	executive.Suspend(func() { stopped++ })
	executive.Suspend(nil)

	assert.Equal(t, 1, stopped)
	assert.False(t, executive.IsFiring())
}

func TestExecutive_SuspendFromHandler(t *testing.T) {
	executive, fake := newFakeExecutive(t)
	done := make(chan string, 1)
	executive.SetHandler(func() {
		executive.Suspend(nil)
		done <- "suspended"
	})
	executive.Fire(nil)

	require.Equal(t, 1, fake.Tick())
	assert.Equal(t, "suspended", waitTick(t, done))
	assert.False(t, executive.IsFiring())
}

func TestExecutive_ReplaceHandler(t *testing.T) {
	executive, fake := newFakeExecutive(t)
	ticks := make(chan string, 2)
	executive.SetHandler(func() { ticks <- "first" })
	executive.Fire(nil)

	require.Equal(t, 1, fake.Tick())
	assert.Equal(t, "first", waitTick(t, ticks))

	executive.SetHandler(func() { ticks <- "second" })
	require.Equal(t, 1, fake.Tick())
	assert.Equal(t, "second", waitTick(t, ticks))
}

func TestExecutive_RefireUsesNewInterval(t *testing.T) {
	executive, fake := newFakeExecutive(t)
	ticks := make(chan string, 1)
	executive.SetHandler(func() { ticks <- "tick" })
	executive.SetTimeInterval(0)
	executive.Fire(nil)
	executive.Suspend(nil)

	executive.SetTimeInterval(2 * time.Second)
	executive.Fire(nil)
	before := fake.Now()

	require.Equal(t, 1, fake.Tick())
	waitTick(t, ticks)
	assert.Equal(t, 2*time.Second, fake.Now().Sub(before))
}
