package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTimerConfig_IsValid(t *testing.T) {
	config := DefaultTimerConfig()

	assert.NoError(t, config.Validate())
	assert.Equal(t, StopWatch(), config.Mode)
	assert.True(t, config.BackgroundEnabled)
	assert.True(t, config.CountdownFloor)
}

func TestTimerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TimerConfig)
		wantErr bool
	}{
		{"zero values allowed", func(c *TimerConfig) { c.EffectiveValue = 0; c.TickInterval = 0 }, false},
		{"count-down", func(c *TimerConfig) { c.Mode = CountDown(10) }, false},
		{"negative default", func(c *TimerConfig) { c.DefaultValue = -1 }, true},
		{"negative effective", func(c *TimerConfig) { c.EffectiveValue = -1 }, true},
		{"negative interval", func(c *TimerConfig) { c.TickInterval = -time.Second }, true},
		{"negative count-down", func(c *TimerConfig) { c.Mode = CountDown(-5) }, true},
		{"unknown mode", func(c *TimerConfig) { c.Mode = Mode{Kind: "lap"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultTimerConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "stopwatch", StopWatch().String())
	assert.Equal(t, "countdown(90s)", CountDown(90).String())
	assert.True(t, CountDown(1).IsCountDown())
	assert.False(t, StopWatch().IsCountDown())
}
