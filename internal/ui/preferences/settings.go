package preferences

import (
	"time"

	"magictimer/internal/core/model"
)

const (
	ModeStopWatch = "stopwatch"
	ModeCountDown = "countdown"
)

// Settings defines editable user preferences.
type Settings struct {
	Mode             string
	CountDownSeconds int
	EffectiveValue   int
	DefaultValue     int
	TickInterval     time.Duration

	BackgroundEnabled bool
	CountdownFloor    bool

	LogLevel string
}

// DefaultSettings returns default settings for MagicTimer.
func DefaultSettings() Settings {
	return Settings{
		Mode:              ModeStopWatch,
		CountDownSeconds:  60,
		EffectiveValue:    1,
		DefaultValue:      0,
		TickInterval:      time.Second,
		BackgroundEnabled: true,
		CountdownFloor:    true,
		LogLevel:          "info",
	}
}

// TimerConfig converts settings to a TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	mode := model.StopWatch()
	if settings.Mode == ModeCountDown {
		mode = model.CountDown(float64(settings.CountDownSeconds))
	}
	return model.TimerConfig{
		DefaultValue:      float64(settings.DefaultValue),
		EffectiveValue:    float64(settings.EffectiveValue),
		TickInterval:      settings.TickInterval,
		Mode:              mode,
		BackgroundEnabled: settings.BackgroundEnabled,
		CountdownFloor:    settings.CountdownFloor,
	}
}
