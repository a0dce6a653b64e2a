package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magictimer/internal/core/model"
	"magictimer/internal/ui/preferences"
)

func TestLoadSettingsFile_MissingReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", settingsFileName)
	want := preferences.Settings{
		Mode:              preferences.ModeCountDown,
		CountDownSeconds:  90,
		EffectiveValue:    2,
		DefaultValue:      0,
		TickInterval:      500 * time.Millisecond,
		BackgroundEnabled: false,
		CountdownFloor:    false,
		LogLevel:          "debug",
	}

	require.NoError(t, SaveSettingsFile(path, want))
	got, err := LoadSettingsFile(path)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, model.CountDown(90), got.TimerConfig().Mode)
}

func TestLoadSettingsFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("mode: countdown\ncountdown_seconds: 30\n"), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)

	defaults := preferences.DefaultSettings()
	assert.Equal(t, preferences.ModeCountDown, settings.Mode)
	assert.Equal(t, 30, settings.CountDownSeconds)
	assert.Equal(t, defaults.TickInterval, settings.TickInterval)
	assert.True(t, settings.BackgroundEnabled)
	assert.True(t, settings.CountdownFloor)
}

func TestLoadSettingsFile_IgnoresUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("mode: lap\n"), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, preferences.ModeStopWatch, settings.Mode)
}

func TestLoadSettingsFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("mode: [unterminated"), 0o644))

	settings, err := LoadSettingsFile(path)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestMarshalSettings_Layout(t *testing.T) {
	data, err := MarshalSettings(preferences.DefaultSettings())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "mode: stopwatch")
	assert.Contains(t, text, "tick_interval: 1s")
	assert.Contains(t, text, "background_enabled: true")
}

func TestSaveAndLoadSettingsFile_KeepsZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	want := preferences.DefaultSettings()
	want.Mode = preferences.ModeCountDown
	want.CountDownSeconds = 0
	want.EffectiveValue = 0
	want.TickInterval = 0

	require.NoError(t, SaveSettingsFile(path, want))
	got, err := LoadSettingsFile(path)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestLoadSettingsFile_ExplicitZeroes(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	raw := "countdown_seconds: 0\neffective_value: 0\ndefault_value: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)

	assert.Equal(t, 0, settings.CountDownSeconds)
	assert.Equal(t, 0, settings.EffectiveValue)
	assert.Equal(t, 0, settings.DefaultValue)
}

func TestSaveAndLoadSettingsFile_SubMillisecondInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	want := preferences.DefaultSettings()
	want.TickInterval = 250 * time.Microsecond

	require.NoError(t, SaveSettingsFile(path, want))
	got, err := LoadSettingsFile(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Microsecond, got.TickInterval)
}

func TestLoadSettingsFile_NegativeValuesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	raw := "countdown_seconds: -5\neffective_value: -1\ntick_interval: -1s\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)

	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.CountDownSeconds, settings.CountDownSeconds)
	assert.Equal(t, defaults.EffectiveValue, settings.EffectiveValue)
	assert.Equal(t, defaults.TickInterval, settings.TickInterval)
}
