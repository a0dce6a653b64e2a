package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"magictimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Mode              string `yaml:"mode"`
	CountDownSeconds  *int   `yaml:"countdown_seconds"`
	EffectiveValue    *int   `yaml:"effective_value"`
	DefaultValue      *int   `yaml:"default_value"`
	TickInterval      string `yaml:"tick_interval"`
	BackgroundEnabled *bool  `yaml:"background_enabled"`
	CountdownFloor    *bool  `yaml:"countdown_floor"`
	LogLevel          string `yaml:"log_level"`
}

// LoadSettings reads user preferences from YAML in the user config directory.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from the YAML file at configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML in the user config directory.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to the YAML file at configPath.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := MarshalSettings(settings)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// MarshalSettings renders settings in the on-disk YAML layout.
func MarshalSettings(settings preferences.Settings) ([]byte, error) {
	countDown := settings.CountDownSeconds
	effective := settings.EffectiveValue
	defaultValue := settings.DefaultValue
	background := settings.BackgroundEnabled
	floor := settings.CountdownFloor
	fileData := yamlSettings{
		Mode:              settings.Mode,
		CountDownSeconds:  &countDown,
		EffectiveValue:    &effective,
		DefaultValue:      &defaultValue,
		TickInterval:      settings.TickInterval.String(),
		BackgroundEnabled: &background,
		CountdownFloor:    &floor,
		LogLevel:          settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

// ResolveConfigPath returns the settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Mode == preferences.ModeStopWatch || fileData.Mode == preferences.ModeCountDown {
		settings.Mode = fileData.Mode
	}
	if value, ok := nonNegative(fileData.CountDownSeconds); ok {
		settings.CountDownSeconds = value
	}
	if value, ok := nonNegative(fileData.EffectiveValue); ok {
		settings.EffectiveValue = value
	}
	if value, ok := nonNegative(fileData.DefaultValue); ok {
		settings.DefaultValue = value
	}
	if fileData.TickInterval != "" {
		if interval, err := time.ParseDuration(fileData.TickInterval); err == nil && interval >= 0 {
			settings.TickInterval = interval
		}
	}
	if fileData.BackgroundEnabled != nil {
		settings.BackgroundEnabled = *fileData.BackgroundEnabled
	}
	if fileData.CountdownFloor != nil {
		settings.CountdownFloor = *fileData.CountdownFloor
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}

func nonNegative(value *int) (int, bool) {
	if value == nil || *value < 0 {
		return 0, false
	}
	return *value, true
}
