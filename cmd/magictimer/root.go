package main

import (
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"magictimer/internal/storage"
	"magictimer/internal/ui/preferences"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

type timerFlags struct {
	countDown    int
	step         int
	defaultValue int
	interval     time.Duration
	noBackground bool
	noFloor      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "magictimer",
		Short: "Stop-watch and count-down timer",
		Long: heredoc.Doc(`
			MagicTimer counts up as a stop-watch or down from a number of seconds.
			Time spent suspended is folded back in when the timer resumes.
		`),
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Settings file (default is the user config dir)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newGUICmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

func addTimerFlags(cmd *cobra.Command, flags *timerFlags) {
	cmd.Flags().IntVar(&flags.countDown, "countdown", 0, "Count down from this many seconds instead of counting up")
	cmd.Flags().IntVar(&flags.step, "step", 1, "Seconds added or removed on every tick")
	cmd.Flags().IntVar(&flags.defaultValue, "default", 0, "Value used by reset to default, in seconds")
	cmd.Flags().DurationVar(&flags.interval, "interval", time.Second, "Time between ticks")
	cmd.Flags().BoolVar(&flags.noBackground, "no-background", false, "Do not count time spent suspended")
	cmd.Flags().BoolVar(&flags.noFloor, "no-floor", false, "Let a count-down that ran out while suspended reach zero")
}

// loadSettings reads the settings file and applies the flags the user set.
func loadSettings(cmd *cobra.Command, opts *rootOptions, flags *timerFlags) (preferences.Settings, error) {
	var (
		settings preferences.Settings
		err      error
	)
	if opts.configPath != "" {
		settings, err = storage.LoadSettingsFile(opts.configPath)
	} else {
		settings, err = storage.LoadSettings(appName)
	}
	if err != nil {
		return settings, err
	}

	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}
	if flags == nil {
		return settings, nil
	}

	changed := cmd.Flags().Changed
	if changed("countdown") {
		settings.Mode = preferences.ModeCountDown
		settings.CountDownSeconds = flags.countDown
	}
	if changed("step") {
		settings.EffectiveValue = flags.step
	}
	if changed("default") {
		settings.DefaultValue = flags.defaultValue
	}
	if changed("interval") {
		settings.TickInterval = flags.interval
	}
	if changed("no-background") {
		settings.BackgroundEnabled = !flags.noBackground
	}
	if changed("no-floor") {
		settings.CountdownFloor = !flags.noFloor
	}
	return settings, nil
}
