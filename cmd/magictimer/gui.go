package main

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"magictimer/internal/core/timekeeper"
	"magictimer/internal/format"
	"magictimer/internal/logger"
	"magictimer/internal/platform"
	"magictimer/internal/storage"
	"magictimer/internal/ui/preferences"
	"magictimer/internal/ui/timerview"
	"magictimer/internal/ui/tray"
)

func newGUICmd(opts *rootOptions) *cobra.Command {
	flags := &timerFlags{}

	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Open the timer window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts, flags)
			if err != nil {
				return err
			}
			logs, err := logger.New(cmd.ErrOrStderr(), settings.LogLevel)
			if err != nil {
				return err
			}

			guard, err := platform.AcquireSingleInstance(appName)
			if errors.Is(err, platform.ErrAlreadyRunning) {
				if activateErr := platform.ActivateRunning(appName); activateErr != nil {
					logs.Warn("raise running timer", "error", activateErr)
					return err
				}
				logs.Info("timer already running, raised its window")
				return nil
			}
			if err != nil {
				return err
			}
			defer func() {
				_ = guard.Release()
			}()

			keeper, err := timekeeper.New(settings.TimerConfig(), timekeeper.WithLogger(logs))
			if err != nil {
				return err
			}
			defer keeper.Close()

			fyneApp := app.NewWithID("io.magictimer.app")
			window := fyneApp.NewWindow(appName)

			var trayManager *tray.Manager
			view := timerview.New(keeper, format.Standard{}, func(state timekeeper.State, text string) {
				if trayManager != nil {
					trayManager.SetState(state)
					trayManager.SetStatus(text)
				}
			})
			keeper.AddListener(view)
			if platform.BindLifecycle(fyne.CurrentDevice(), fyneApp.Lifecycle(), keeper) {
				logs.Debug("background reconciliation bound to app lifecycle")
			}

			prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
				if err := keeper.Configure(updated.TimerConfig()); err != nil {
					logs.Error("apply settings", "error", err)
					return
				}
				settings = updated
				if err := saveGUISettings(opts, settings); err != nil {
					logs.Error("save settings", "error", err)
				}
			})

			if desktopApp, ok := fyneApp.(desktop.App); ok {
				trayManager = tray.New(desktopApp, tray.Callbacks{
					OnPreferences: prefsWindow.Show,
					OnStart: func() {
						if err := keeper.Start(); err != nil {
							logs.Error("start timer", "error", err)
						}
					},
					OnStop:           keeper.Stop,
					OnReset:          keeper.Reset,
					OnResetToDefault: keeper.ResetToDefault,
					OnQuit:           fyneApp.Quit,
				})
				window.SetCloseIntercept(window.Hide)
			}

			guard.OnActivate(func() {
				fyne.Do(func() {
					window.Show()
					window.RequestFocus()
				})
			})

			window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Timer",
				fyne.NewMenuItem("Preferences", prefsWindow.Show),
			)))
			window.SetContent(view.Content())
			window.Resize(fyne.NewSize(420, 240))
			window.ShowAndRun()
			return nil
		},
	}

	addTimerFlags(cmd, flags)
	return cmd
}

func saveGUISettings(opts *rootOptions, settings preferences.Settings) error {
	if opts.configPath != "" {
		return storage.SaveSettingsFile(opts.configPath, settings)
	}
	return storage.SaveSettings(appName, settings)
}
