package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"magictimer/internal/storage"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or persist timer settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts, nil)
			if err != nil {
				return err
			}
			if err := settings.TimerConfig().Validate(); err != nil {
				return err
			}
			data, err := storage.MarshalSettings(settings)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	saveFlags := &timerFlags{}
	save := &cobra.Command{
		Use:   "save",
		Short: "Write the settings, with flag overrides, to the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts, saveFlags)
			if err != nil {
				return err
			}
			if err := settings.TimerConfig().Validate(); err != nil {
				return err
			}
			if err := saveGUISettings(opts, settings); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings saved")
			return nil
		},
	}
	addTimerFlags(save, saveFlags)
	cmd.AddCommand(save)

	return cmd
}
