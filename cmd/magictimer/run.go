package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"magictimer/internal/clock"
	"magictimer/internal/core/model"
	"magictimer/internal/core/timekeeper"
	"magictimer/internal/format"
	"magictimer/internal/logger"
	"magictimer/internal/platform"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	flags := &timerFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer in the terminal",
		Example: `  magictimer run
  magictimer run --countdown 90
  magictimer run --countdown 60 --step 2 --interval 500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts, flags)
			if err != nil {
				return err
			}
			logs, err := logger.New(cmd.ErrOrStderr(), settings.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runTerminal(ctx, cmd.OutOrStdout(), settings.TimerConfig(), logs, clock.NewRealClock())
		},
	}

	addTimerFlags(cmd, flags)
	return cmd
}

// runTerminal prints every elapsed-time update on its own line until the
// count-down finishes or ctx is cancelled.
func runTerminal(ctx context.Context, out io.Writer, config model.TimerConfig, logs *log.Logger, source clock.Clock) error {
	keeper, err := timekeeper.New(config, timekeeper.WithClock(source), timekeeper.WithLogger(logs))
	if err != nil {
		return err
	}
	defer keeper.Close()

	var (
		writeMu  sync.Mutex
		doneOnce sync.Once
	)
	finished := make(chan struct{})
	keeper.AddListener(timekeeper.ListenerFuncs{
		StateChanged: func(state timekeeper.State) {
			if state == timekeeper.StateStopped {
				doneOnce.Do(func() { close(finished) })
			}
		},
		ElapsedTimeChanged: func(seconds float64) {
			writeMu.Lock()
			defer writeMu.Unlock()
			fmt.Fprintln(out, format.Elapsed(seconds))
		},
	})

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go platform.WatchJobControl(watchCtx, keeper)

	if err := keeper.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		keeper.Stop()
		logs.Debug("interrupted", "elapsed", keeper.Elapsed())
	case <-finished:
	}
	return nil
}
