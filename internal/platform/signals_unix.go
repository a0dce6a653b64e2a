//go:build !windows

package platform

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchJobControl maps terminal job control onto target: SIGTSTP enters the
// background before the process stops, SIGCONT returns to the foreground.
// It returns when ctx is done.
func WatchJobControl(ctx context.Context, target BackgroundAware) {
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTSTP, syscall.SIGCONT)
	defer signal.Stop(signals)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-signals:
			switch sig {
			case syscall.SIGTSTP:
				target.EnterBackground()
				_ = syscall.Kill(os.Getpid(), syscall.SIGSTOP)
			case syscall.SIGCONT:
				target.EnterForeground()
			}
		}
	}
}
