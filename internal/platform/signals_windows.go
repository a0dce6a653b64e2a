package platform

import "context"

// WatchJobControl has no job control to observe on Windows; it waits for ctx.
func WatchJobControl(ctx context.Context, _ BackgroundAware) {
	<-ctx.Done()
}
