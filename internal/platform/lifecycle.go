package platform

import "fyne.io/fyne/v2"

// BackgroundAware receives host suspension transitions.
type BackgroundAware interface {
	EnterBackground()
	EnterForeground()
}

// Device reports whether the host suspends apps that leave the foreground.
type Device interface {
	IsMobile() bool
}

// BindLifecycle forwards fyne foreground transitions to target on mobile
// devices. Desktop drivers report focus changes through the same hooks while
// the process keeps running, so nothing is bound there. It reports whether
// the hooks were installed.
func BindLifecycle(device Device, lifecycle fyne.Lifecycle, target BackgroundAware) bool {
	if device == nil || !device.IsMobile() {
		return false
	}
	lifecycle.SetOnExitedForeground(target.EnterBackground)
	lifecycle.SetOnEnteredForeground(target.EnterForeground)
	return true
}
