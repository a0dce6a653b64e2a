package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"magictimer/internal/core/timekeeper"
)

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences    func()
	OnStart          func()
	OnStop           func()
	OnReset          func()
	OnResetToDefault func()
	OnQuit           func()
}

// Manager handles system tray state.
type Manager struct {
	host        MenuHost
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	stopItem    *fyne.MenuItem
	state       timekeeper.State
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:        host,
		callbacks:   callbacks,
		state:       timekeeper.StateNone,
		statusLabel: "--:--",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start", invoke(func() func() { return manager.callbacks.OnStart }))
	manager.stopItem = fyne.NewMenuItem("Stop", invoke(func() func() { return manager.callbacks.OnStop }))

	manager.applyState()
	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetState enables the menu items that make sense in state.
func (manager *Manager) SetState(state timekeeper.State) {
	manager.state = state
	manager.applyState()
	manager.refreshStatus()
}

// Menu returns the menu currently shown in the tray.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("MagicTimer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.stopItem,
		fyne.NewMenuItem("Reset", invoke(func() func() { return manager.callbacks.OnReset })),
		fyne.NewMenuItem("Reset to default", invoke(func() func() { return manager.callbacks.OnResetToDefault })),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(func() func() { return manager.callbacks.OnPreferences })),
		fyne.NewMenuItem("Quit", invoke(func() func() { return manager.callbacks.OnQuit })),
	)
}

func (manager *Manager) applyState() {
	running := manager.state == timekeeper.StateFired
	manager.startItem.Disabled = running
	manager.stopItem.Disabled = !running
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("%s (%s)", manager.statusLabel, manager.state)
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.Menu())
	}
}

func invoke(lookup func() func()) func() {
	return func() {
		if callback := lookup(); callback != nil {
			callback()
		}
	}
}
