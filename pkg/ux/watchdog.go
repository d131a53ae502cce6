package ux

import (
	"log/slog"
	"time"

	"go.uber.org/atomic"

	"github.com/reardencode/firmware/pkg/ux/internal"
	"github.com/reardencode/firmware/pkg/ux/keypad"
	"github.com/reardencode/firmware/pkg/ux/settings"
)

// DefaultIdleTimeout applies when the user never configured one.
const DefaultIdleTimeout = 4 * time.Hour

// IdleTimeoutSetting is the settings key holding the idle timeout in
// seconds. Zero disables the idle logout.
const IdleTimeoutSetting = "idle_to"

const watchdogInterval = 5 * time.Second

// Watchdog measures elapsed time since the last key event and forces a
// logout when the configured idle timeout is exceeded. One watchdog is
// started per login session; after firing it terminates and a fresh login
// starts a new one.
type Watchdog struct {
	Keys     keypad.Source
	Settings *settings.Store
	Secure   *atomic.Bool

	// Logout is the external logout action, invoked exactly once.
	Logout func()

	// Interval between idle checks; defaults to 5 seconds.
	Interval time.Duration

	log *slog.Logger
	now func() uint32
}

// NewWatchdog builds a watchdog over the context's collaborators.
func NewWatchdog(c *Context, logout func()) *Watchdog {
	return &Watchdog{
		Keys:     c.Keys,
		Settings: c.Settings,
		Secure:   c.Secure,
		Logout:   logout,
		Interval: watchdogInterval,
		log:      internal.GetLogger(),
		now:      internal.TicksMS,
	}
}

// Run is the watchdog task; start it on its own goroutine. Each cycle
// re-reads the timeout from settings, so a live settings change takes
// effect without a restart.
func (w *Watchdog) Run() {
	for {
		time.Sleep(w.Interval)

		if w.Secure.Load() {
			continue
		}

		last := w.Keys.LastEventTicks()
		if last == 0 {
			// no key event recorded yet, nothing to measure against
			continue
		}

		timeout := time.Duration(w.Settings.Get(IdleTimeoutSetting, int64(DefaultIdleTimeout/time.Second))) * time.Second
		if timeout == 0 {
			continue
		}

		idle := time.Duration(internal.TicksDiff(w.now(), last)) * time.Millisecond
		if idle > timeout {
			w.log.Info("idle timeout, logging out", "idle", idle, "timeout", timeout)
			w.Logout()
			return
		}
	}
}
