package sashes

import (
	"sync"
	"time"
)

// AutoFitter coalesces container resize notifications into at most one
// Fit per interval. Hosts call Notify from their resize observer.
type AutoFitter struct {
	wm       *WindowManager
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	fits    int
}

// NewAutoFitter creates a fitter for wm. A non-positive interval selects
// the manager's FitInterval.
func NewAutoFitter(wm *WindowManager, interval time.Duration) *AutoFitter {
	if interval <= 0 {
		interval = wm.opts.FitInterval
	}
	return &AutoFitter{wm: wm, interval: interval}
}

// Notify signals that the container may have changed size.
func (f *AutoFitter) Notify() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stopped || f.timer != nil {
		return
	}
	f.timer = time.AfterFunc(f.interval, f.fit)
}

func (f *AutoFitter) fit() {
	f.mu.Lock()
	f.timer = nil
	if f.stopped {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	changed, err := f.wm.Fit()
	if err != nil {
		f.wm.log.Error().Err(err).Msg("failed to fit layout to container")
		return
	}
	if changed {
		f.mu.Lock()
		f.fits++
		f.mu.Unlock()
	}
}

// Fits returns how many notifications changed the layout.
func (f *AutoFitter) Fits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fits
}

// Stop drops a pending fit; later notifications are ignored.
func (f *AutoFitter) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
