package events

import (
	"sort"
	"sync"
	"time"
)

// DefaultResizeDebounce is the quiet period before a resize is reported.
const DefaultResizeDebounce = 100 * time.Millisecond

type pendingTimer struct {
	timer *time.Timer
	gen   uint64
}

// Debouncer runs fire(key) once per key after delay has passed without
// another Schedule for that key. Each Schedule cancels and re-arms the key's
// timer.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fire    func(key string)
	pending map[string]pendingTimer
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer. A non-positive delay selects
// DefaultResizeDebounce.
func NewDebouncer(delay time.Duration, fire func(key string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultResizeDebounce
	}
	return &Debouncer{
		delay:   delay,
		fire:    fire,
		pending: make(map[string]pendingTimer),
	}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule (re)arms the timer for key.
func (d *Debouncer) Schedule(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.pending[key] = pendingTimer{
		gen: gen,
		timer: time.AfterFunc(d.delay, func() {
			d.expire(key, gen)
		}),
	}
}

// expire fires key unless it was re-armed or cancelled after this timer
// was created.
func (d *Debouncer) expire(key string, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if !ok || p.gen != gen || d.stopped {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	d.fire(key)
}

// Cancel drops the pending timer for key. It reports whether one existed.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[key]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(d.pending, key)
	return true
}

// Pending returns the keys with an armed timer, sorted.
func (d *Debouncer) Pending() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]string, 0, len(d.pending))
	for key := range d.pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Flush fires every pending key now, in key order, on the calling
// goroutine.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.pending))
	for key, p := range d.pending {
		p.timer.Stop()
		keys = append(keys, key)
	}
	d.pending = make(map[string]pendingTimer)
	d.mu.Unlock()

	sort.Strings(keys)
	for _, key := range keys {
		d.fire(key)
	}
}

// Stop cancels every pending timer; later Schedules are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, p := range d.pending {
		p.timer.Stop()
	}
	d.pending = make(map[string]pendingTimer)
	d.stopped = true
}
