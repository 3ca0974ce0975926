// Package events delivers pane lifecycle events: a per-window-manager
// dispatcher, a trailing debouncer for resize bursts and the JSON schema of
// the wire contract.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/sashes/internal/application/port"
	"github.com/bnema/sashes/internal/domain/entity"
)

// Handler receives one event. Handlers run synchronously on the emitting
// goroutine.
type Handler func(event entity.PaneEvent)

// Subscription identifies a registered handler. Funcs are not comparable,
// so Off takes the token returned by On.
type Subscription struct {
	id        uint64
	eventType entity.EventType
}

// EventType returns the type the subscription listens to.
func (s Subscription) EventType() entity.EventType { return s.eventType }

// IsZero reports whether s is the zero Subscription.
func (s Subscription) IsZero() bool { return s.id == 0 }

func (s Subscription) String() string {
	return fmt.Sprintf("%s#%d", s.eventType, s.id)
}

type registration struct {
	id      uint64
	handler Handler
}

// Dispatcher is a typed publish/subscribe registry. Emission iterates over
// a copy of the handler list taken when Emit starts, so handlers may
// subscribe or unsubscribe freely while an event is in flight.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[entity.EventType][]registration
	nextID   uint64

	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used to report handler panics.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger.With().Str("component", "events").Logger()
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

var _ port.EventPublisher = (*Dispatcher)(nil)

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[entity.EventType][]registration),
		now:      time.Now,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// On registers handler for exactly one event type.
func (d *Dispatcher) On(t entity.EventType, handler Handler) (Subscription, error) {
	if !t.IsValid() {
		return Subscription{}, fmt.Errorf("%w: %q", entity.ErrUnknownEventType, string(t))
	}
	if handler == nil {
		return Subscription{}, fmt.Errorf("handler is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	reg := registration{id: d.nextID, handler: handler}
	d.handlers[t] = append(d.handlers[t], reg)
	return Subscription{id: reg.id, eventType: t}, nil
}

// OnEvery registers handler for all ten event types, e.g. for a journal.
func (d *Dispatcher) OnEvery(handler Handler) ([]Subscription, error) {
	subs := make([]Subscription, 0, len(entity.EventTypes()))
	for _, t := range entity.EventTypes() {
		sub, err := d.On(t, handler)
		if err != nil {
			for _, s := range subs {
				d.Off(s)
			}
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// Off removes a subscription. It reports whether it was registered.
func (d *Dispatcher) Off(sub Subscription) bool {
	if sub.IsZero() {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	regs := d.handlers[sub.eventType]
	for i, reg := range regs {
		if reg.id != sub.id {
			continue
		}
		// Copy so in-flight snapshots keep their backing array.
		next := make([]registration, 0, len(regs)-1)
		next = append(next, regs[:i]...)
		next = append(next, regs[i+1:]...)
		if len(next) == 0 {
			delete(d.handlers, sub.eventType)
		} else {
			d.handlers[sub.eventType] = next
		}
		return true
	}
	return false
}

// Count returns the number of handlers registered for t.
func (d *Dispatcher) Count(t entity.EventType) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[t])
}

// Emit stamps an event and delivers it to every handler registered for t,
// in registration order. Each handler gets its own copy of the event. A
// panicking handler is logged and skipped.
func (d *Dispatcher) Emit(t entity.EventType, pane entity.PanePayload, ctx *entity.EventContext) (entity.PaneEvent, error) {
	if !t.IsValid() {
		return entity.PaneEvent{}, fmt.Errorf("%w: %q", entity.ErrUnknownEventType, string(t))
	}
	event := entity.NewPaneEvent(t, pane, ctx, d.now())

	d.mu.RLock()
	regs := d.handlers[t]
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)
	d.mu.RUnlock()

	for _, reg := range snapshot {
		d.deliver(reg, event)
	}
	return event, nil
}

func (d *Dispatcher) deliver(reg registration, event entity.PaneEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("event_type", string(event.Type)).
				Str("pane_id", event.Pane.ID).
				Uint64("subscription", reg.id).
				Interface("panic", r).
				Msg("event handler panicked")
		}
	}()
	reg.handler(event.Clone())
}
