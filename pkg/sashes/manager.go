// Package sashes is the host-facing window manager: a sash layout tree, the
// per-pane visual state machine and a typed lifecycle event stream.
//
// Every WindowManager owns its own dispatcher. Mutations run under the
// manager's mutex; the events they cause are queued and delivered in order
// once the mutation has committed, so handlers may call back into the
// manager.
package sashes

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/sashes/internal/application/usecase"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/infrastructure/events"
	"github.com/bnema/sashes/internal/logging"
)

type queuedEvent struct {
	eventType EventType
	pane      PanePayload
	context   *EventContext
}

// WindowManager owns one layout tree and its event stream. It is safe for
// concurrent use.
type WindowManager struct {
	mu  sync.Mutex
	ctx context.Context
	log zerolog.Logger

	opts       Options
	root       *entity.Sash
	panes      *usecase.ManagePanesUseCase
	drag       *usecase.MuntinDrag
	dispatcher *events.Dispatcher
	debouncer  *events.Debouncer

	states   map[string]PaneState
	sill     []string
	focused  string
	removed  map[string]struct{}
	reported map[string]Rect

	queue    []queuedEvent
	draining bool

	recorderSubs []Subscription
}

// New builds the initial tree over the container box.
func New(ctx context.Context, opts Options) (*WindowManager, error) {
	opts = opts.withDefaults()
	ctx = logging.WithComponent(ctx, "sashes")
	log := logging.FromContext(ctx)

	box, err := opts.Container.ContainerBox(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to observe container: %w", err)
	}

	root, err := usecase.BuildLayout(ctx, opts.Layout, usecase.BuildOptions{
		Left:                 box.Left,
		Top:                  box.Top,
		Width:                box.Width,
		Height:               box.Height,
		DefaultFirstPosition: opts.DefaultFirstPosition,
		ResizeStrategy:       opts.ResizeStrategy,
		MinWidth:             opts.MinWidth,
		MinHeight:            opts.MinHeight,
		IDGenerator:          opts.IDGenerator,
	})
	if err != nil {
		return nil, err
	}

	wm := &WindowManager{
		ctx:      ctx,
		log:      *log,
		opts:     opts,
		root:     root,
		panes:    usecase.NewManagePanesUseCase(opts.IDGenerator),
		drag:     usecase.NewMuntinDrag(),
		states:   make(map[string]PaneState),
		removed:  make(map[string]struct{}),
		reported: make(map[string]Rect),
	}
	wm.dispatcher = events.NewDispatcher(events.WithLogger(*log), events.WithClock(opts.Clock))
	wm.debouncer = events.NewDebouncer(opts.ResizeDebounce, wm.fireResize)

	for _, leaf := range root.Leaves() {
		wm.states[leaf.ID] = StateNormal
		wm.reported[leaf.ID] = leaf.Rect()
	}

	if opts.Recorder != nil {
		subs, err := wm.dispatcher.OnEvery(wm.record)
		if err != nil {
			return nil, fmt.Errorf("failed to attach recorder: %w", err)
		}
		wm.recorderSubs = subs
	}

	log.Debug().
		Str("root_id", root.ID).
		Int("panes", root.LeafCount()).
		Dur("resize_debounce", opts.ResizeDebounce).
		Msg("window manager ready")

	return wm, nil
}

func (wm *WindowManager) record(event PaneEvent) {
	if err := wm.opts.Recorder.Record(wm.ctx, event); err != nil {
		wm.log.Warn().
			Err(err).
			Str("event_type", string(event.Type)).
			Str("pane_id", event.Pane.ID).
			Msg("failed to record event")
	}
}

// On subscribes handler to one event type.
func (wm *WindowManager) On(t EventType, handler Handler) (Subscription, error) {
	return wm.dispatcher.On(t, handler)
}

// OnEvery subscribes handler to all event types.
func (wm *WindowManager) OnEvery(handler Handler) ([]Subscription, error) {
	return wm.dispatcher.OnEvery(handler)
}

// Off removes a subscription.
func (wm *WindowManager) Off(sub Subscription) bool {
	return wm.dispatcher.Off(sub)
}

// FlushResizes delivers pending resize events now instead of waiting for
// the debounce period.
func (wm *WindowManager) FlushResizes() {
	wm.debouncer.Flush()
	wm.drain()
}

// Close stops pending resize timers and detaches the recorder. The tree
// stays readable.
func (wm *WindowManager) Close() {
	if pending := wm.debouncer.Pending(); len(pending) > 0 {
		wm.log.Debug().Strs("pane_ids", pending).Msg("dropping pending resize events")
	}
	wm.debouncer.Stop()
	for _, sub := range wm.recorderSubs {
		wm.dispatcher.Off(sub)
	}
	wm.recorderSubs = nil
}

// update runs fn under the lock, then delivers whatever it queued.
func (wm *WindowManager) update(fn func() error) error {
	wm.mu.Lock()
	err := fn()
	wm.mu.Unlock()

	wm.drain()
	return err
}

// drain delivers queued events in FIFO order. Only one goroutine drains at
// a time; events queued by handlers are picked up by the running loop.
func (wm *WindowManager) drain() {
	wm.mu.Lock()
	if wm.draining {
		wm.mu.Unlock()
		return
	}
	wm.draining = true

	for len(wm.queue) > 0 {
		ev := wm.queue[0]
		wm.queue = wm.queue[1:]
		wm.mu.Unlock()

		if _, err := wm.dispatcher.Emit(ev.eventType, ev.pane, ev.context); err != nil {
			wm.log.Error().Err(err).Str("event_type", string(ev.eventType)).Msg("failed to emit event")
		}

		wm.mu.Lock()
	}

	wm.draining = false
	wm.mu.Unlock()
}

// enqueueLocked snapshots s and queues an event for it. Nothing but the
// removal itself is ever queued for a removed id.
func (wm *WindowManager) enqueueLocked(t EventType, s *entity.Sash, ctx *EventContext) {
	if _, gone := wm.removed[s.ID]; gone && t != EventPaneRemoved {
		wm.log.Debug().
			Str("event_type", string(t)).
			Str("pane_id", s.ID).
			Msg("suppressed event for removed pane")
		return
	}
	wm.queue = append(wm.queue, queuedEvent{
		eventType: t,
		pane:      wm.payloadLocked(s),
		context:   ctx,
	})
}

func (wm *WindowManager) payloadLocked(s *entity.Sash) PanePayload {
	return entity.NewPanePayload(s, entity.PayloadOptions{
		State:   wm.states[s.ID],
		Focused: wm.focused != "" && wm.focused == s.ID,
		Origin:  wm.opts.Origin,
	})
}

// leafRectsLocked records the rectangle of every pane by id.
func (wm *WindowManager) leafRectsLocked() map[string]Rect {
	rects := make(map[string]Rect)
	for _, leaf := range wm.root.Leaves() {
		rects[leaf.ID] = leaf.Rect()
	}
	return rects
}

// scheduleChangedLocked arms the resize debounce of every pane whose
// rectangle differs from before.
func (wm *WindowManager) scheduleChangedLocked(before map[string]Rect) {
	for _, leaf := range wm.root.Leaves() {
		prev, ok := before[leaf.ID]
		if !ok || prev == leaf.Rect() {
			continue
		}
		wm.debouncer.Schedule(leaf.ID)
	}
}

// fireResize runs when a pane's debounce period ends.
func (wm *WindowManager) fireResize(id string) {
	wm.mu.Lock()
	if _, gone := wm.removed[id]; !gone {
		if s := wm.root.Find(id); s != nil && s.IsLeaf() {
			if rect := s.Rect(); wm.reported[id] != rect {
				wm.reported[id] = rect
				wm.enqueueLocked(EventPaneResized, s, nil)
			}
		}
	}
	wm.mu.Unlock()

	wm.drain()
}

// paneLocked looks up a live pane.
func (wm *WindowManager) paneLocked(id string) (*entity.Sash, error) {
	if _, gone := wm.removed[id]; gone {
		return nil, &entity.LayoutError{ID: id, Err: entity.ErrPaneRemoved}
	}
	s := wm.root.Find(id)
	if s == nil {
		return nil, entity.NotFound(entity.ErrSashNotFound, id)
	}
	if !s.IsLeaf() {
		return nil, &entity.LayoutError{ID: id, Err: entity.ErrNotAPane}
	}
	return s, nil
}

// Layout returns a deep copy of the tree.
func (wm *WindowManager) Layout() *Sash {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.root.Clone()
}

// Pane returns a snapshot of one pane.
func (wm *WindowManager) Pane(id string) (PanePayload, error) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	s, err := wm.paneLocked(id)
	if err != nil {
		return PanePayload{}, err
	}
	return wm.payloadLocked(s), nil
}

// Panes returns a snapshot of every pane in tree order.
func (wm *WindowManager) Panes() []PanePayload {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	leaves := wm.root.Leaves()
	out := make([]PanePayload, 0, len(leaves))
	for _, leaf := range leaves {
		out = append(out, wm.payloadLocked(leaf))
	}
	return out
}

// State returns the visual state of a pane.
func (wm *WindowManager) State(id string) (PaneState, error) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	if _, err := wm.paneLocked(id); err != nil {
		return "", err
	}
	return wm.states[id], nil
}

// Focused returns the focused pane id, empty when none.
func (wm *WindowManager) Focused() string {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.focused
}
