package sashes_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/sashes/pkg/sashes"
)

// MockEventRecorder is a testify mock of sashes.EventRecorder.
type MockEventRecorder struct {
	mock.Mock
}

func (m *MockEventRecorder) Record(ctx context.Context, event sashes.PaneEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockContainerObserver is a testify mock of sashes.ContainerObserver.
type MockContainerObserver struct {
	mock.Mock
}

func (m *MockContainerObserver) ContainerBox(ctx context.Context) (sashes.Box, error) {
	args := m.Called(ctx)
	return args.Get(0).(sashes.Box), args.Error(1)
}

// resizableContainer is a container whose box tests change over time.
type resizableContainer struct {
	mu    sync.Mutex
	box   sashes.Box
	calls int
}

func (c *resizableContainer) ContainerBox(context.Context) (sashes.Box, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.box, nil
}

func (c *resizableContainer) set(box sashes.Box) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.box = box
}

func (c *resizableContainer) observed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type receivedEvent struct {
	sashes.PaneEvent
	at time.Time
}

// eventLog collects delivered events.
type eventLog struct {
	mu     sync.Mutex
	events []receivedEvent
}

func (l *eventLog) handle(event sashes.PaneEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, receivedEvent{PaneEvent: event, at: time.Now()})
}

func (l *eventLog) all() []receivedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]receivedEvent, len(l.events))
	copy(out, l.events)
	return out
}

func (l *eventLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

func (l *eventLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

// summary renders events as "type:id" for compact assertions.
func (l *eventLog) summary() []string {
	var out []string
	for _, ev := range l.all() {
		out = append(out, string(ev.Type)+":"+ev.Pane.ID)
	}
	return out
}

func (l *eventLog) ofType(t sashes.EventType) []receivedEvent {
	var out []receivedEvent
	for _, ev := range l.all() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
