// Package port defines the boundaries between the layout core and the
// infrastructure or host that surrounds it.
package port

import (
	"context"

	"github.com/bnema/sashes/internal/domain/entity"
)

// EventPublisher delivers pane lifecycle events to subscribers.
// Implemented by the events dispatcher; each window manager owns one.
type EventPublisher interface {
	// Emit stamps and synchronously delivers an event.
	Emit(t entity.EventType, pane entity.PanePayload, ctx *entity.EventContext) (entity.PaneEvent, error)
}

// EventRecorder persists emitted events, e.g. to a journal.
type EventRecorder interface {
	Record(ctx context.Context, event entity.PaneEvent) error
}
