package entity

import (
	"fmt"
	"math"
	"time"
)

// PayloadSchemaVersion versions the PaneEvent wire contract. Field names and
// types only change with a major bump.
const PayloadSchemaVersion = "1.0.0"

// TimestampLayout is the ISO-8601 layout used for PaneEvent.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// EventType names one of the pane lifecycle events.
type EventType string

const (
	EventPaneAdded        EventType = "onpaneadded"
	EventPaneRemoved      EventType = "onpaneremoved"
	EventPaneMinimized    EventType = "onpaneminimized"
	EventPaneMaximized    EventType = "onpanemaximized"
	EventPaneRestored     EventType = "onpanerestored"
	EventPaneResized      EventType = "onpaneresized"
	EventPaneFocused      EventType = "onpanefocused"
	EventPaneBlurred      EventType = "onpaneblurred"
	EventPaneOrderChanged EventType = "onpaneorderchanged"
	EventPaneTitleChanged EventType = "onpanetitlechanged"
)

// EventTypes returns the ten lifecycle event types.
func EventTypes() []EventType {
	return []EventType{
		EventPaneAdded,
		EventPaneRemoved,
		EventPaneMinimized,
		EventPaneMaximized,
		EventPaneRestored,
		EventPaneResized,
		EventPaneFocused,
		EventPaneBlurred,
		EventPaneOrderChanged,
		EventPaneTitleChanged,
	}
}

// IsValid reports whether t is one of the ten event types.
func (t EventType) IsValid() bool {
	for _, known := range EventTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseEventType validates a raw event type name.
func ParseEventType(raw string) (EventType, error) {
	t := EventType(raw)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, raw)
	}
	return t, nil
}

// PaneState is the visual state of a pane.
type PaneState string

const (
	PaneStateNormal    PaneState = "normal"
	PaneStateMinimized PaneState = "minimized"
	PaneStateMaximized PaneState = "maximized"
)

// PaneSize is the payload size in whole pixels.
type PaneSize struct {
	Width  int `json:"width" jsonschema:"minimum=0"`
	Height int `json:"height" jsonschema:"minimum=0"`
}

// PanePosition is the payload position in whole pixels, viewport-relative.
type PanePosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PanePayload is an immutable snapshot of one pane, taken after the state
// change it describes.
type PanePayload struct {
	ID       string       `json:"id" jsonschema:"minLength=1"`
	Title    string       `json:"title,omitempty"`
	Size     PaneSize     `json:"size"`
	Position PanePosition `json:"position"`
	State    PaneState    `json:"state" jsonschema:"enum=normal,enum=minimized,enum=maximized"`
	GroupID  *string      `json:"groupId" jsonschema:"oneof_type=string;null"`
	Index    *int         `json:"index" jsonschema:"oneof_type=integer;null"`
	// Config snapshots the caller-supplied store.
	Config map[string]any `json:"config"`
	// Dynamic snapshots runtime-derived properties.
	Dynamic map[string]any `json:"dynamic"`
}

// EventContext carries event-specific extra fields.
type EventContext struct {
	PreviousTitle *string `json:"previousTitle,omitempty"`
	PreviousIndex *int    `json:"previousIndex,omitempty"`
	GroupID       *string `json:"groupId,omitempty"`
}

// PaneEvent is a single lifecycle fact about one pane.
type PaneEvent struct {
	Type      EventType     `json:"type" jsonschema:"enum=onpaneadded,enum=onpaneremoved,enum=onpaneminimized,enum=onpanemaximized,enum=onpanerestored,enum=onpaneresized,enum=onpanefocused,enum=onpaneblurred,enum=onpaneorderchanged,enum=onpanetitlechanged"`
	Timestamp string        `json:"timestamp" jsonschema:"format=date-time"`
	Pane      PanePayload   `json:"pane"`
	Context   *EventContext `json:"context,omitempty"`
}

// NewPaneEvent stamps a payload with its type and emission time.
func NewPaneEvent(t EventType, pane PanePayload, ctx *EventContext, at time.Time) PaneEvent {
	return PaneEvent{
		Type:      t,
		Timestamp: at.UTC().Format(TimestampLayout),
		Pane:      pane,
		Context:   ctx,
	}
}

// Clone returns a copy that shares no pointers or maps with e, so each
// handler can treat its event as its own.
func (e PaneEvent) Clone() PaneEvent {
	e.Pane = e.Pane.Clone()
	e.Context = e.Context.Clone()
	return e
}

// Clone deep-copies the payload.
func (p PanePayload) Clone() PanePayload {
	p.GroupID = clonePtr(p.GroupID)
	p.Index = clonePtr(p.Index)
	if p.Config != nil {
		p.Config = Store(p.Config).Clone()
	}
	if p.Dynamic != nil {
		p.Dynamic = Store(p.Dynamic).Clone()
	}
	return p
}

// Clone copies the context. A nil context stays nil.
func (c *EventContext) Clone() *EventContext {
	if c == nil {
		return nil
	}
	return &EventContext{
		PreviousTitle: clonePtr(c.PreviousTitle),
		PreviousIndex: clonePtr(c.PreviousIndex),
		GroupID:       clonePtr(c.GroupID),
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// PayloadOptions carries the state that lives outside the tree.
type PayloadOptions struct {
	State   PaneState
	Focused bool
	// Origin is the container offset in the viewport.
	Origin Point
}

// NewPanePayload snapshots a sash. The result shares no memory with it.
func NewPanePayload(s *Sash, opts PayloadOptions) PanePayload {
	state := opts.State
	if state == "" {
		state = PaneStateNormal
	}

	payload := PanePayload{
		ID:    s.ID,
		Title: s.Store.Title(),
		Size: PaneSize{
			Width:  toPixels(s.width),
			Height: toPixels(s.height),
		},
		Position: PanePosition{
			X: int(math.Round(opts.Origin.X + s.left)),
			Y: int(math.Round(opts.Origin.Y + s.top)),
		},
		State:  state,
		Config: s.Store.Clone(),
		Dynamic: map[string]any{
			"minWidth":       s.CalcMinWidth(),
			"minHeight":      s.CalcMinHeight(),
			"focused":        opts.Focused,
			"resizeStrategy": string(s.ResizeStrategy),
			"leafCount":      s.LeafCount(),
		},
	}
	if s.Element != "" {
		payload.Dynamic["element"] = string(s.Element)
	}
	if s.Parent != nil {
		groupID := s.Parent.ID
		index := s.Index()
		payload.GroupID = &groupID
		payload.Index = &index
	}
	return payload
}

func toPixels(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(v))
}
