package sashes

import (
	"github.com/bnema/sashes/internal/application/port"
	"github.com/bnema/sashes/internal/application/usecase"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/infrastructure/events"
)

// Types shared with the layout core.
type (
	Sash           = entity.Sash
	Store          = entity.Store
	Position       = entity.Position
	ResizeStrategy = entity.ResizeStrategy
	ElementRef     = entity.ElementRef
	Point          = entity.Point
	Rect           = entity.Rect
	Box            = entity.Box

	EventType    = entity.EventType
	PaneEvent    = entity.PaneEvent
	PanePayload  = entity.PanePayload
	EventContext = entity.EventContext
	PaneState    = entity.PaneState

	Handler      = events.Handler
	Subscription = events.Subscription

	LayoutConfig = usecase.LayoutConfig

	ElementResolver     = port.ElementResolver
	ElementResolverFunc = port.ElementResolverFunc
	ContainerObserver   = port.ContainerObserver
	EventRecorder       = port.EventRecorder
	IDGenerator         = port.IDGenerator
)

const (
	PositionTop     = entity.PositionTop
	PositionRight   = entity.PositionRight
	PositionBottom  = entity.PositionBottom
	PositionLeft    = entity.PositionLeft
	PositionCenter  = entity.PositionCenter
	PositionOutside = entity.PositionOutside

	ResizeClassic = entity.ResizeClassic
	ResizeNatural = entity.ResizeNatural

	StateNormal    = entity.PaneStateNormal
	StateMinimized = entity.PaneStateMinimized
	StateMaximized = entity.PaneStateMaximized
)

const (
	EventPaneAdded        = entity.EventPaneAdded
	EventPaneRemoved      = entity.EventPaneRemoved
	EventPaneMinimized    = entity.EventPaneMinimized
	EventPaneMaximized    = entity.EventPaneMaximized
	EventPaneRestored     = entity.EventPaneRestored
	EventPaneResized      = entity.EventPaneResized
	EventPaneFocused      = entity.EventPaneFocused
	EventPaneBlurred      = entity.EventPaneBlurred
	EventPaneOrderChanged = entity.EventPaneOrderChanged
	EventPaneTitleChanged = entity.EventPaneTitleChanged
)
