package sashes

import (
	"context"
	"time"

	"github.com/bnema/sashes/internal/application/usecase"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/infrastructure/config"
	"github.com/bnema/sashes/internal/infrastructure/events"
)

// Options configures New.
type Options struct {
	// Layout is the initial tree. A zero Layout yields a single pane with
	// id "root".
	Layout LayoutConfig

	// Width and Height size the root when Container is nil.
	Width, Height float64
	// Container reports the box the root is fitted to.
	Container ContainerObserver
	// Resolver maps host elements to sash ids. Nil looks elements up in the
	// tree.
	Resolver ElementResolver
	// IDGenerator names split nodes and panes added without an id.
	IDGenerator IDGenerator

	DefaultFirstPosition Position
	ResizeStrategy       ResizeStrategy
	MinWidth, MinHeight  float64

	// DropMargin is the center fraction of the drop hit-test.
	DropMargin float64
	// ResizeDebounce is the quiet period before onpaneresized fires.
	ResizeDebounce time.Duration
	// FitInterval is the AutoFitter coalescing window.
	FitInterval time.Duration

	// Clock stamps events. Defaults to time.Now.
	Clock func() time.Time
	// Origin offsets payload positions into viewport coordinates.
	Origin Point
	// Recorder receives every delivered event.
	Recorder EventRecorder
}

// DefaultFitInterval is one frame at 60Hz.
const DefaultFitInterval = 16 * time.Millisecond

// OptionsFromConfig maps the layout and events sections of cfg onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Options{
		DefaultFirstPosition: entity.Position(cfg.Layout.DefaultFirstPosition),
		ResizeStrategy:       entity.ResizeStrategy(cfg.Layout.DefaultResizeStrategy),
		MinWidth:             cfg.Layout.MinPaneWidth,
		MinHeight:            cfg.Layout.MinPaneHeight,
		DropMargin:           cfg.Layout.DropZoneMargin,
		ResizeDebounce:       cfg.Events.ResizeDebounce(),
		FitInterval:          cfg.Layout.FitInterval(),
	}
}

func (o Options) withDefaults() Options {
	if o.Container == nil {
		o.Container = StaticContainer{Width: o.Width, Height: o.Height}
	}
	if o.IDGenerator == nil {
		o.IDGenerator = usecase.NewUUIDGenerator()
	}
	if o.DefaultFirstPosition == "" {
		o.DefaultFirstPosition = entity.PositionRight
	}
	if o.ResizeStrategy == "" {
		o.ResizeStrategy = entity.ResizeClassic
	}
	if o.DropMargin <= 0 || o.DropMargin > 1 {
		o.DropMargin = usecase.DefaultDropMargin
	}
	if o.ResizeDebounce <= 0 {
		o.ResizeDebounce = events.DefaultResizeDebounce
	}
	if o.FitInterval <= 0 {
		o.FitInterval = DefaultFitInterval
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Layout.ID == "" && len(o.Layout.Children) == 0 {
		o.Layout.ID = "root"
	}
	return o
}

// StaticContainer is a container of fixed size.
type StaticContainer Box

// ContainerBox returns the fixed box.
func (c StaticContainer) ContainerBox(context.Context) (Box, error) {
	return Box(c), nil
}
