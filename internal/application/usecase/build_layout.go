package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bnema/sashes/internal/application/port"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/validation"
	"github.com/bnema/sashes/internal/logging"
)

// sizeTolerance absorbs float noise when checking that proportions add up.
const sizeTolerance = 1e-6

// LayoutConfig is one node of a declarative layout. Fields mirror what a
// layout file may carry; anything unrecognized ends up in Store.
type LayoutConfig struct {
	ID       string
	Position string
	// Size is a raw token accepted by validation.ParseSize.
	Size           any
	MinWidth       float64
	MinHeight      float64
	ResizeStrategy string
	Children       []LayoutConfig
	Store          entity.Store
}

// BuildOptions positions the root and sets the policies the builder needs.
type BuildOptions struct {
	Left, Top, Width, Height float64

	// DefaultFirstPosition is the side given to the first child when
	// neither sibling names a position. Defaults to right, so the second
	// child lands on the left.
	DefaultFirstPosition entity.Position
	// ResizeStrategy applies to nodes that do not pick one.
	ResizeStrategy entity.ResizeStrategy
	// MinWidth and MinHeight are the floors of panes that do not set one.
	MinWidth, MinHeight float64

	IDGenerator port.IDGenerator
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.DefaultFirstPosition == "" {
		o.DefaultFirstPosition = entity.PositionRight
	}
	if o.ResizeStrategy == "" {
		o.ResizeStrategy = entity.ResizeClassic
	}
	if o.IDGenerator == nil {
		o.IDGenerator = NewUUIDGenerator()
	}
	return o
}

type layoutBuilder struct {
	opts BuildOptions
	seen map[string]string
}

// BuildLayout turns a declarative configuration into a sash tree whose
// root covers the rectangle in opts.
func BuildLayout(ctx context.Context, cfg LayoutConfig, opts BuildOptions) (*entity.Sash, error) {
	log := logging.FromContext(ctx)
	opts = opts.withDefaults()

	if !opts.DefaultFirstPosition.IsEdge() {
		return nil, &entity.LayoutError{
			Value:      string(opts.DefaultFirstPosition),
			Suggestion: "default first position must be top, right, bottom or left",
			Err:        entity.ErrInvalidPosition,
		}
	}
	if opts.Width < 0 || opts.Height < 0 {
		return nil, &entity.LayoutError{
			Path:  "root",
			Value: fmt.Sprintf("%gx%g", opts.Width, opts.Height),
			Err:   entity.ErrInvalidSize,
		}
	}

	log.Debug().
		Float64("width", opts.Width).
		Float64("height", opts.Height).
		Str("default_first_position", string(opts.DefaultFirstPosition)).
		Msg("building layout")

	b := &layoutBuilder{opts: opts, seen: make(map[string]string)}
	rect := entity.Rect{Left: opts.Left, Top: opts.Top, Width: opts.Width, Height: opts.Height}

	if cfg.Position != "" {
		p, err := validation.ParsePosition(cfg.Position)
		if err != nil {
			return nil, atPath(err, "root", cfg.ID)
		}
		if p != entity.PositionRoot {
			return nil, &entity.LayoutError{
				Path:       "root",
				ID:         cfg.ID,
				Value:      cfg.Position,
				Suggestion: `the root node takes no position, or "root"`,
				Err:        entity.ErrInvalidPosition,
			}
		}
	}

	root, err := b.build(cfg, "root", entity.PositionRoot, rect)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("root_id", root.ID).
		Int("panes", root.LeafCount()).
		Msg("layout built")

	return root, nil
}

func (b *layoutBuilder) build(cfg LayoutConfig, path string, pos entity.Position, rect entity.Rect) (*entity.Sash, error) {
	id := cfg.ID
	if id == "" {
		id = b.opts.IDGenerator()
	}
	if other, dup := b.seen[id]; dup {
		return nil, &entity.LayoutError{
			Path:       path,
			ID:         id,
			Suggestion: "also used at " + other,
			Err:        entity.ErrDuplicateID,
		}
	}
	b.seen[id] = path

	strategy := b.opts.ResizeStrategy
	if cfg.ResizeStrategy != "" {
		parsed, err := validation.ParseResizeStrategy(cfg.ResizeStrategy)
		if err != nil {
			return nil, atPath(err, path, id)
		}
		strategy = parsed
	}

	minWidth, minHeight := cfg.MinWidth, cfg.MinHeight
	if len(cfg.Children) == 0 {
		if minWidth == 0 {
			minWidth = b.opts.MinWidth
		}
		if minHeight == 0 {
			minHeight = b.opts.MinHeight
		}
	}

	var store entity.Store
	if cfg.Store != nil {
		store = cfg.Store.Clone()
	}

	node, err := entity.NewSash(entity.SashOptions{
		ID:             id,
		Position:       pos,
		Left:           rect.Left,
		Top:            rect.Top,
		Width:          rect.Width,
		Height:         rect.Height,
		MinWidth:       minWidth,
		MinHeight:      minHeight,
		ResizeStrategy: strategy,
		Store:          store,
	})
	if err != nil {
		return nil, atPath(err, path, id)
	}

	switch len(cfg.Children) {
	case 0:
		return node, nil
	case 1:
		return nil, &entity.LayoutError{Path: path, ID: id, Err: entity.ErrUnaryChildren}
	case 2:
	default:
		return nil, &entity.LayoutError{Path: path, ID: id, Value: len(cfg.Children), Err: entity.ErrTooManyChildren}
	}

	positions, err := b.childPositions(cfg.Children, path)
	if err != nil {
		return nil, err
	}
	extents, err := childExtents(cfg.Children, positions, path, rect)
	if err != nil {
		return nil, err
	}

	// The leading child (left/top) starts at the parent's offset.
	lead := 0
	if positions[1] == entity.PositionLeft || positions[1] == entity.PositionTop {
		lead = 1
	}
	for i, childCfg := range cfg.Children {
		childRect := rect
		offset := 0.0
		if i != lead {
			offset = extents[lead]
		}
		if positions[i].IsHorizontal() {
			childRect.Left += offset
			childRect.Width = extents[i]
		} else {
			childRect.Top += offset
			childRect.Height = extents[i]
		}

		child, err := b.build(childCfg, fmt.Sprintf("%s.children[%d]", path, i), positions[i], childRect)
		if err != nil {
			return nil, err
		}
		if err := node.AddChild(child); err != nil {
			return nil, atPath(err, path, id)
		}
	}
	return node, nil
}

// childPositions infers missing positions: a lone position implies its
// opposite for the sibling, and two missing ones fall back to the
// DefaultFirstPosition policy.
func (b *layoutBuilder) childPositions(children []LayoutConfig, path string) ([2]entity.Position, error) {
	var positions [2]entity.Position
	for i, child := range children {
		if child.Position == "" {
			continue
		}
		p, err := validation.ParseEdge(child.Position)
		if err != nil {
			return positions, atPath(err, fmt.Sprintf("%s.children[%d]", path, i), child.ID)
		}
		positions[i] = p
	}

	switch {
	case positions[0] == "" && positions[1] == "":
		positions[0] = b.opts.DefaultFirstPosition
		positions[1], _ = positions[0].Opposite()
	case positions[0] == "":
		positions[0], _ = positions[1].Opposite()
	case positions[1] == "":
		positions[1], _ = positions[0].Opposite()
	case !positions[0].IsOppositeOf(positions[1]):
		return positions, &entity.LayoutError{
			Path:  fmt.Sprintf("%s.children[1]", path),
			ID:    children[1].ID,
			Value: fmt.Sprintf("%s next to %s", positions[1], positions[0]),
			Err:   entity.ErrPositionConflict,
		}
	}
	return positions, nil
}

// childExtents resolves both sibling sizes along the split axis and checks
// they fill the parent exactly.
func childExtents(children []LayoutConfig, positions [2]entity.Position, path string, rect entity.Rect) ([2]float64, error) {
	extent := rect.Height
	if positions[0].IsHorizontal() {
		extent = rect.Width
	}

	var sizes [2]validation.Size
	for i, child := range children {
		size, err := validation.ParseSize(child.Size)
		if err != nil {
			return [2]float64{}, atPath(err, fmt.Sprintf("%s.children[%d]", path, i), child.ID)
		}
		sizes[i] = size
	}

	mismatch := func(i int, value any) error {
		return &entity.LayoutError{
			Path:  fmt.Sprintf("%s.children[%d]", path, i),
			ID:    children[i].ID,
			Value: value,
			Err:   entity.ErrSizeMismatch,
		}
	}

	var out [2]float64
	switch {
	case !sizes[0].IsSet() && !sizes[1].IsSet():
		out[0] = math.Round(extent / 2)
	case sizes[0].IsSet() && !sizes[1].IsSet():
		out[0] = sizes[0].Resolve(extent)
	case !sizes[0].IsSet():
		out[1] = sizes[1].Resolve(extent)
		if out[1] > extent {
			return out, mismatch(1, fmt.Sprintf("%s exceeds %g", sizes[1], extent))
		}
		out[0] = extent - out[1]
		return out, nil
	case sizes[0].Kind == validation.SizeProportion && sizes[1].Kind == validation.SizeProportion:
		if sum := sizes[0].Value + sizes[1].Value; math.Abs(sum-1) > sizeTolerance {
			return out, mismatch(1, fmt.Sprintf("%s + %s = %g, want 1", sizes[0], sizes[1], sum))
		}
		out[0] = sizes[0].Resolve(extent)
	default:
		a, b := sizes[0].Resolve(extent), sizes[1].Resolve(extent)
		if math.Abs(a+b-extent) > sizeTolerance {
			return out, mismatch(1, fmt.Sprintf("%s + %s = %gpx, want %gpx", sizes[0], sizes[1], a+b, extent))
		}
		out[0] = a
	}

	if out[0] > extent {
		return out, mismatch(0, fmt.Sprintf("%s exceeds %g", sizes[0], extent))
	}
	out[1] = extent - out[0]
	return out, nil
}

// atPath stamps a location on a LayoutError that does not have one yet.
func atPath(err error, path, id string) error {
	var layoutErr *entity.LayoutError
	if errors.As(err, &layoutErr) {
		if layoutErr.Path == "" {
			layoutErr.Path = path
		}
		if layoutErr.ID == "" {
			layoutErr.ID = id
		}
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}

// DecodeLayoutConfig converts a decoded JSON, TOML or YAML document into a
// LayoutConfig. Keys other than the layout fields are kept in Store.
func DecodeLayoutConfig(doc map[string]any) (LayoutConfig, error) {
	return decodeLayoutNode(doc, "root")
}

func decodeLayoutNode(doc map[string]any, path string) (LayoutConfig, error) {
	var cfg LayoutConfig
	store := entity.Store{}

	for key, value := range doc {
		var err error
		switch normalizeKey(key) {
		case "id":
			cfg.ID, err = stringField(value)
		case "position":
			cfg.Position, err = stringField(value)
		case "size":
			cfg.Size = value
		case "minwidth":
			cfg.MinWidth, err = floatField(value)
		case "minheight":
			cfg.MinHeight, err = floatField(value)
		case "resizestrategy":
			cfg.ResizeStrategy, err = stringField(value)
		case "store":
			nested, ok := value.(map[string]any)
			if !ok {
				err = fmt.Errorf("expected a table, got %T", value)
				break
			}
			for k, v := range nested {
				store[k] = v
			}
		case "children":
			cfg.Children, err = decodeChildren(value, path)
		default:
			store[key] = value
		}
		if err != nil {
			var layoutErr *entity.LayoutError
			if errors.As(err, &layoutErr) && layoutErr.Path != "" {
				return cfg, err
			}
			return cfg, &entity.LayoutError{Path: path, Value: key, Err: err}
		}
	}

	if len(store) > 0 {
		cfg.Store = store
	}
	return cfg, nil
}

func decodeChildren(value any, path string) ([]LayoutConfig, error) {
	var raw []map[string]any
	switch typed := value.(type) {
	case []map[string]any:
		raw = typed
	case []any:
		for i, item := range typed {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("children[%d]: expected a table, got %T", i, item)
			}
			raw = append(raw, m)
		}
	default:
		return nil, fmt.Errorf("expected a list, got %T", value)
	}

	children := make([]LayoutConfig, 0, len(raw))
	for i, m := range raw {
		child, err := decodeLayoutNode(m, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(key))
}

func stringField(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return fmt.Sprint(v), nil
	}
}

func floatField(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case nil:
		return 0, nil
	default:
		size, err := validation.ParseSize(v)
		if err != nil {
			return 0, err
		}
		if size.Kind != validation.SizePixels && size.Value != 0 {
			return 0, fmt.Errorf("minimum sizes are pixels, got %v", v)
		}
		return size.Value, nil
	}
}
