package usecase

import (
	"context"

	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/logging"
)

// MuntinDrag tracks one resize-by-drag gesture on the divider of a split.
// Begin starts the gesture, each Move applies the pointer delta since the
// previous event and End finishes it. The zero value is ready to use but
// it is not safe for concurrent use.
type MuntinDrag struct {
	split  *entity.Sash
	last   entity.Point
	moved  float64
	active bool
}

// NewMuntinDrag creates an idle drag controller.
func NewMuntinDrag() *MuntinDrag {
	return &MuntinDrag{}
}

// Begin starts dragging the muntin of split splitID from pointer at.
// A gesture already in progress is abandoned.
func (d *MuntinDrag) Begin(ctx context.Context, root *entity.Sash, splitID string, at entity.Point) error {
	if root == nil {
		return entity.NotFound(entity.ErrMuntinNotFound, splitID)
	}
	split := root.Find(splitID)
	if split == nil || !split.IsSplit() {
		return entity.NotFound(entity.ErrMuntinNotFound, splitID)
	}
	for _, child := range split.Children {
		if !child.Store.Bool(entity.StoreKeyResizable, true) {
			return &entity.LayoutError{ID: child.ID, Err: entity.ErrNotResizable}
		}
	}

	logging.FromContext(ctx).Debug().
		Str("split_id", splitID).
		Float64("x", at.X).
		Float64("y", at.Y).
		Msg("muntin drag started")

	d.split = split
	d.last = at
	d.moved = 0
	d.active = true
	return nil
}

// Move applies the pointer delta along the split axis. It returns the
// delta the muntin actually moved after minimum-size clamping.
func (d *MuntinDrag) Move(at entity.Point) (float64, error) {
	if !d.active {
		return 0, entity.ErrNoActiveDrag
	}

	delta := at.Y - d.last.Y
	if d.split.IsLeftRightSplit() {
		delta = at.X - d.last.X
	}
	d.last = at
	if delta == 0 {
		return 0, nil
	}

	applied, err := d.split.MoveMuntin(delta)
	if err != nil {
		return 0, err
	}
	d.moved += applied
	return applied, nil
}

// End finishes the gesture and returns the dragged split and the net
// distance its muntin moved. ok is false when no gesture was active.
func (d *MuntinDrag) End() (split *entity.Sash, moved float64, ok bool) {
	if !d.active {
		return nil, 0, false
	}
	split, moved = d.split, d.moved
	d.split = nil
	d.moved = 0
	d.active = false
	return split, moved, true
}

// Active reports whether a gesture is in progress.
func (d *MuntinDrag) Active() bool {
	return d.active
}

// Split returns the split being dragged, nil when idle.
func (d *MuntinDrag) Split() *entity.Sash {
	return d.split
}
