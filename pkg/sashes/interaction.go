package sashes

import (
	"github.com/bnema/sashes/internal/application/usecase"
	"github.com/bnema/sashes/internal/domain/entity"
)

// BeginResize starts dragging the muntin of split splitID.
func (wm *WindowManager) BeginResize(splitID string, at Point) error {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.drag.Begin(wm.ctx, wm.root, splitID, at)
}

// BeginResizeElement starts dragging the muntin rendered by ref.
func (wm *WindowManager) BeginResizeElement(ref ElementRef, at Point) error {
	id, err := wm.resolve(ref)
	if err != nil {
		return &entity.LayoutError{Value: string(ref), Err: entity.ErrMuntinNotFound}
	}
	return wm.BeginResize(id, at)
}

// DragResize moves the active muntin to the pointer. It returns how far
// the muntin moved after clamping. Resize events follow once the gesture
// has been still for the debounce period.
func (wm *WindowManager) DragResize(at Point) (float64, error) {
	var applied float64
	err := wm.update(func() error {
		before := wm.leafRectsLocked()
		var err error
		applied, err = wm.drag.Move(at)
		if err != nil || applied == 0 {
			return err
		}
		wm.scheduleChangedLocked(before)
		return nil
	})
	return applied, err
}

// EndResize finishes the gesture. It returns the net distance moved and
// false when no gesture was active.
func (wm *WindowManager) EndResize() (float64, bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	split, moved, ok := wm.drag.End()
	if ok {
		wm.log.Debug().Str("split_id", split.ID).Float64("moved", moved).Msg("muntin drag ended")
	}
	return moved, ok
}

// Resizing reports whether a resize gesture is in progress.
func (wm *WindowManager) Resizing() bool {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.drag.Active()
}

// DropZone classifies a pointer over targetID into a drop zone.
func (wm *WindowManager) DropZone(targetID string, at Point) (Position, error) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	target, err := wm.paneLocked(targetID)
	if err != nil {
		return "", err
	}
	return usecase.HitTest(target.Rect(), at, wm.opts.DropMargin), nil
}

// DropAction is what a drop did.
type DropAction string

const (
	DropNone DropAction = "none"
	DropSwap DropAction = "swap"
	DropMove DropAction = "move"
)

// DropResult describes a completed drop.
type DropResult struct {
	Zone   Position
	Action DropAction
}

// DropPane releases pane srcID over targetID at pointer at. The center
// zone swaps the two panes, an edge zone moves the source to that side of
// the target, anywhere else does nothing.
func (wm *WindowManager) DropPane(srcID, targetID string, at Point) (DropResult, error) {
	result := DropResult{Action: DropNone}
	err := wm.update(func() error {
		src, err := wm.paneLocked(srcID)
		if err != nil {
			return err
		}
		target, err := wm.paneLocked(targetID)
		if err != nil {
			return err
		}

		result.Zone = usecase.HitTest(target.Rect(), at, wm.opts.DropMargin)
		action := usecase.DropActionFor(result.Zone)
		if action == usecase.DropNone || src == target {
			return nil
		}
		if !target.Store.Bool(entity.StoreKeyDroppable, true) {
			return &entity.LayoutError{ID: targetID, Err: entity.ErrNotDroppable}
		}

		switch action {
		case usecase.DropSwap:
			if err := wm.swapLocked(srcID, targetID); err != nil {
				return err
			}
			result.Action = DropSwap
		case usecase.DropMove:
			if err := wm.moveLocked(src, targetID, result.Zone); err != nil {
				return err
			}
			result.Action = DropMove
		}
		return nil
	})
	return result, err
}

// MovePane moves a pane to one side of another.
func (wm *WindowManager) MovePane(srcID, targetID string, position Position) error {
	return wm.update(func() error {
		src, err := wm.paneLocked(srcID)
		if err != nil {
			return err
		}
		if _, err := wm.paneLocked(targetID); err != nil {
			return err
		}
		return wm.moveLocked(src, targetID, position)
	})
}

func (wm *WindowManager) moveLocked(src *entity.Sash, targetID string, position Position) error {
	prev := orderContext(src)
	before := wm.leafRectsLocked()

	out, err := wm.panes.Move(wm.ctx, usecase.MoveInput{
		Root:     wm.root,
		SourceID: src.ID,
		TargetID: targetID,
		Position: position,
	})
	if err != nil {
		return err
	}
	wm.abandonDragLocked()

	wm.enqueueLocked(EventPaneOrderChanged, out.Pane, prev)
	wm.scheduleChangedLocked(before)
	return nil
}
