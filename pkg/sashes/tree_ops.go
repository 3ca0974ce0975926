package sashes

import (
	"github.com/bnema/sashes/internal/application/usecase"
	"github.com/bnema/sashes/internal/domain/entity"
)

// AddPaneOptions describes a pane added next to an existing one.
type AddPaneOptions struct {
	// Position is the side of the target the new pane takes.
	Position Position
	// Size is the new pane's extent: pixels, a fraction, "NN%" or "NNpx".
	// Unset takes half of the target.
	Size any
	// ID names the pane; generated when empty.
	ID      string
	Title   string
	Store   Store
	Element ElementRef

	// MinWidth and MinHeight default to the manager-wide floors.
	MinWidth, MinHeight float64
}

// AddPane splits targetID and returns a snapshot of the new pane.
func (wm *WindowManager) AddPane(targetID string, opts AddPaneOptions) (PanePayload, error) {
	var added PanePayload
	err := wm.update(func() error {
		if _, gone := wm.removed[targetID]; gone {
			return &entity.LayoutError{ID: targetID, Err: entity.ErrPaneRemoved}
		}
		if _, gone := wm.removed[opts.ID]; gone && opts.ID != "" {
			return &entity.LayoutError{ID: opts.ID, Err: entity.ErrPaneRemoved}
		}

		store := opts.Store.Clone()
		if opts.Title != "" {
			store[entity.StoreKeyTitle] = opts.Title
		}
		minWidth, minHeight := opts.MinWidth, opts.MinHeight
		if minWidth == 0 {
			minWidth = wm.opts.MinWidth
		}
		if minHeight == 0 {
			minHeight = wm.opts.MinHeight
		}

		before := wm.leafRectsLocked()
		out, err := wm.panes.Split(wm.ctx, usecase.SplitInput{
			Root:      wm.root,
			TargetID:  targetID,
			Position:  opts.Position,
			Size:      opts.Size,
			NewID:     opts.ID,
			Store:     store,
			Element:   opts.Element,
			MinWidth:  minWidth,
			MinHeight: minHeight,
		})
		if err != nil {
			return err
		}
		out.Pane.ResizeStrategy = wm.opts.ResizeStrategy
		wm.abandonDragLocked()

		wm.states[out.Pane.ID] = StateNormal
		wm.reported[out.Pane.ID] = out.Pane.Rect()
		wm.enqueueLocked(EventPaneAdded, out.Pane, nil)
		wm.scheduleChangedLocked(before)

		added = wm.payloadLocked(out.Pane)
		return nil
	})
	return added, err
}

// RemovePane removes a pane and promotes its sibling. The pane id is
// retired: no event ever references it again.
func (wm *WindowManager) RemovePane(id string) error {
	return wm.update(func() error {
		if _, err := wm.paneLocked(id); err != nil {
			return err
		}

		before := wm.leafRectsLocked()
		out, err := wm.panes.Remove(wm.ctx, wm.root, id)
		if err != nil {
			return err
		}
		wm.abandonDragLocked()

		// Focus goes with the pane; no blur is reported for it.
		if wm.focused == id {
			wm.focused = ""
		}
		wm.enqueueLocked(EventPaneRemoved, out.Removed, nil)

		wm.removed[id] = struct{}{}
		wm.debouncer.Cancel(id)
		wm.dropFromSillLocked(id)
		delete(wm.states, id)
		delete(wm.reported, id)
		delete(before, id)

		wm.scheduleChangedLocked(before)
		return nil
	})
}

// SwapPanes swaps the panes rendered by two host elements.
func (wm *WindowManager) SwapPanes(src, dst ElementRef) error {
	srcID, err := wm.resolve(src)
	if err != nil {
		return err
	}
	dstID, err := wm.resolve(dst)
	if err != nil {
		return err
	}
	return wm.SwapPanesByID(srcID, dstID)
}

// SwapPanesByID exchanges the content of two panes. Each pane reports its
// new index with onpaneorderchanged.
func (wm *WindowManager) SwapPanesByID(aID, bID string) error {
	return wm.update(func() error {
		return wm.swapLocked(aID, bID)
	})
}

func (wm *WindowManager) swapLocked(aID, bID string) error {
	a, err := wm.paneLocked(aID)
	if err != nil {
		return err
	}
	b, err := wm.paneLocked(bID)
	if err != nil {
		return err
	}
	if a == b {
		return nil
	}

	prevA, prevB := orderContext(a), orderContext(b)
	before := wm.leafRectsLocked()
	out, err := wm.panes.Swap(wm.ctx, wm.root, aID, bID)
	if err != nil || !out.Swapped {
		return err
	}

	wm.enqueueLocked(EventPaneOrderChanged, out.A, prevA)
	wm.enqueueLocked(EventPaneOrderChanged, out.B, prevB)
	wm.scheduleChangedLocked(before)
	return nil
}

// orderContext captures where s sits before a reorder.
func orderContext(s *entity.Sash) *EventContext {
	index := s.Index()
	ctx := &EventContext{PreviousIndex: &index}
	if s.Parent != nil {
		groupID := s.Parent.ID
		ctx.GroupID = &groupID
	}
	return ctx
}

// resolve maps a host element to a sash id.
func (wm *WindowManager) resolve(ref ElementRef) (string, error) {
	if wm.opts.Resolver != nil {
		if id, ok := wm.opts.Resolver.ResolveElement(ref); ok {
			return id, nil
		}
		return "", &entity.LayoutError{Value: string(ref), Err: entity.ErrSashNotFound}
	}

	wm.mu.Lock()
	defer wm.mu.Unlock()
	if s := wm.root.FindByElement(ref); s != nil {
		return s.ID, nil
	}
	return "", &entity.LayoutError{Value: string(ref), Err: entity.ErrSashNotFound}
}

// Fit observes the container and fits the root to it. It reports whether
// the geometry changed.
func (wm *WindowManager) Fit() (bool, error) {
	box, err := wm.opts.Container.ContainerBox(wm.ctx)
	if err != nil {
		return false, err
	}
	return wm.FitBox(box)
}

// FitBox fits the root to box.
func (wm *WindowManager) FitBox(box Box) (bool, error) {
	var changed bool
	err := wm.update(func() error {
		before := wm.leafRectsLocked()
		var err error
		changed, err = wm.panes.Fit(wm.ctx, wm.root, box)
		if err != nil || !changed {
			return err
		}
		wm.scheduleChangedLocked(before)
		return nil
	})
	return changed, err
}

// abandonDragLocked ends a resize gesture whose split may have been
// restructured.
func (wm *WindowManager) abandonDragLocked() {
	if !wm.drag.Active() {
		return
	}
	splitID := wm.drag.Split().ID
	wm.drag.End()
	wm.log.Debug().Str("split_id", splitID).Msg("resize gesture abandoned by tree change")
}
