package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/bnema/sashes/internal/application/port"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/validation"
	"github.com/bnema/sashes/internal/logging"
)

// ManagePanesUseCase handles sash tree mutations. Every operation validates
// its input completely before touching the tree, so a returned error means
// the tree is unchanged.
type ManagePanesUseCase struct {
	idGenerator port.IDGenerator
}

// NewManagePanesUseCase creates a new pane management use case.
func NewManagePanesUseCase(idGenerator port.IDGenerator) *ManagePanesUseCase {
	if idGenerator == nil {
		idGenerator = NewUUIDGenerator()
	}
	return &ManagePanesUseCase{
		idGenerator: idGenerator,
	}
}

// SplitInput contains parameters for splitting a sash.
type SplitInput struct {
	Root     *entity.Sash
	TargetID string
	// Position is the side of the target the new pane takes.
	Position entity.Position
	// Size is the new pane's extent along the split axis, as accepted by
	// validation.ParseSize. Unset means half of the target.
	Size      any
	NewID     string // Optional: generated when empty
	Store     entity.Store
	Element   entity.ElementRef
	MinWidth  float64
	MinHeight float64
}

// SplitOutput contains the result of a split operation.
type SplitOutput struct {
	// Pane is the newly added leaf.
	Pane *entity.Sash
	// Parent is the former target, now a split with a fresh id.
	Parent *entity.Sash
	// Retained carries the target's id, content and subtree.
	Retained *entity.Sash
}

// Split turns the target into a split holding the new pane and a node that
// retains the target's identity and content.
func (uc *ManagePanesUseCase) Split(ctx context.Context, input SplitInput) (*SplitOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("target_id", input.TargetID).
		Str("position", string(input.Position)).
		Msg("splitting sash")

	if input.Root == nil {
		return nil, fmt.Errorf("root is required")
	}
	if input.Position == "" {
		return nil, &entity.LayoutError{ID: input.TargetID, Err: entity.ErrMissingPosition}
	}
	if !input.Position.IsEdge() {
		return nil, &entity.LayoutError{
			ID:         input.TargetID,
			Value:      string(input.Position),
			Suggestion: "use one of top, right, bottom, left",
			Err:        entity.ErrInvalidPosition,
		}
	}

	target := input.Root.Find(input.TargetID)
	if target == nil {
		return nil, entity.NotFound(entity.ErrSashNotFound, input.TargetID)
	}

	newID := input.NewID
	if newID == "" {
		newID = uc.idGenerator()
	}
	if input.Root.Find(newID) != nil {
		return nil, &entity.LayoutError{ID: newID, Err: entity.ErrDuplicateID}
	}
	parentID := uc.idGenerator()
	if parentID == newID || input.Root.Find(parentID) != nil {
		return nil, &entity.LayoutError{ID: parentID, Err: entity.ErrDuplicateID}
	}

	horizontal := input.Position.IsHorizontal()
	extent := target.Height()
	if horizontal {
		extent = target.Width()
	}

	size, err := validation.ParseSize(input.Size)
	if err != nil {
		return nil, atPath(err, "", newID)
	}
	newExtent := math.Round(extent / 2)
	if size.IsSet() {
		newExtent = size.Resolve(extent)
	}
	if newExtent <= 0 || newExtent > extent {
		return nil, &entity.LayoutError{
			ID:    newID,
			Value: fmt.Sprintf("%gpx of %gpx", newExtent, extent),
			Err:   entity.ErrInvalidSize,
		}
	}

	newMin, retainedMin := input.MinHeight, target.CalcMinHeight()
	if horizontal {
		newMin, retainedMin = input.MinWidth, target.CalcMinWidth()
	}
	if newExtent < newMin || extent-newExtent < retainedMin {
		return nil, &entity.LayoutError{
			ID:    target.ID,
			Value: fmt.Sprintf("%gpx + %gpx in %gpx", newMin, retainedMin, extent),
			Err:   entity.ErrInsufficientSpace,
		}
	}

	opposite, _ := input.Position.Opposite()
	pane, err := entity.NewSash(entity.SashOptions{
		ID:        newID,
		Position:  input.Position,
		MinWidth:  input.MinWidth,
		MinHeight: input.MinHeight,
		Store:     input.Store,
		Element:   input.Element,
	})
	if err != nil {
		return nil, err
	}
	retained, err := entity.NewSash(entity.SashOptions{
		ID:             target.ID,
		Position:       opposite,
		Left:           target.Left(),
		Top:            target.Top(),
		Width:          target.Width(),
		Height:         target.Height(),
		MinWidth:       target.MinWidth,
		MinHeight:      target.MinHeight,
		ResizeStrategy: target.ResizeStrategy,
		Pin:            target.Pin,
		Store:          target.Store,
		Element:        target.Element,
	})
	if err != nil {
		return nil, err
	}

	// From here on nothing can fail.
	if len(target.Children) > 0 {
		retained.ReplaceChildren(target.Children)
	}
	box := target.Rect()
	paneRect, retainedRect := splitRect(box, input.Position, newExtent)
	pane.Reshape(paneRect, entity.ResizeClassic, "")
	retained.Reshape(retainedRect, entity.ResizeNatural, opposite)

	target.ID = parentID
	target.Store = entity.Store{}
	target.Element = ""
	target.MinWidth = 0
	target.MinHeight = 0
	target.Children = nil
	if err := target.AddChild(pane); err != nil {
		return nil, err
	}
	if err := target.AddChild(retained); err != nil {
		return nil, err
	}

	log.Info().
		Str("new_pane_id", pane.ID).
		Str("parent_id", parentID).
		Str("retained_id", retained.ID).
		Str("position", string(input.Position)).
		Msg("sash split completed")

	return &SplitOutput{Pane: pane, Parent: target, Retained: retained}, nil
}

// splitRect divides box between a new pane of extent size on side p and the
// remainder.
func splitRect(box entity.Rect, p entity.Position, size float64) (paneRect, rest entity.Rect) {
	paneRect, rest = box, box
	switch p {
	case entity.PositionLeft:
		paneRect.Width = size
		rest.Left += size
		rest.Width -= size
	case entity.PositionRight:
		paneRect.Left = box.Right() - size
		paneRect.Width = size
		rest.Width -= size
	case entity.PositionTop:
		paneRect.Height = size
		rest.Top += size
		rest.Height -= size
	case entity.PositionBottom:
		paneRect.Top = box.Bottom() - size
		paneRect.Height = size
		rest.Height -= size
	}
	return paneRect, rest
}

// RemoveOutput describes a completed removal.
type RemoveOutput struct {
	// Removed is the detached pane.
	Removed *entity.Sash
	// Promoted is the former parent, now carrying the sibling's identity.
	Promoted *entity.Sash
	// FormerParentID is the id the collapsed split had.
	FormerParentID string
}

// Remove detaches a pane and collapses its parent into the sibling.
func (uc *ManagePanesUseCase) Remove(ctx context.Context, root *entity.Sash, id string) (*RemoveOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("pane_id", id).Msg("removing pane")

	if root == nil {
		return nil, fmt.Errorf("root is required")
	}
	target := root.Find(id)
	if target == nil {
		return nil, entity.NotFound(entity.ErrSashNotFound, id)
	}
	if !target.IsLeaf() {
		return nil, &entity.LayoutError{ID: id, Err: entity.ErrNotAPane}
	}
	parent := target.Parent
	if parent == nil {
		return nil, &entity.LayoutError{ID: id, Err: entity.ErrNoParent}
	}
	sibling := target.Sibling()
	if sibling == nil {
		return nil, &entity.LayoutError{ID: parent.ID, Err: entity.ErrMalformedTree}
	}

	formerParentID := parent.ID
	collapseInto(parent, sibling)
	target.Parent = nil

	log.Info().
		Str("removed_pane_id", id).
		Str("promoted_id", parent.ID).
		Str("former_parent_id", formerParentID).
		Msg("pane removed, sibling promoted")

	return &RemoveOutput{Removed: target, Promoted: parent, FormerParentID: formerParentID}, nil
}

// collapseInto makes parent take the identity of sibling. A split sibling is
// first stretched over the parent's box, keeping its far edge in place.
func collapseInto(parent, sibling *entity.Sash) {
	if sibling.IsSplit() {
		sibling.Reshape(parent.Rect(), entity.ResizeNatural, sibling.Position)
	}

	parent.ID = sibling.ID
	parent.Store = sibling.Store
	parent.Element = sibling.Element
	parent.MinWidth = sibling.MinWidth
	parent.MinHeight = sibling.MinHeight
	parent.ResizeStrategy = sibling.ResizeStrategy
	parent.Pin = sibling.Pin
	parent.Children = nil
	if sibling.IsSplit() {
		parent.ReplaceChildren(sibling.Children)
	}
	sibling.Parent = nil
	sibling.Children = nil
}

// SwapOutput describes a completed swap.
type SwapOutput struct {
	A, B    *entity.Sash
	Swapped bool
}

// Swap exchanges the identity and content of two panes. Geometry and
// minimum sizes belong to the slots and stay put.
func (uc *ManagePanesUseCase) Swap(ctx context.Context, root *entity.Sash, aID, bID string) (*SwapOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("a_id", aID).Str("b_id", bID).Msg("swapping panes")

	if root == nil {
		return nil, fmt.Errorf("root is required")
	}
	a := root.Find(aID)
	if a == nil {
		return nil, entity.NotFound(entity.ErrSashNotFound, aID)
	}
	b := root.Find(bID)
	if b == nil {
		return nil, entity.NotFound(entity.ErrSashNotFound, bID)
	}
	if !a.IsLeaf() {
		return nil, &entity.LayoutError{ID: aID, Err: entity.ErrNotAPane}
	}
	if !b.IsLeaf() {
		return nil, &entity.LayoutError{ID: bID, Err: entity.ErrNotAPane}
	}
	if a == b {
		return &SwapOutput{A: a, B: b}, nil
	}

	a.ID, b.ID = b.ID, a.ID
	a.Store, b.Store = b.Store, a.Store
	a.Element, b.Element = b.Element, a.Element

	log.Info().Str("a_id", aID).Str("b_id", bID).Msg("panes swapped")

	// a's slot now holds b's content and the other way round.
	return &SwapOutput{A: b, B: a, Swapped: true}, nil
}

// MoveInput describes moving a pane next to another sash.
type MoveInput struct {
	Root     *entity.Sash
	SourceID string
	TargetID string
	Position entity.Position
	Size     any
}

// MoveOutput describes a completed move.
type MoveOutput struct {
	// Pane is the moved pane in its new slot.
	Pane   *entity.Sash
	Remove *RemoveOutput
	Split  *SplitOutput
}

// Move detaches a pane and splits it back in on one side of target,
// keeping its id, store, element and minimum sizes.
func (uc *ManagePanesUseCase) Move(ctx context.Context, input MoveInput) (*MoveOutput, error) {
	log := logging.FromContext(logging.WithPaneID(ctx, input.SourceID))
	log.Debug().
		Str("target_id", input.TargetID).
		Str("position", string(input.Position)).
		Msg("moving pane")

	if input.Root == nil {
		return nil, fmt.Errorf("root is required")
	}
	if input.SourceID == input.TargetID {
		return nil, &entity.LayoutError{
			ID:    input.SourceID,
			Value: "onto itself",
			Err:   entity.ErrNotDroppable,
		}
	}

	// Rehearse on a copy so a failing split cannot leave the source detached.
	// Both runs reuse one generated parent id so the rehearsal cannot
	// collide with a pane the caller already named.
	parentID := uc.idGenerator()
	ids := func() string { return parentID }

	rehearsal := input.Root.Clone()
	if _, err := uc.move(ctx, rehearsal, input, ids); err != nil {
		return nil, err
	}

	out, err := uc.move(ctx, input.Root, input, ids)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("target_id", input.TargetID).
		Str("position", string(input.Position)).
		Msg("pane moved")
	return out, nil
}

func (uc *ManagePanesUseCase) move(ctx context.Context, root *entity.Sash, input MoveInput, ids port.IDGenerator) (*MoveOutput, error) {
	source := root.Find(input.SourceID)
	if source == nil {
		return nil, entity.NotFound(entity.ErrSashNotFound, input.SourceID)
	}
	if root.Find(input.TargetID) == nil {
		return nil, entity.NotFound(entity.ErrSashNotFound, input.TargetID)
	}
	if source.Contains(root.Find(input.TargetID)) {
		return nil, &entity.LayoutError{ID: input.TargetID, Value: "inside source", Err: entity.ErrNotDroppable}
	}

	detached := &ManagePanesUseCase{idGenerator: ids}
	removed, err := detached.Remove(ctx, root, input.SourceID)
	if err != nil {
		return nil, err
	}

	split, err := detached.Split(ctx, SplitInput{
		Root:      root,
		TargetID:  input.TargetID,
		Position:  input.Position,
		Size:      input.Size,
		NewID:     removed.Removed.ID,
		Store:     removed.Removed.Store,
		Element:   removed.Removed.Element,
		MinWidth:  removed.Removed.MinWidth,
		MinHeight: removed.Removed.MinHeight,
	})
	if err != nil {
		return nil, err
	}
	split.Pane.ResizeStrategy = removed.Removed.ResizeStrategy
	return &MoveOutput{Pane: split.Pane, Remove: removed, Split: split}, nil
}

// Fit places the root over box. It reports whether the geometry changed.
func (uc *ManagePanesUseCase) Fit(ctx context.Context, root *entity.Sash, box entity.Box) (bool, error) {
	if root == nil {
		return false, fmt.Errorf("root is required")
	}
	if box.Width < 0 || box.Height < 0 {
		return false, &entity.LayoutError{
			ID:    root.ID,
			Value: fmt.Sprintf("%gx%g", box.Width, box.Height),
			Err:   entity.ErrInvalidSize,
		}
	}
	if root.Rect() == box.Rect() {
		return false, nil
	}

	logging.FromContext(ctx).Debug().
		Float64("width", box.Width).
		Float64("height", box.Height).
		Msg("fitting layout to container")

	root.SetWidth(box.Width)
	root.SetHeight(box.Height)
	root.SetLeft(box.Left)
	root.SetTop(box.Top)
	return true, nil
}
