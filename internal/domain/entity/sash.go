package entity

import "fmt"

// ElementRef is an opaque handle to the host's rendered element for a sash.
// The core never interprets it; hosts resolve pointer targets to ids through
// a port.ElementResolver.
type ElementRef string

// ResizeStrategy selects how a split distributes a change of its extent.
type ResizeStrategy string

const (
	// ResizeClassic shares the delta between both children in proportion to
	// their current extent.
	ResizeClassic ResizeStrategy = "classic"
	// ResizeNatural hands the whole delta to the child adjacent to the moving
	// edge, leaving the pinned side untouched.
	ResizeNatural ResizeStrategy = "natural"
)

// IsValid reports whether r is a known strategy.
func (r ResizeStrategy) IsValid() bool {
	return r == ResizeClassic || r == ResizeNatural
}

// SashOptions configures NewSash.
type SashOptions struct {
	ID       string
	Position Position

	Left, Top, Width, Height float64
	MinWidth, MinHeight      float64

	ResizeStrategy ResizeStrategy
	// Pin is the edge that stays fixed under ResizeNatural.
	Pin     Position
	Store   Store
	Element ElementRef
}

// Sash is a node of the layout tree. A sash with no children is a pane; a
// sash with two children is a split whose children sit on opposite sides.
type Sash struct {
	ID       string
	Position Position
	Parent   *Sash
	// Children is empty for a pane. For a split, Children[0] is the left/top
	// child and Children[1] the right/bottom one.
	Children []*Sash
	Store    Store

	MinWidth  float64
	MinHeight float64

	ResizeStrategy ResizeStrategy
	Pin            Position
	Element        ElementRef

	left, top, width, height float64
}

// NewSash creates a detached sash.
func NewSash(opts SashOptions) (*Sash, error) {
	if opts.ID == "" {
		return nil, &LayoutError{Err: ErrMissingID}
	}
	if opts.Position == "" {
		return nil, &LayoutError{ID: opts.ID, Err: ErrMissingPosition}
	}
	if !opts.Position.IsValid() {
		return nil, &LayoutError{ID: opts.ID, Value: string(opts.Position), Err: ErrInvalidPosition}
	}
	if opts.Width < 0 || opts.Height < 0 || opts.MinWidth < 0 || opts.MinHeight < 0 {
		return nil, &LayoutError{ID: opts.ID, Value: fmt.Sprintf("%gx%g", opts.Width, opts.Height), Err: ErrInvalidSize}
	}

	strategy := opts.ResizeStrategy
	if strategy == "" {
		strategy = ResizeClassic
	}
	if !strategy.IsValid() {
		return nil, &LayoutError{ID: opts.ID, Value: string(strategy), Err: fmt.Errorf("invalid resize strategy")}
	}

	return &Sash{
		ID:             opts.ID,
		Position:       opts.Position,
		Store:          opts.Store,
		MinWidth:       opts.MinWidth,
		MinHeight:      opts.MinHeight,
		ResizeStrategy: strategy,
		Pin:            opts.Pin,
		Element:        opts.Element,
		left:           opts.Left,
		top:            opts.Top,
		width:          opts.Width,
		height:         opts.Height,
	}, nil
}

// AddChild attaches child to s, keeping the canonical left/top-first order.
func (s *Sash) AddChild(child *Sash) error {
	if child == nil {
		return fmt.Errorf("child is required")
	}
	if len(s.Children) >= 2 {
		return &LayoutError{ID: s.ID, Value: child.ID, Err: ErrTooManyChildren}
	}
	if !child.Position.IsEdge() {
		return &LayoutError{ID: child.ID, Value: string(child.Position), Err: ErrInvalidPosition}
	}
	if len(s.Children) == 1 && !s.Children[0].Position.IsOppositeOf(child.Position) {
		return &LayoutError{
			ID:    child.ID,
			Value: fmt.Sprintf("%s next to %s", child.Position, s.Children[0].Position),
			Err:   ErrPositionConflict,
		}
	}

	child.Parent = s
	if child.Position == PositionLeft || child.Position == PositionTop {
		s.Children = append([]*Sash{child}, s.Children...)
	} else {
		s.Children = append(s.Children, child)
	}
	return nil
}

// ReplaceChildren installs children as-is and re-parents them. Callers are
// responsible for the ordering and position invariants.
func (s *Sash) ReplaceChildren(children []*Sash) {
	s.Children = children
	for _, child := range children {
		child.Parent = s
	}
}

// SetPosition changes the sash's role. The rendered element no longer
// matches its slot, so the reference is dropped.
func (s *Sash) SetPosition(p Position) {
	if p == s.Position {
		return
	}
	s.Position = p
	s.Element = ""
}

// IsLeaf returns true if this sash is a pane.
func (s *Sash) IsLeaf() bool {
	return len(s.Children) == 0
}

// IsSplit returns true if this sash divides its box between two children.
func (s *Sash) IsSplit() bool {
	return len(s.Children) == 2
}

// IsLeftRightSplit reports whether the children sit side by side.
func (s *Sash) IsLeftRightSplit() bool {
	return s.IsSplit() && s.Children[0].Position.IsHorizontal()
}

// IsTopBottomSplit reports whether the children are stacked vertically.
func (s *Sash) IsTopBottomSplit() bool {
	return s.IsSplit() && s.Children[0].Position.IsVertical()
}

// Child returns the child at position p, or nil.
func (s *Sash) Child(p Position) *Sash {
	for _, child := range s.Children {
		if child.Position == p {
			return child
		}
	}
	return nil
}

// Sibling returns the other child of s's parent, or nil for the root.
func (s *Sash) Sibling() *Sash {
	if s.Parent == nil {
		return nil
	}
	for _, child := range s.Parent.Children {
		if child != s {
			return child
		}
	}
	return nil
}

// Index returns the position of s among its parent's children, -1 for the root.
func (s *Sash) Index() int {
	if s.Parent == nil {
		return -1
	}
	for i, child := range s.Parent.Children {
		if child == s {
			return i
		}
	}
	return -1
}

// Root walks up to the top of the tree.
func (s *Sash) Root() *Sash {
	node := s
	for node.Parent != nil {
		node = node.Parent
	}
	return node
}

// Walk traverses the tree in pre-order calling fn for each node.
// Returns early if fn returns false.
func (s *Sash) Walk(fn func(*Sash) bool) bool {
	if !fn(s) {
		return false
	}
	for _, child := range s.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find searches the subtree for a sash with the given id.
func (s *Sash) Find(id string) *Sash {
	var found *Sash
	s.Walk(func(node *Sash) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindByElement searches the subtree for the sash rendered as ref.
func (s *Sash) FindByElement(ref ElementRef) *Sash {
	if ref == "" {
		return nil
	}
	var found *Sash
	s.Walk(func(node *Sash) bool {
		if node.Element == ref {
			found = node
			return false
		}
		return true
	})
	return found
}

// Leaves returns every pane of the subtree in left/top-first order.
func (s *Sash) Leaves() []*Sash {
	var leaves []*Sash
	s.Walk(func(node *Sash) bool {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
		return true
	})
	return leaves
}

// LeafCount returns the number of panes in the subtree.
func (s *Sash) LeafCount() int {
	count := 0
	s.Walk(func(node *Sash) bool {
		if node.IsLeaf() {
			count++
		}
		return true
	})
	return count
}

// Clone deep-copies the subtree rooted at s. The copy is detached: its root
// has no parent. Stores are deep-copied too.
func (s *Sash) Clone() *Sash {
	out := *s
	out.Parent = nil
	out.Store = nil
	if s.Store != nil {
		out.Store = s.Store.Clone()
	}
	out.Children = nil
	if len(s.Children) > 0 {
		children := make([]*Sash, len(s.Children))
		for i, child := range s.Children {
			children[i] = child.Clone()
		}
		out.ReplaceChildren(children)
	}
	return &out
}

// Contains reports whether other is s or one of its descendants.
func (s *Sash) Contains(other *Sash) bool {
	for node := other; node != nil; node = node.Parent {
		if node == s {
			return true
		}
	}
	return false
}
