package entity

import (
	"fmt"
	"math"
)

type axis int

const (
	axisX axis = iota
	axisY
)

func (a axis) leading() Position {
	if a == axisX {
		return PositionLeft
	}
	return PositionTop
}

func (a axis) trailing() Position {
	if a == axisX {
		return PositionRight
	}
	return PositionBottom
}

// Left returns the x offset of the sash.
func (s *Sash) Left() float64 { return s.left }

// Top returns the y offset of the sash.
func (s *Sash) Top() float64 { return s.top }

// Width returns the sash width.
func (s *Sash) Width() float64 { return s.width }

// Height returns the sash height.
func (s *Sash) Height() float64 { return s.height }

// Rect returns the sash box.
func (s *Sash) Rect() Rect {
	return Rect{Left: s.left, Top: s.top, Width: s.width, Height: s.height}
}

// SetLeft moves the sash horizontally; children follow by the same delta.
func (s *Sash) SetLeft(v float64) {
	s.translate(v-s.left, 0)
}

// SetTop moves the sash vertically; children follow by the same delta.
func (s *Sash) SetTop(v float64) {
	s.translate(0, v-s.top)
}

// SetWidth resizes the sash and redistributes the change among its children
// according to its resize strategy.
func (s *Sash) SetWidth(w float64) {
	s.resize(axisX, w, s.ResizeStrategy, s.Pin)
}

// SetHeight is the vertical counterpart of SetWidth.
func (s *Sash) SetHeight(h float64) {
	s.resize(axisY, h, s.ResizeStrategy, s.Pin)
}

// Reshape moves and resizes the sash into r in one step.
func (s *Sash) Reshape(r Rect, strategy ResizeStrategy, pin Position) {
	s.resize(axisX, r.Width, strategy, pin)
	s.resize(axisY, r.Height, strategy, pin)
	s.translate(r.Left-s.left, r.Top-s.top)
}

// CalcMinWidth returns the effective minimum width of the subtree.
// Panics with ErrMalformedTree on a split without two opposite children.
func (s *Sash) CalcMinWidth() float64 {
	return s.calcMin(axisX)
}

// CalcMinHeight returns the effective minimum height of the subtree.
func (s *Sash) CalcMinHeight() float64 {
	return s.calcMin(axisY)
}

// MoveMuntin shifts the divider between the children of a split by delta
// pixels along the split axis. Each side is clamped to its calculated
// minimum and only the sashes adjacent to the divider change. It returns
// the delta actually applied.
func (s *Sash) MoveMuntin(delta float64) (float64, error) {
	if !s.IsSplit() {
		return 0, &LayoutError{ID: s.ID, Err: ErrMuntinNotFound}
	}
	s.checkSplit()

	a := axisY
	if s.IsLeftRightSplit() {
		a = axisX
	}
	first, second := s.Children[0], s.Children[1]
	total := s.extent(a)
	current := first.extent(a)
	target := clampSplit(current+delta, total, first.calcMin(a), second.calcMin(a))
	applied := target - current
	if applied == 0 {
		return 0, nil
	}

	first.resize(a, target, ResizeNatural, a.leading())
	second.resize(a, total-target, ResizeNatural, a.trailing())
	second.translateAxis(a, s.offset(a)+target-second.offset(a))
	return applied, nil
}

func (s *Sash) extent(a axis) float64 {
	if a == axisX {
		return s.width
	}
	return s.height
}

func (s *Sash) offset(a axis) float64 {
	if a == axisX {
		return s.left
	}
	return s.top
}

func (s *Sash) minFloor(a axis) float64 {
	if a == axisX {
		return s.MinWidth
	}
	return s.MinHeight
}

func (s *Sash) splitsAlong(a axis) bool {
	if a == axisX {
		return s.IsLeftRightSplit()
	}
	return s.IsTopBottomSplit()
}

func (s *Sash) translate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	s.left += dx
	s.top += dy
	for _, child := range s.Children {
		child.translate(dx, dy)
	}
}

func (s *Sash) translateAxis(a axis, delta float64) {
	if a == axisX {
		s.translate(delta, 0)
		return
	}
	s.translate(0, delta)
}

func (s *Sash) checkSplit() {
	if s.IsLeaf() {
		return
	}
	if len(s.Children) != 2 || !s.Children[0].Position.IsOppositeOf(s.Children[1].Position) {
		panic(fmt.Errorf("%w: sash %q has %d children", ErrMalformedTree, s.ID, len(s.Children)))
	}
}

func (s *Sash) calcMin(a axis) float64 {
	own := s.minFloor(a)
	if s.IsLeaf() {
		return own
	}
	s.checkSplit()

	first, second := s.Children[0].calcMin(a), s.Children[1].calcMin(a)
	if s.splitsAlong(a) {
		return max(own, first+second)
	}
	return max(own, first, second)
}

// resize sets the extent along a and cascades to the children. Children on
// the split axis share the delta per strategy; across the axis they take the
// new value directly. Child offsets are re-derived from s so the subtree
// always tiles s exactly.
func (s *Sash) resize(a axis, size float64, strategy ResizeStrategy, pin Position) {
	if size < 0 {
		size = 0
	}
	old := s.extent(a)
	if a == axisX {
		s.width = size
	} else {
		s.height = size
	}
	if s.IsLeaf() {
		return
	}
	s.checkSplit()

	first, second := s.Children[0], s.Children[1]
	childResize := func(child *Sash, v float64) {
		if strategy == ResizeNatural {
			child.resize(a, v, ResizeNatural, pin)
			return
		}
		child.resize(a, v, child.ResizeStrategy, child.Pin)
	}

	if !s.splitsAlong(a) {
		childResize(first, size)
		childResize(second, size)
		first.translateAxis(a, s.offset(a)-first.offset(a))
		second.translateAxis(a, s.offset(a)-second.offset(a))
		return
	}

	current := first.extent(a)
	var target float64
	switch {
	case strategy == ResizeNatural && pin == a.trailing():
		target = current + (size - old)
	case strategy == ResizeNatural:
		target = current
	case old > 0:
		target = math.Round(current + (size-old)*current/old)
	default:
		target = math.Round(size / 2)
	}
	target = clampSplit(target, size, first.calcMin(a), second.calcMin(a))

	childResize(first, target)
	childResize(second, size-target)
	first.translateAxis(a, s.offset(a)-first.offset(a))
	second.translateAxis(a, s.offset(a)+target-second.offset(a))
}

// clampSplit keeps the first child's extent within [minFirst, total-minSecond].
// When both minimums cannot fit, total is shared in proportion to them.
func clampSplit(first, total, minFirst, minSecond float64) float64 {
	if minFirst+minSecond > total {
		if minFirst+minSecond <= 0 {
			return math.Round(total / 2)
		}
		return math.Round(total * minFirst / (minFirst + minSecond))
	}
	if first < minFirst {
		return minFirst
	}
	if total-first < minSecond {
		return total - minSecond
	}
	return first
}
