package usecase

import "github.com/bnema/sashes/internal/domain/entity"

// DefaultDropMargin is the fraction of a pane, along each axis, taken by
// the center drop zone.
const DefaultDropMargin = 0.3

// HitTest classifies a pointer over rect into one of five drop zones.
// The center zone spans margin of each axis around the middle; the four
// edge zones are triangles cut by the rectangle's diagonals so they never
// overlap. Points off the rectangle report PositionOutside.
func HitTest(rect entity.Rect, p entity.Point, margin float64) entity.Position {
	if rect.Width <= 0 || rect.Height <= 0 || !rect.Contains(p) {
		return entity.PositionOutside
	}
	if margin < 0 || margin > 1 {
		margin = DefaultDropMargin
	}

	rx := (p.X - rect.Left) / rect.Width
	ry := (p.Y - rect.Top) / rect.Height
	lo, hi := 0.5-margin/2, 0.5+margin/2

	switch {
	case rx >= lo && rx <= hi && ry >= lo && ry <= hi:
		return entity.PositionCenter
	case rx < lo && ry >= rx && ry <= 1-rx:
		return entity.PositionLeft
	case rx > hi && ry >= 1-rx && ry <= rx:
		return entity.PositionRight
	case ry < lo && rx >= ry && rx <= 1-ry:
		return entity.PositionTop
	case ry > hi && rx >= 1-ry && rx <= ry:
		return entity.PositionBottom
	default:
		return entity.PositionCenter
	}
}

// DropAction is what releasing a dragged pane over a zone does.
type DropAction int

const (
	DropNone DropAction = iota
	DropSwap
	DropMove
)

// DropActionFor maps a hit-test zone to its action.
func DropActionFor(zone entity.Position) DropAction {
	switch {
	case zone == entity.PositionCenter:
		return DropSwap
	case zone.IsEdge():
		return DropMove
	default:
		return DropNone
	}
}
