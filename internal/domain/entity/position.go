// Package entity contains the domain types of the layout engine: the sash
// tree, its geometry, and the pane lifecycle event payloads.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "fmt"

// Position is the role of a sash relative to its parent. It doubles as the
// result of drop-zone hit testing.
type Position string

const (
	PositionRoot    Position = "root"
	PositionTop     Position = "top"
	PositionRight   Position = "right"
	PositionBottom  Position = "bottom"
	PositionLeft    Position = "left"
	PositionCenter  Position = "center"
	PositionUnknown Position = "unknown"
	PositionOutside Position = "outside"
)

// AllPositions returns every known position in declaration order.
func AllPositions() []Position {
	return []Position{
		PositionRoot,
		PositionTop,
		PositionRight,
		PositionBottom,
		PositionLeft,
		PositionCenter,
		PositionUnknown,
		PositionOutside,
	}
}

// IsValid reports whether p is one of the known positions.
func (p Position) IsValid() bool {
	for _, known := range AllPositions() {
		if p == known {
			return true
		}
	}
	return false
}

// IsEdge reports whether p is one of the four split positions.
func (p Position) IsEdge() bool {
	switch p {
	case PositionTop, PositionRight, PositionBottom, PositionLeft:
		return true
	default:
		return false
	}
}

// IsHorizontal reports whether p belongs to a left/right split.
func (p Position) IsHorizontal() bool {
	return p == PositionLeft || p == PositionRight
}

// IsVertical reports whether p belongs to a top/bottom split.
func (p Position) IsVertical() bool {
	return p == PositionTop || p == PositionBottom
}

// Opposite returns the geometric opposite of an edge position.
func (p Position) Opposite() (Position, error) {
	switch p {
	case PositionTop:
		return PositionBottom, nil
	case PositionBottom:
		return PositionTop, nil
	case PositionLeft:
		return PositionRight, nil
	case PositionRight:
		return PositionLeft, nil
	default:
		return PositionUnknown, fmt.Errorf("%w: %q", ErrNoOpposite, string(p))
	}
}

// IsOppositeOf reports whether p and other are the two sides of one split.
func (p Position) IsOppositeOf(other Position) bool {
	opposite, err := p.Opposite()
	return err == nil && opposite == other
}

func (p Position) String() string {
	return string(p)
}
