package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Structural violations.
var (
	ErrMissingID         = errors.New("sash id is required")
	ErrMissingPosition   = errors.New("sash position is required")
	ErrInvalidPosition   = errors.New("invalid position")
	ErrTooManyChildren   = errors.New("a sash holds at most two children")
	ErrUnaryChildren     = errors.New("a split needs exactly two children")
	ErrPositionConflict  = errors.New("sibling positions must be opposites")
	ErrNoOpposite        = errors.New("position has no opposite")
	ErrSizeMismatch      = errors.New("sibling sizes do not fill the parent")
	ErrInvalidSize       = errors.New("invalid size")
	ErrInsufficientSpace = errors.New("not enough space to honor minimum sizes")
	ErrMalformedTree     = errors.New("malformed sash tree")
	ErrDuplicateID       = errors.New("sash id already in use")
)

// Lookup and state failures.
var (
	ErrSashNotFound     = errors.New("sash not found")
	ErrMuntinNotFound   = errors.New("muntin not found")
	ErrNoParent         = errors.New("sash has no parent to collapse into")
	ErrNotAPane         = errors.New("sash is not a pane")
	ErrPaneRemoved      = errors.New("pane has been removed")
	ErrNoActiveDrag     = errors.New("no active resize gesture")
	ErrNotResizable     = errors.New("split is not resizable")
	ErrNotDroppable     = errors.New("pane does not accept drops")
	ErrUnknownEventType = errors.New("unknown event type")
)

// LayoutError carries the context of a structural or configuration failure
// so hosts can render a meaningful message.
type LayoutError struct {
	// Path locates the offending node in a configuration, e.g. "root.children[1]".
	Path string
	// ID is the sash id involved, when known.
	ID string
	// Value is the rejected input, when there is one.
	Value any
	// Suggestion is a human hint such as "did you mean \"left\"?".
	Suggestion string
	Err        error
}

func (e *LayoutError) Error() string {
	var b strings.Builder
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("layout error")
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " (id %q)", e.ID)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, ": got %v", e.Value)
	}
	if e.Suggestion != "" {
		b.WriteString("; ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// NotFound builds a lookup failure for the given id.
func NotFound(kind error, id string) error {
	return &LayoutError{ID: id, Err: kind}
}
