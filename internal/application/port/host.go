package port

import (
	"context"

	"github.com/bnema/sashes/internal/domain/entity"
)

// ElementResolver maps a host element to the sash it renders.
// Pointer events carry element refs; the core works with ids only.
type ElementResolver interface {
	// ResolveElement returns the sash id for ref, false when unknown.
	ResolveElement(ref entity.ElementRef) (string, bool)
}

// ElementResolverFunc adapts a plain function to ElementResolver.
type ElementResolverFunc func(ref entity.ElementRef) (string, bool)

// ResolveElement calls f(ref).
func (f ElementResolverFunc) ResolveElement(ref entity.ElementRef) (string, bool) {
	return f(ref)
}

// ContainerObserver reports the box of the element hosting the layout.
type ContainerObserver interface {
	ContainerBox(ctx context.Context) (entity.Box, error)
}

// IDGenerator is a function type for generating unique IDs.
type IDGenerator func() string
