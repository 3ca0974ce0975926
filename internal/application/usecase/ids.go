package usecase

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/bnema/sashes/internal/application/port"
)

// NewUUIDGenerator returns the default id source: random UUIDs.
func NewUUIDGenerator() port.IDGenerator {
	return uuid.NewString
}

// NewSequentialGenerator returns ids of the form prefix-1, prefix-2, ...
// Useful for reproducible layouts and tests.
func NewSequentialGenerator(prefix string) port.IDGenerator {
	var counter uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, atomic.AddUint64(&counter, 1))
	}
}
