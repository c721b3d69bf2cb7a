// Package idgen provides IDGenerator implementations for toast IDs.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// Sequence yields "1", "2", "3", ... with an optional prefix. The counter
// wraps at the maximum int64 value.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence creates a Sequence whose IDs start with prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Generate returns the next ID.
func (s *Sequence) Generate() string {
	return s.prefix + strconv.FormatInt(s.n.Add(1), 10)
}
