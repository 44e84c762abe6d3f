package kernel

import (
	"fmt"
	"sync"
)

// IDGenerator produces identifiers for detail lines and other child values.
// Tests inject SequenceGenerator so consolidation results are reproducible.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return NewUUID().String()
}

// SequenceGenerator issues prefix-1, prefix-2, ... and is safe for concurrent use.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: 1}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("%s-%d", g.prefix, g.next)
	g.next++
	return id
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string {
	return f()
}
