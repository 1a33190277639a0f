package mocks

import (
	"fmt"

	"github.com/mcoot/battleship-go2/internal/dependencies/idgen"
)

// MockIDGenerator returns queued IDs, then sequential ones
type MockIDGenerator struct {
	IDs   []string
	index int
	next  int
}

// Ensure MockIDGenerator implements Generator
var _ idgen.Generator = (*MockIDGenerator)(nil)

// NewMockIDGenerator creates a new MockIDGenerator
func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

// NewID returns the next queued ID, or "id-N" once the queue is empty
func (g *MockIDGenerator) NewID() string {
	if g.index < len(g.IDs) {
		id := g.IDs[g.index]
		g.index++
		return id
	}
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

// QueueID adds values to the ID queue
func (g *MockIDGenerator) QueueID(ids ...string) {
	g.IDs = append(g.IDs, ids...)
}
