package mocks

import (
	"github.com/mcoot/battleship-go2/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// BoolResults is a queue of results to return from Bool
	BoolResults []bool
	boolIndex   int

	// Fallback answers calls once a queue is exhausted; nil means return zero values
	Fallback random.Random
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result clamped into [0, n)
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		if r.Fallback != nil {
			return r.Fallback.Intn(n)
		}
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	if n > 0 && result >= n {
		result = n - 1
	}
	return result
}

// Bool returns the next queued result, or false if none remaining
func (r *MockRandom) Bool() bool {
	if r.boolIndex >= len(r.BoolResults) {
		if r.Fallback != nil {
			return r.Fallback.Bool()
		}
		return false
	}
	result := r.BoolResults[r.boolIndex]
	r.boolIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueBool adds values to the Bool result queue
func (r *MockRandom) QueueBool(values ...bool) {
	r.BoolResults = append(r.BoolResults, values...)
}

// QueuePlacement queues one auto-placement attempt: orientation then origin
func (r *MockRandom) QueuePlacement(vertical bool, x, y int) {
	r.QueueBool(vertical)
	r.QueueIntn(x, y)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.BoolResults = nil
	r.boolIndex = 0
}
