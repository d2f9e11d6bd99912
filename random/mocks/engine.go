package mocks

import (
	"github.com/gpahal/mtrand/random"
)

// Engine is a scripted random.Engine for testing. Queued values are returned
// in order; once a queue is exhausted its method returns 0.
type Engine struct {
	Float64Results []float64
	float64Index   int

	Uint64Results []uint64
	uint64Index   int

	// Uint64nResults are reduced modulo n so a script never escapes [0,n).
	Uint64nResults []uint64
	uint64nIndex   int

	// Uint64nArgs records every n passed to Uint64n.
	Uint64nArgs []uint64
}

var _ random.Engine = (*Engine)(nil)

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Float64 returns the next queued result.
func (e *Engine) Float64() float64 {
	if e.float64Index >= len(e.Float64Results) {
		return 0
	}
	result := e.Float64Results[e.float64Index]
	e.float64Index++
	return result
}

// Uint64 returns the next queued result.
func (e *Engine) Uint64() uint64 {
	if e.uint64Index >= len(e.Uint64Results) {
		return 0
	}
	result := e.Uint64Results[e.uint64Index]
	e.uint64Index++
	return result
}

// Uint64n returns the next queued result modulo n.
func (e *Engine) Uint64n(n uint64) uint64 {
	e.Uint64nArgs = append(e.Uint64nArgs, n)
	if n == 0 || e.uint64nIndex >= len(e.Uint64nResults) {
		return 0
	}
	result := e.Uint64nResults[e.uint64nIndex] % n
	e.uint64nIndex++
	return result
}

// QueueFloat64 adds values to the Float64 result queue.
func (e *Engine) QueueFloat64(values ...float64) {
	e.Float64Results = append(e.Float64Results, values...)
}

// QueueUint64 adds values to the Uint64 result queue.
func (e *Engine) QueueUint64(values ...uint64) {
	e.Uint64Results = append(e.Uint64Results, values...)
}

// QueueUint64n adds values to the Uint64n result queue.
func (e *Engine) QueueUint64n(values ...uint64) {
	e.Uint64nResults = append(e.Uint64nResults, values...)
}

// Draws returns how many values have been consumed across all queues.
func (e *Engine) Draws() int {
	return e.float64Index + e.uint64Index + e.uint64nIndex
}

// Reset clears all queued results and recorded arguments.
func (e *Engine) Reset() {
	*e = Engine{}
}
