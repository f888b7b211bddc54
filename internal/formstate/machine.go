// Package formstate tracks the active step of the creation wizard's
// ordered form.
package formstate

import "sync"

// Default wizard steps, in order.
var DefaultSteps = []string{
	"Basic Info",
	"Appearance",
	"Authorities",
	"Review",
}

// Machine holds the current step of an N-step form. Steps are numbered
// 1..N. Next and Prev clamp at the boundaries; they are deliberate
// no-ops there, not errors. Transitions are guarded by a mutex so they
// are immediately observable by all readers.
type Machine struct {
	mu      sync.RWMutex
	current int
	steps   []string
}

// New creates a machine over the given step names, starting at step 1.
// Empty steps fall back to DefaultSteps.
func New(steps ...string) *Machine {
	if len(steps) == 0 {
		steps = DefaultSteps
	}
	return &Machine{current: 1, steps: steps}
}

// Current returns the active step number in [1, N].
func (m *Machine) Current() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// StepName returns the name of the active step.
func (m *Machine) StepName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.steps[m.current-1]
}

// StepCount returns N.
func (m *Machine) StepCount() int {
	return len(m.steps)
}

// Next advances one step, clamping at the last step.
func (m *Machine) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current < len(m.steps) {
		m.current++
	}
}

// Prev moves back one step, clamping at the first step.
func (m *Machine) Prev() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current > 1 {
		m.current--
	}
}

// GoTo jumps directly to step n. Out-of-range values are rejected and
// leave the current step unchanged; the return reports whether the jump
// happened.
func (m *Machine) GoTo(n int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 1 || n > len(m.steps) {
		return false
	}
	m.current = n
	return true
}

// IsFirst reports whether the first step is active.
func (m *Machine) IsFirst() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current == 1
}

// IsLast reports whether the last step is active.
func (m *Machine) IsLast() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current == len(m.steps)
}
