// SPDX-License-Identifier: MIT

package simulation

import (
	"github.com/katalvlaran/capy/energy"
	"github.com/katalvlaran/capy/internal/logging"
)

// levelTrace is the per-step log level.
const levelTrace = logging.LevelTrace

// Outcome tags the result of Advance.
type Outcome int

const (
	// Running means a step was performed.
	Running Outcome = iota

	// Terminated means the budget is spent; no step was performed.
	Terminated
)

// String returns "running" or "terminated".
func (o Outcome) String() string {
	if o == Terminated {
		return "terminated"
	}

	return "running"
}

// State is the mutable part of a chain: both vectors and the step counter.
// It is an immutable value from the caller's side; Advance returns a new one.
// The vectors are shared between a State and its successor only when the
// successor rejected its candidate, and neither is ever written in place.
type State struct {
	a, b    energy.Population
	counter int

	// energy caches HalfCapy(a, b) once known.
	energy float64
	scored bool
}

// Start returns the initial Running state, built from fresh copies of the
// construction-time vectors.
func (s *Simulation) Start() State {
	return State{a: s.a0.Clone(), b: s.b0.Clone()}
}

// Counter returns how many steps led to this state.
func (st State) Counter() int { return st.counter }

// A returns a copy of the group-A vector.
func (st State) A() energy.Population { return st.a.Clone() }

// B returns a copy of the group-B vector.
func (st State) B() energy.Population { return st.b.Clone() }

// Step is what one Advance observes.
type Step struct {
	Index     int               // 1-based step number
	A, B      energy.Population // vectors after the decision (copies)
	Energy    float64           // candidate energy if accepted, else the pre-step energy
	Candidate float64           // energy of the proposed candidate
	Accepted  bool
	Move      Move
}

// Move describes a proposal: Count members of A go From→To while Count
// members of B go To→From.
type Move struct {
	From, To int
	Count    int64
}

// NoOp reports whether the move changes nothing.
func (m Move) NoOp() bool { return m.Count == 0 }
