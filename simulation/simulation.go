// SPDX-License-Identifier: MIT

package simulation

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/capy/energy"
	"github.com/katalvlaran/capy/matrix"
)

const (
	ctxNew     = "New"
	ctxAdvance = "Advance"
	ctxRun     = "Run"
	ctxPropose = "Propose"
)

// Simulation is one Metropolis-Hastings chain over a fixed adjacency.
//
// The construction-time vectors are private copies; the adjacency is shared
// and must not be mutated while the Simulation is in use.
type Simulation struct {
	a0, b0 energy.Population
	adj    matrix.Adjacency

	temperature float64
	target      float64
	steps       int
	sampling    Sampling

	rng    *rand.Rand
	logger *slog.Logger
	hook   Hook
}

// New validates the inputs and returns a ready Simulation.
//
// Implementation:
//   - Stage 1: matrix.ValidateAdjacency (non-nil, square, finite,
//     non-negative, symmetric).
//   - Stage 2: node count ≥ 2 (≥ 3 with SamplingLegacy), else ErrTooFewNodes.
//     Fewer nodes would make the distinct-index draw loop forever.
//   - Stage 3: both vectors have N entries, none negative, neither all zero.
//   - Stage 4: copy the vectors.
//
// Errors:
//   - matrix sentinels from ValidateAdjacency,
//   - ErrTooFewNodes, ErrLengthMismatch, ErrNegativePopulation, ErrEmptyGroup.
func New(a, b energy.Population, adj matrix.Adjacency, opts ...Option) (*Simulation, error) {
	o := gatherOptions(opts...)

	if err := matrix.ValidateAdjacency(adj, matrix.DefaultEpsilon); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxNew, err)
	}
	n := adj.Rows()
	if n < minNodes(o.sampling) {
		return nil, fmt.Errorf("%s: %d node(s), %s sampling needs %d: %w",
			ctxNew, n, o.sampling, minNodes(o.sampling), ErrTooFewNodes)
	}
	if len(a) != n || len(b) != n {
		return nil, fmt.Errorf("%s: lengths %d and %d, want %d: %w", ctxNew, len(a), len(b), n, ErrLengthMismatch)
	}
	for i := 0; i < n; i++ {
		if a[i] < 0 || b[i] < 0 {
			return nil, fmt.Errorf("%s: node %d (%d, %d): %w", ctxNew, i, a[i], b[i], ErrNegativePopulation)
		}
	}
	if a.Total() == 0 || b.Total() == 0 {
		return nil, fmt.Errorf("%s: totals %d and %d: %w", ctxNew, a.Total(), b.Total(), ErrEmptyGroup)
	}

	s := &Simulation{
		a0:          a.Clone(),
		b0:          b.Clone(),
		adj:         adj,
		temperature: o.temperature,
		target:      o.target,
		steps:       o.steps,
		sampling:    o.sampling,
		rng:         o.rng,
		logger:      o.logger,
		hook:        o.hook,
	}
	s.logger.Debug("simulation created",
		"nodes", n,
		"steps", s.steps,
		"temperature", s.temperature,
		"target", s.target,
		"sampling", s.sampling.String(),
		"total_a", a.Total(),
		"total_b", b.Total(),
	)

	return s, nil
}

func minNodes(m Sampling) int {
	if m == SamplingLegacy {
		return 3
	}

	return 2
}

// Len returns the step budget, independent of any run in progress.
func (s *Simulation) Len() int { return s.steps }

// Nodes returns the node count.
func (s *Simulation) Nodes() int { return s.adj.Rows() }

// Temperature returns the acceptance temperature.
func (s *Simulation) Temperature() float64 { return s.temperature }

// Sampling returns the proposal mode.
func (s *Simulation) Sampling() Sampling { return s.sampling }

// Target returns the current target energy.
func (s *Simulation) Target() float64 { return s.target }

// SetTarget changes the target consulted by every later step, including the
// steps of a run already in progress.
func (s *Simulation) SetTarget(t float64) { s.target = t }

// InitialEnergy scores the construction-time vectors.
func (s *Simulation) InitialEnergy() (float64, error) {
	return energy.HalfCapy(s.a0, s.b0, s.adj)
}

// Advance performs one step from st.
//
// On a Terminated budget it returns st unchanged, a zero Step and Terminated.
// Otherwise it returns the successor state, the observed Step and Running.
// st itself is never modified.
//
// Errors:
//   - ErrLengthMismatch for a State not built by Start (e.g. the zero State),
//   - energy errors, which construction-time checks rule out for valid states.
func (s *Simulation) Advance(st State) (State, Step, Outcome, error) {
	if st.counter >= s.steps {
		return st, Step{}, Terminated, nil
	}
	n := s.adj.Rows()
	if len(st.a) != n || len(st.b) != n {
		return st, Step{}, Running, fmt.Errorf("%s: state of length %d, want %d: %w", ctxAdvance, len(st.a), n, ErrLengthMismatch)
	}

	oldE := st.energy
	if !st.scored {
		var err error
		if oldE, err = energy.HalfCapy(st.a, st.b, s.adj); err != nil {
			return st, Step{}, Running, fmt.Errorf("%s: current state: %w", ctxAdvance, err)
		}
	}

	candA, candB, mv, err := s.Propose(st.a, st.b)
	if err != nil {
		return st, Step{}, Running, fmt.Errorf("%s: %w", ctxAdvance, err)
	}
	newE := oldE
	if !mv.NoOp() {
		if newE, err = energy.HalfCapy(candA, candB, s.adj); err != nil {
			return st, Step{}, Running, fmt.Errorf("%s: candidate: %w", ctxAdvance, err)
		}
	}

	var accepted bool
	if oldE < s.target {
		accepted = s.Accept(oldE, newE)
	} else {
		accepted = s.Accept(newE, oldE)
	}

	next := State{a: st.a, b: st.b, counter: st.counter + 1, energy: oldE, scored: true}
	if accepted {
		next.a, next.b, next.energy = candA, candB, newE
	}

	step := Step{
		Index:     next.counter,
		A:         next.a.Clone(),
		B:         next.b.Clone(),
		Energy:    next.energy,
		Candidate: newE,
		Accepted:  accepted,
		Move:      mv,
	}
	s.logger.Log(context.Background(), levelTrace, "step",
		"index", step.Index,
		"from", mv.From,
		"to", mv.To,
		"count", mv.Count,
		"old", oldE,
		"new", newE,
		"target", s.target,
		"accepted", accepted,
	)
	if s.hook != nil {
		s.hook(step)
	}

	return next, step, Running, nil
}

// All returns an iterator over exactly Len() steps. Every call restarts from
// the construction-time vectors; the random stream continues where the
// previous run left it.
//
// An Advance error cannot occur for states produced by Start; if one does,
// it is logged and the sequence ends early.
func (s *Simulation) All() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		st := s.Start()
		for {
			next, step, out, err := s.Advance(st)
			if err != nil {
				s.logger.Error("simulation aborted", "step", st.counter+1, "err", err)
				return
			}
			if out == Terminated || !yield(step) {
				return
			}
			st = next
		}
	}
}

// Run drives a full pass from Start, calling fn after every step. It stops
// early when ctx is done (returning ctx.Err()) or when fn returns an error.
// A nil fn only drives the chain.
func (s *Simulation) Run(ctx context.Context, fn func(Step) error) error {
	st := s.Start()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: after %d step(s): %w", ctxRun, st.counter, ctx.Err())
		default:
		}

		next, step, out, err := s.Advance(st)
		if err != nil {
			return fmt.Errorf("%s: %w", ctxRun, err)
		}
		if out == Terminated {
			return nil
		}
		if fn != nil {
			if err = fn(step); err != nil {
				return err
			}
		}
		st = next
	}
}

// Final runs a full pass and returns its last Step. With a zero budget it
// returns Step{Index: 0} holding the initial vectors and their energy.
func (s *Simulation) Final(ctx context.Context) (Step, error) {
	var last Step
	err := s.Run(ctx, func(st Step) error {
		last = st
		return nil
	})
	if err != nil {
		return Step{}, err
	}
	if s.steps == 0 {
		e, err := s.InitialEnergy()
		if err != nil {
			return Step{}, err
		}
		last = Step{A: s.a0.Clone(), B: s.b0.Clone(), Energy: e, Candidate: e}
	}

	return last, nil
}
