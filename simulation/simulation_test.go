package simulation_test

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/katalvlaran/capy/energy"
	"github.com/katalvlaran/capy/matrix"
	"github.com/katalvlaran/capy/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strict makes Accept a pure hill-climb: any loss has probability 0.
var strict = simulation.WithTemperature(math.MaxFloat64)

func TestNewValidation(t *testing.T) {
	one, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	asym, err := matrix.NewDenseFromRows([][]float64{{0, 1}, {2, 0}})
	require.NoError(t, err)
	neg, err := matrix.NewDenseFromRows([][]float64{{0, -1}, {-1, 0}})
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b energy.Population
		adj  matrix.Adjacency
		opts []simulation.Option
		want error
	}{
		{"single node", energy.Population{5}, energy.Population{5}, one, nil, simulation.ErrTooFewNodes},
		{"legacy needs three", energy.Population{5, 0}, energy.Population{0, 5}, k2(t), []simulation.Option{simulation.WithSampling(simulation.SamplingLegacy)}, simulation.ErrTooFewNodes},
		{"length mismatch", energy.Population{5, 0, 1}, energy.Population{0, 5}, pathDense(t, 3), nil, simulation.ErrLengthMismatch},
		{"negative count", energy.Population{5, -1}, energy.Population{0, 5}, k2(t), nil, simulation.ErrNegativePopulation},
		{"empty group", energy.Population{5, 1}, energy.Population{0, 0}, k2(t), nil, simulation.ErrEmptyGroup},
		{"nil adjacency", energy.Population{5, 0}, energy.Population{0, 5}, nil, nil, matrix.ErrNilMatrix},
		{"asymmetric", energy.Population{5, 0}, energy.Population{0, 5}, asym, nil, matrix.ErrAsymmetry},
		{"negative weight", energy.Population{5, 0}, energy.Population{0, 5}, neg, nil, matrix.ErrNegativeWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := simulation.New(tt.a, tt.b, tt.adj, tt.opts...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	s, err := simulation.New(energy.Population{10, 0}, energy.Population{0, 10}, k2(t))
	require.NoError(t, err)
	require.Equal(t, simulation.DefaultSteps, s.Len())
	require.Equal(t, simulation.DefaultTemperature, s.Temperature())
	require.Equal(t, float64(1<<20), s.Temperature())
	require.Equal(t, 1.0, s.Target())
	require.Equal(t, simulation.SamplingUniform, s.Sampling())
	require.Equal(t, 2, s.Nodes())
}

// TestTwoNodeScenario: K2, A=[10,0], B=[0,10], target 0.5, 50 steps.
// On K2 the half score is 0.5 for every split, so every real move is
// accepted and the run must finish without hanging.
func TestTwoNodeScenario(t *testing.T) {
	s, err := simulation.New(
		energy.Population{10, 0}, energy.Population{0, 10}, k2(t),
		simulation.WithTargetEnergy(0.5),
		simulation.WithSteps(50),
		simulation.WithSeed(2024),
	)
	require.NoError(t, err)

	var n, moved int
	for step := range s.All() {
		n++
		require.Equal(t, n, step.Index)
		require.Equal(t, int64(10), step.A.Total())
		require.Equal(t, int64(10), step.B.Total())
		require.InDelta(t, 0.5, step.Energy, 1e-12)
		require.True(t, step.Accepted)
		if !step.Move.NoOp() {
			moved++
		}
	}
	require.Equal(t, 50, n)
	require.Positive(t, moved)
}

// TestConservation checks group totals and non-negativity at every step.
func TestConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	n := 20
	var edges []matrix.Edge
	for i := 0; i < n; i++ {
		edges = append(edges, matrix.Edge{U: i, V: (i + 1) % n, W: 1})
		edges = append(edges, matrix.Edge{U: i, V: rng.Intn(n), W: float64(1 + rng.Intn(3))})
	}
	adj, err := matrix.CSRFromEdges(n, edges)
	require.NoError(t, err)

	a, b := make(energy.Population, n), make(energy.Population, n)
	for i := range a {
		a[i], b[i] = int64(rng.Intn(40)), int64(rng.Intn(40))
	}
	a[0]++
	b[0]++

	for _, mode := range []simulation.Sampling{simulation.SamplingUniform, simulation.SamplingLegacy} {
		s, err := simulation.New(a, b, adj,
			simulation.WithSteps(300),
			simulation.WithTemperature(20),
			simulation.WithTargetEnergy(0.6),
			simulation.WithSampling(mode),
			simulation.WithSeed(5),
		)
		require.NoError(t, err)

		for step := range s.All() {
			require.Equal(t, a.Total(), step.A.Total(), "%s step %d", mode, step.Index)
			require.Equal(t, b.Total(), step.B.Total(), "%s step %d", mode, step.Index)
			for i := 0; i < n; i++ {
				require.GreaterOrEqual(t, step.A[i], int64(0))
				require.GreaterOrEqual(t, step.B[i], int64(0))
			}
			require.GreaterOrEqual(t, step.Energy, 0.0)
			require.LessOrEqual(t, step.Energy, 1.0)
		}
	}
}

// TestDirectionFollowsTarget: below target the reported energy never falls,
// at or above target it never rises.
func TestDirectionFollowsTarget(t *testing.T) {
	a := energy.Population{10, 10, 10, 0, 0, 0}
	b := energy.Population{0, 0, 0, 10, 10, 10}

	up, err := simulation.New(b, a, pathDense(t, 6), strict, simulation.WithSteps(200), simulation.WithSeed(1))
	require.NoError(t, err)
	prev, err := up.InitialEnergy()
	require.NoError(t, err)
	for step := range up.All() {
		require.GreaterOrEqual(t, step.Energy, prev)
		prev = step.Energy
	}

	down, err := simulation.New(a, b, pathDense(t, 6), strict, simulation.WithSteps(200), simulation.WithSeed(1),
		simulation.WithTargetEnergy(0))
	require.NoError(t, err)
	start, err := down.InitialEnergy()
	require.NoError(t, err)
	prev = start
	for step := range down.All() {
		require.LessOrEqual(t, step.Energy, prev)
		prev = step.Energy
	}
	require.Less(t, prev, start)
}

// TestSetTargetThenStep guards that the setter and the step logic share one
// target: after SetTarget(0) a climbing chain starts descending.
func TestSetTargetThenStep(t *testing.T) {
	a := energy.Population{10, 10, 10, 0, 0, 0}
	b := energy.Population{0, 0, 0, 10, 10, 10}
	s, err := simulation.New(a, b, pathDense(t, 6), strict, simulation.WithSteps(300), simulation.WithSeed(9))
	require.NoError(t, err)
	require.Equal(t, 1.0, s.Target())

	s.SetTarget(0)
	require.Equal(t, 0.0, s.Target())

	start, err := s.InitialEnergy()
	require.NoError(t, err)
	st := s.Start()
	prev := start
	for {
		next, step, out, err := s.Advance(st)
		require.NoError(t, err)
		if out == simulation.Terminated {
			break
		}
		require.LessOrEqual(t, step.Energy, prev, "step %d climbed after SetTarget(0)", step.Index)
		prev = step.Energy
		st = next
	}
	require.Less(t, prev, start)
}

// TestSetTargetMidRun: a chain climbs toward the default target, then
// SetTarget(0) between two Advance calls turns every later step downhill.
// Moves keep each node's a+b total, so xy stays positive and the climb never
// reaches 1.
func TestSetTargetMidRun(t *testing.T) {
	a := energy.Population{10, 0, 10, 0, 10, 0}
	b := energy.Population{0, 10, 0, 10, 0, 10}
	const climb = 150
	s, err := simulation.New(a, b, pathDense(t, 6), strict, simulation.WithSteps(2*climb+150), simulation.WithSeed(4))
	require.NoError(t, err)

	start, err := s.InitialEnergy()
	require.NoError(t, err)
	require.Less(t, start, s.Target())

	st := s.Start()
	prev := start
	for i := 0; i < climb; i++ {
		next, step, out, err := s.Advance(st)
		require.NoError(t, err)
		require.Equal(t, simulation.Running, out)
		require.GreaterOrEqual(t, step.Energy, prev, "step %d fell below target", step.Index)
		prev = step.Energy
		st = next
	}
	peak := prev
	require.Greater(t, peak, start)
	require.Less(t, peak, 1.0)

	s.SetTarget(0)
	for {
		next, step, out, err := s.Advance(st)
		require.NoError(t, err)
		if out == simulation.Terminated {
			break
		}
		require.Greater(t, step.Index, climb)
		require.LessOrEqual(t, step.Energy, prev, "step %d climbed after SetTarget(0)", step.Index)
		prev = step.Energy
		st = next
	}
	require.Less(t, prev, peak)
	require.Equal(t, 2*climb+150, st.Counter())
}

func TestAdvanceStateMachine(t *testing.T) {
	s, err := simulation.New(energy.Population{4, 0}, energy.Population{0, 4}, k2(t), simulation.WithSteps(2))
	require.NoError(t, err)

	st := s.Start()
	require.Zero(t, st.Counter())

	st, step, out, err := s.Advance(st)
	require.NoError(t, err)
	require.Equal(t, simulation.Running, out)
	require.Equal(t, 1, step.Index)
	require.Equal(t, 1, st.Counter())

	st, _, out, err = s.Advance(st)
	require.NoError(t, err)
	require.Equal(t, simulation.Running, out)

	for i := 0; i < 3; i++ {
		var again simulation.State
		again, step, out, err = s.Advance(st)
		require.NoError(t, err)
		require.Equal(t, simulation.Terminated, out)
		require.Equal(t, "terminated", out.String())
		require.Zero(t, step.Index)
		require.Equal(t, st.Counter(), again.Counter())
	}

	_, _, _, err = s.Advance(simulation.State{})
	require.ErrorIs(t, err, simulation.ErrLengthMismatch)
}

// TestAdvanceDoesNotMutateState checks States behave as values.
func TestAdvanceDoesNotMutateState(t *testing.T) {
	s, err := simulation.New(energy.Population{6, 2, 0}, energy.Population{0, 3, 5}, pathDense(t, 3),
		simulation.WithTemperature(0), simulation.WithSteps(10))
	require.NoError(t, err)

	st := s.Start()
	before := st.A()
	for i := 0; i < 10; i++ {
		_, _, _, err = s.Advance(st)
		require.NoError(t, err)
	}
	require.Equal(t, before, st.A())
	require.Zero(t, st.Counter())
}

func TestLenIdempotent(t *testing.T) {
	s, err := simulation.New(energy.Population{1, 2}, energy.Population{2, 1}, k2(t), simulation.WithSteps(37))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.Equal(t, 37, s.Len())
	}
	for range s.All() {
		require.Equal(t, 37, s.Len())
	}
	require.Equal(t, 37, s.Len())
}

// TestRestartFromOriginal checks every All starts from the construction vectors.
func TestRestartFromOriginal(t *testing.T) {
	a := energy.Population{9, 0, 3}
	b := energy.Population{0, 9, 3}
	s, err := simulation.New(a, b, pathDense(t, 3), simulation.WithTemperature(0), simulation.WithSteps(25))
	require.NoError(t, err)

	for run := 0; run < 3; run++ {
		var first *simulation.Step
		count := 0
		for step := range s.All() {
			if first == nil {
				st := step
				first = &st
			}
			count++
		}
		require.Equal(t, 25, count)
		require.NotNil(t, first)

		// temperature 0 accepts everything, so step 1 is the original plus one move.
		m := first.Move
		wantA, wantB := a.Clone(), b.Clone()
		wantA[m.From] -= m.Count
		wantA[m.To] += m.Count
		wantB[m.From] += m.Count
		wantB[m.To] -= m.Count
		require.Equal(t, wantA, first.A, "run %d", run)
		require.Equal(t, wantB, first.B, "run %d", run)
	}
}

// TestNoAliasing: neither caller vectors nor yielded vectors reach the chain.
func TestNoAliasing(t *testing.T) {
	a := energy.Population{5, 5, 0}
	b := energy.Population{0, 5, 5}
	s, err := simulation.New(a, b, pathDense(t, 3), simulation.WithTemperature(0), simulation.WithSteps(40))
	require.NoError(t, err)

	a[0], b[2] = 1000, 1000
	require.Equal(t, energy.Population{5, 5, 0}, s.Start().A())

	for step := range s.All() {
		require.Equal(t, int64(10), step.A.Total())
		require.Equal(t, int64(10), step.B.Total())
		step.A[0] += 100
		step.B[1] = -7
	}

	st := s.Start()
	got := st.A()
	got[1] = 42
	require.Equal(t, energy.Population{5, 5, 0}, st.A())
}

func TestAllStopsEarly(t *testing.T) {
	s, err := simulation.New(energy.Population{3, 3}, energy.Population{3, 3}, k2(t), simulation.WithSteps(100))
	require.NoError(t, err)

	n := 0
	for range s.All() {
		n++
		if n == 7 {
			break
		}
	}
	require.Equal(t, 7, n)
}

func TestZeroSteps(t *testing.T) {
	s, err := simulation.New(energy.Population{3, 0}, energy.Population{0, 3}, k2(t), simulation.WithSteps(0))
	require.NoError(t, err)

	for range s.All() {
		t.Fatal("zero budget must yield nothing")
	}

	last, err := s.Final(context.Background())
	require.NoError(t, err)
	require.Zero(t, last.Index)
	require.Equal(t, energy.Population{3, 0}, last.A)
	require.InDelta(t, 0.5, last.Energy, 1e-12)
}

func TestRun(t *testing.T) {
	s, err := simulation.New(energy.Population{8, 2, 0}, energy.Population{0, 2, 8}, pathDense(t, 3), simulation.WithSteps(30))
	require.NoError(t, err)

	var seen int
	require.NoError(t, s.Run(context.Background(), func(st simulation.Step) error {
		seen++
		return nil
	}))
	require.Equal(t, 30, seen)

	require.NoError(t, s.Run(context.Background(), nil))

	boom := errors.New("boom")
	seen = 0
	err = s.Run(context.Background(), func(st simulation.Step) error {
		seen++
		if seen == 3 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, seen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Run(ctx, func(simulation.Step) error {
		t.Fatal("cancelled run must not step")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunCancelMidway(t *testing.T) {
	s, err := simulation.New(energy.Population{8, 2, 0}, energy.Population{0, 2, 8}, pathDense(t, 3), simulation.WithSteps(1000))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var seen int
	err = s.Run(ctx, func(simulation.Step) error {
		seen++
		if seen == 10 {
			cancel()
		}
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 10, seen)
}

func TestFinal(t *testing.T) {
	s, err := simulation.New(energy.Population{8, 2, 0}, energy.Population{0, 2, 8}, pathDense(t, 3), simulation.WithSteps(15))
	require.NoError(t, err)

	last, err := s.Final(context.Background())
	require.NoError(t, err)
	require.Equal(t, 15, last.Index)
	require.Equal(t, int64(10), last.A.Total())
}

func TestHook(t *testing.T) {
	var indices []int
	s, err := simulation.New(energy.Population{2, 2}, energy.Population{2, 2}, k2(t),
		simulation.WithSteps(5),
		simulation.WithHook(func(st simulation.Step) { indices = append(indices, st.Index) }),
	)
	require.NoError(t, err)

	for range s.All() {
	}
	require.Equal(t, []int{1, 2, 3, 4, 5}, indices)
}

func TestSeedReproducible(t *testing.T) {
	run := func() []simulation.Step {
		s, err := simulation.New(energy.Population{8, 2, 0, 4}, energy.Population{0, 2, 8, 1}, pathDense(t, 4),
			simulation.WithSeed(77), simulation.WithTemperature(3), simulation.WithSteps(40))
		require.NoError(t, err)
		var out []simulation.Step
		for st := range s.All() {
			out = append(out, st)
		}
		return out
	}
	require.Equal(t, run(), run())
}

// TestIndependentChainsConcurrently shares one adjacency across goroutines.
func TestIndependentChainsConcurrently(t *testing.T) {
	adj := pathDense(t, 8)
	a := energy.Population{5, 5, 5, 5, 0, 0, 0, 0}
	b := energy.Population{0, 0, 0, 0, 5, 5, 5, 5}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			s, err := simulation.New(a, b, adj, simulation.WithSeed(seed), simulation.WithSteps(100))
			if !assert.NoError(t, err) {
				return
			}
			for st := range s.All() {
				assert.Equal(t, int64(20), st.A.Total())
			}
		}(int64(w + 1))
	}
	wg.Wait()
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { simulation.WithTemperature(-1) })
	require.Panics(t, func() { simulation.WithTemperature(math.NaN()) })
	require.Panics(t, func() { simulation.WithTemperature(math.Inf(1)) })
	require.Panics(t, func() { simulation.WithTargetEnergy(math.NaN()) })
	require.Panics(t, func() { simulation.WithSteps(-3) })
	require.Panics(t, func() { simulation.WithRand(nil) })
	require.Panics(t, func() { simulation.WithSampling(simulation.Sampling(9)) })
	require.Panics(t, func() { simulation.WithLogger(nil) })
	require.NotPanics(t, func() { simulation.WithTargetEnergy(2) })
}
