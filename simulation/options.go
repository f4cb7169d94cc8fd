// SPDX-License-Identifier: MIT

package simulation

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
)

// Defaults.
const (
	// DefaultTemperature is 2^20: unfavorable moves are accepted with
	// vanishing probability.
	DefaultTemperature = float64(1 << 20)

	// DefaultTargetEnergy is the maximum score: by default the process
	// segregates the two groups.
	DefaultTargetEnergy = 1.0

	// DefaultSteps is the step budget.
	DefaultSteps = 100
)

const (
	panicTemperature = "simulation: WithTemperature: temperature must be finite and non-negative"
	panicTarget      = "simulation: WithTargetEnergy: target must not be NaN"
	panicSteps       = "simulation: WithSteps: steps must be non-negative"
	panicRand        = "simulation: WithRand: rng must not be nil"
	panicSampling    = "simulation: WithSampling: unknown sampling mode"
	panicLogger      = "simulation: WithLogger: logger must not be nil"
)

// Sampling selects the index and swap-count bounds used by proposals.
type Sampling int

const (
	// SamplingUniform draws nodes from [0,N) and the swap count from [1,max].
	SamplingUniform Sampling = iota

	// SamplingLegacy draws nodes from [0,N-1) and the swap count from [1,max),
	// and proposes nothing when max ≤ 1.
	SamplingLegacy
)

// String returns "uniform" or "legacy".
func (m Sampling) String() string {
	switch m {
	case SamplingUniform:
		return "uniform"
	case SamplingLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Hook observes every completed step, accepted or not.
type Hook func(Step)

// Options holds the effective configuration of a Simulation.
type Options struct {
	temperature float64
	target      float64
	steps       int
	seed        int64
	rng         *rand.Rand
	sampling    Sampling
	logger      *slog.Logger
	hook        Hook
}

// Option configures a Simulation. Constructors panic on nonsensical values.
type Option func(*Options)

// WithTemperature sets the acceptance temperature T ≥ 0.
// T = 0 accepts every move; large T only accepts favorable ones.
func WithTemperature(t float64) Option {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		panic(panicTemperature)
	}

	return func(o *Options) { o.temperature = t }
}

// WithTargetEnergy sets the initial target. Values outside [0,1] are allowed:
// a target above 1 always climbs and one below 0 always descends.
func WithTargetEnergy(t float64) Option {
	if math.IsNaN(t) {
		panic(panicTarget)
	}

	return func(o *Options) { o.target = t }
}

// WithSteps sets the step budget. Zero yields an empty sequence.
func WithSteps(n int) Option {
	if n < 0 {
		panic(panicSteps)
	}

	return func(o *Options) { o.steps = n }
}

// WithSeed seeds a private *rand.Rand. Ignored when WithRand is also given.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithRand hands the Simulation an existing source. The Simulation becomes
// its only user; do not draw from it elsewhere while a run is in progress.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic(panicRand)
	}

	return func(o *Options) { o.rng = rng }
}

// WithSampling selects the proposal bounds.
func WithSampling(m Sampling) Option {
	if m != SamplingUniform && m != SamplingLegacy {
		panic(panicSampling)
	}

	return func(o *Options) { o.sampling = m }
}

// WithLogger attaches a logger. Construction is logged at Debug, every step at
// logging.LevelTrace.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLogger)
	}

	return func(o *Options) { o.logger = l }
}

// WithHook registers a callback run after every step.
func WithHook(h Hook) Option {
	return func(o *Options) { o.hook = h }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		temperature: DefaultTemperature,
		target:      DefaultTargetEnergy,
		steps:       DefaultSteps,
		sampling:    SamplingUniform,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rngFromSeed(o.seed)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return o
}
