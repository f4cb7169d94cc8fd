// Package builder provides deterministic, functional-options graph
// constructors that produce core.Graph fixtures for scoring and simulation.
//
// The package offers:
//
//   - BuildGraph: the single orchestrator running Constructors in order.
//   - Topologies: Path, Cycle, Grid, Complete, RandomSparse.
//   - Options (BuilderOption):
//     – WithSeed / WithRand:  RNG for stochastic constructors and weights.
//     – WithIDScheme:         custom vertex IDs.
//     – WithWeightFn:         per-edge weight generator (weighted graphs only);
//     UniformWeightFn is a ready-made one.
//
// Guarantees:
//
//   - Default vertex IDs are zero-padded decimals, so the lexicographic order
//     used by matrix adapters equals construction index order.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Structured runtime errors wrapping sentinels (ErrTooFewVertices, ...).
//   - Same inputs, options and seed yield the same graph.
package builder
