// Package capy measures and perturbs how two populations mix over a graph.
//
// Given two per-node population vectors (e.g. partisan vote counts per
// precinct) and the adjacency of the nodes, capy computes the CAPY
// assortativity scores and runs a Metropolis-Hastings process that moves
// members between nodes toward a target score.
//
// The module is organized in small packages:
//
//	core/        — thread-safe undirected weighted Graph (vertices, edges)
//	builder/     — deterministic and seeded graph constructors (path, grid…)
//	matrix/      — Adjacency interface, Dense and CSR storage, validators,
//	               adapters from core.Graph and edge lists
//	energy/      — xᵗ(A+I)y inner product, half-edge and edge CAPY scores
//	simulation/  — the Metropolis-Hastings chain as an explicit state machine
//	cmd/capysim/ — CLI: score a configuration or run a simulation from YAML
//
// Quick ASCII example:
//
//	  A A │ B B
//	  ────┼────
//	  A A │ B B
//
// Two groups on a 2×4 grid with a single seam: xx and yy dominate xy, so the
// half-edge score is high. Mixing the columns lowers it.
//
// Minimal use:
//
//	adj, _ := matrix.CSRFromEdges(n, edges)
//	h, _ := energy.HalfCapy(a, b, adj)
//
//	sim, _ := simulation.New(a, b, adj, simulation.WithTargetEnergy(0.5), simulation.WithSeed(1))
//	for step := range sim.All() {
//		fmt.Println(step.Index, step.Energy)
//	}
package capy
