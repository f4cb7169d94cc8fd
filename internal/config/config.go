// SPDX-License-Identifier: MIT

// Package config loads capysim run files.
// Order: defaults -> YAML file -> CAPY_* environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/capy/builder"
	"github.com/katalvlaran/capy/core"
	"github.com/katalvlaran/capy/energy"
	"github.com/katalvlaran/capy/internal/logging"
	"github.com/katalvlaran/capy/matrix"
	"github.com/katalvlaran/capy/simulation"
	"gopkg.in/yaml.v3"
)

// Graph kinds.
const (
	KindPath     = "path"
	KindCycle    = "cycle"
	KindGrid     = "grid"
	KindComplete = "complete"
	KindRandom   = "random"
	KindEdges    = "edges"
)

// Representations.
const (
	ReprDense  = "dense"
	ReprSparse = "sparse"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// RunConfig is one capysim run.
type RunConfig struct {
	// Graph describes the adjacency.
	Graph GraphConfig `json:"graph" yaml:"graph"`

	// Population holds the two initial vectors, indexed like the graph nodes.
	Population PopulationConfig `json:"population" yaml:"population"`

	// Simulation holds the Metropolis-Hastings parameters.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Output controls how results are written.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging controls operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// GraphConfig selects a generated graph or an explicit edge list.
type GraphConfig struct {
	// Kind is one of path, cycle, grid, complete, random, edges.
	Kind string `json:"kind" yaml:"kind"`

	// Nodes is the node count for every kind except grid.
	Nodes int `json:"nodes,omitempty" yaml:"nodes,omitempty"`

	// Rows and Cols size a grid; node index is row*cols + col.
	Rows int `json:"rows,omitempty" yaml:"rows,omitempty"`
	Cols int `json:"cols,omitempty" yaml:"cols,omitempty"`

	// Probability is the edge probability of a random graph.
	Probability float64 `json:"probability,omitempty" yaml:"probability,omitempty"`

	// Seed drives random graphs and random weights. It is independent of the
	// simulation seed.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// WeightMin and WeightMax draw integer edge weights uniformly from
	// [WeightMin, WeightMax] for generated graphs. WeightMax == 0 means unit weights.
	WeightMin int64 `json:"weight_min,omitempty" yaml:"weight_min,omitempty"`
	WeightMax int64 `json:"weight_max,omitempty" yaml:"weight_max,omitempty"`

	// Edges is the explicit edge list for kind "edges".
	Edges []EdgeConfig `json:"edges,omitempty" yaml:"edges,omitempty"`

	// Representation is "dense" (default) or "sparse".
	Representation string `json:"representation" yaml:"representation"`

	// Binary counts each neighbor pair once with weight 1, ignoring weights
	// and parallel edges.
	Binary bool `json:"binary,omitempty" yaml:"binary,omitempty"`

	// Loops keeps self-loop edges of an edge list on the diagonal.
	Loops bool `json:"loops,omitempty" yaml:"loops,omitempty"`
}

// EdgeConfig is one undirected edge; W defaults to 1 when omitted.
type EdgeConfig struct {
	U int      `json:"u" yaml:"u"`
	V int      `json:"v" yaml:"v"`
	W *float64 `json:"w,omitempty" yaml:"w,omitempty"`
}

// PopulationConfig holds the initial group vectors.
type PopulationConfig struct {
	A []int64 `json:"a" yaml:"a"`
	B []int64 `json:"b" yaml:"b"`
}

// SimulationConfig mirrors the simulation options.
type SimulationConfig struct {
	Steps       int     `json:"steps" yaml:"steps"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Target      float64 `json:"target" yaml:"target"`
	Seed        int64   `json:"seed" yaml:"seed"`

	// Sampling is "uniform" (default) or "legacy".
	Sampling string `json:"sampling" yaml:"sampling"`
}

// OutputConfig controls result output.
type OutputConfig struct {
	// Format is "text" (default) or "json".
	Format string `json:"format" yaml:"format"`

	// Every prints one line per Every steps; 0 prints only the summary.
	Every int `json:"every,omitempty" yaml:"every,omitempty"`

	// TraceFile, when set, receives one JSON record per step.
	TraceFile string `json:"trace_file,omitempty" yaml:"trace_file,omitempty"`
}

// LoggingConfig configures capysim logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" logs every simulation step.
	Level string `json:"level" yaml:"level"`
}

// Default returns a RunConfig with the simulation defaults and no populations.
func Default() *RunConfig {
	return &RunConfig{
		Graph: GraphConfig{
			Kind:           KindPath,
			Nodes:          2,
			Representation: ReprDense,
		},
		Simulation: SimulationConfig{
			Steps:       simulation.DefaultSteps,
			Temperature: simulation.DefaultTemperature,
			Target:      simulation.DefaultTargetEnergy,
			Seed:        1,
			Sampling:    simulation.SamplingUniform.String(),
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path (when non-empty) over the defaults and applies environment
// overrides.
func Load(path string) (*RunConfig, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads a YAML run file over the defaults.
func LoadFromFile(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// NodeCount returns the number of nodes the graph section describes.
func (c *RunConfig) NodeCount() int {
	if c.Graph.Kind == KindGrid {
		return c.Graph.Rows * c.Graph.Cols
	}

	return c.Graph.Nodes
}

// Validate checks that the configuration is complete and consistent.
func (c *RunConfig) Validate() error {
	if err := c.Graph.validate(); err != nil {
		return err
	}

	n := c.NodeCount()
	if len(c.Population.A) != n || len(c.Population.B) != n {
		return fmt.Errorf("population vectors have %d and %d entries, graph has %d nodes",
			len(c.Population.A), len(c.Population.B), n)
	}
	for i := 0; i < n; i++ {
		if c.Population.A[i] < 0 || c.Population.B[i] < 0 {
			return fmt.Errorf("population at node %d is negative (%d, %d)", i, c.Population.A[i], c.Population.B[i])
		}
	}

	s := c.Simulation
	if s.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", s.Steps)
	}
	if math.IsNaN(s.Temperature) || math.IsInf(s.Temperature, 0) || s.Temperature < 0 {
		return fmt.Errorf("temperature must be finite and non-negative, got %g", s.Temperature)
	}
	if math.IsNaN(s.Target) {
		return fmt.Errorf("target must be a number")
	}
	if _, err := c.sampling(); err != nil {
		return err
	}

	if c.Output.Format != FormatText && c.Output.Format != FormatJSON {
		return fmt.Errorf("invalid output format: %s (valid: text, json)", c.Output.Format)
	}
	if c.Output.Every < 0 {
		return fmt.Errorf("every must be non-negative, got %d", c.Output.Every)
	}
	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

func (g GraphConfig) validate() error {
	switch g.Kind {
	case KindPath, KindComplete, KindEdges:
		if g.Nodes < 2 {
			return fmt.Errorf("graph %s needs at least 2 nodes, got %d", g.Kind, g.Nodes)
		}
	case KindCycle:
		if g.Nodes < 3 {
			return fmt.Errorf("graph cycle needs at least 3 nodes, got %d", g.Nodes)
		}
	case KindGrid:
		if g.Rows < 1 || g.Cols < 1 || g.Rows*g.Cols < 2 {
			return fmt.Errorf("graph grid needs at least 2 cells, got %dx%d", g.Rows, g.Cols)
		}
	case KindRandom:
		if g.Nodes < 2 {
			return fmt.Errorf("graph random needs at least 2 nodes, got %d", g.Nodes)
		}
		if math.IsNaN(g.Probability) || g.Probability < 0 || g.Probability > 1 {
			return fmt.Errorf("probability must be between 0 and 1, got %g", g.Probability)
		}
	default:
		return fmt.Errorf("invalid graph kind: %s (valid: path, cycle, grid, complete, random, edges)", g.Kind)
	}

	if g.Kind == KindEdges {
		for i, e := range g.Edges {
			if e.U < 0 || e.U >= g.Nodes || e.V < 0 || e.V >= g.Nodes {
				return fmt.Errorf("edge %d (%d,%d) out of range for %d nodes", i, e.U, e.V, g.Nodes)
			}
			if e.W != nil && (*e.W < 0 || math.IsNaN(*e.W) || math.IsInf(*e.W, 0)) {
				return fmt.Errorf("edge %d weight must be finite and non-negative, got %g", i, *e.W)
			}
		}
	} else if g.WeightMax != 0 && (g.WeightMin < 0 || g.WeightMin > g.WeightMax) {
		return fmt.Errorf("weights must satisfy 0 <= weight_min <= weight_max, got [%d, %d]", g.WeightMin, g.WeightMax)
	}

	if g.Representation != ReprDense && g.Representation != ReprSparse {
		return fmt.Errorf("invalid representation: %s (valid: dense, sparse)", g.Representation)
	}

	return nil
}

func (c *RunConfig) sampling() (simulation.Sampling, error) {
	switch strings.ToLower(c.Simulation.Sampling) {
	case "", "uniform":
		return simulation.SamplingUniform, nil
	case "legacy":
		return simulation.SamplingLegacy, nil
	default:
		return 0, fmt.Errorf("invalid sampling: %s (valid: uniform, legacy)", c.Simulation.Sampling)
	}
}

// Populations returns copies of the two initial vectors.
func (c *RunConfig) Populations() (energy.Population, energy.Population) {
	return energy.Population(c.Population.A).Clone(), energy.Population(c.Population.B).Clone()
}

// SimulationOptions translates the simulation section into options.
// Call Validate first; an invalid section makes the option constructors panic.
func (c *RunConfig) SimulationOptions() []simulation.Option {
	mode, _ := c.sampling()

	return []simulation.Option{
		simulation.WithSteps(c.Simulation.Steps),
		simulation.WithTemperature(c.Simulation.Temperature),
		simulation.WithTargetEnergy(c.Simulation.Target),
		simulation.WithSeed(c.Simulation.Seed),
		simulation.WithSampling(mode),
	}
}

// BuildAdjacency materializes the graph section.
//
// Generated kinds go through builder and core, then matrix.NewAdjacencyMatrix;
// builder IDs are zero-padded, so row i is construction index i. An explicit
// edge list goes straight to matrix.DenseFromEdges or matrix.CSRFromEdges.
func (c *RunConfig) BuildAdjacency() (matrix.Adjacency, error) {
	g := c.Graph
	var mopts []matrix.Option
	if g.Representation == ReprSparse {
		mopts = append(mopts, matrix.WithSparse())
	}
	if g.Binary {
		mopts = append(mopts, matrix.WithBinary())
	}
	if g.Loops {
		mopts = append(mopts, matrix.WithLoops())
	}

	if g.Kind == KindEdges {
		edges := make([]matrix.Edge, len(g.Edges))
		for i, e := range g.Edges {
			w := 1.0
			if e.W != nil {
				w = *e.W
			}
			edges[i] = matrix.Edge{U: e.U, V: e.V, W: w}
		}
		if g.Representation == ReprSparse {
			return matrix.CSRFromEdges(g.Nodes, edges, mopts...)
		}
		return matrix.DenseFromEdges(g.Nodes, edges, mopts...)
	}

	var cons builder.Constructor
	switch g.Kind {
	case KindPath:
		cons = builder.Path(g.Nodes)
	case KindCycle:
		cons = builder.Cycle(g.Nodes)
	case KindGrid:
		cons = builder.Grid(g.Rows, g.Cols)
	case KindComplete:
		cons = builder.Complete(g.Nodes)
	case KindRandom:
		cons = builder.RandomSparse(g.Nodes, g.Probability)
	default:
		return nil, fmt.Errorf("invalid graph kind: %s", g.Kind)
	}

	var gopts []core.GraphOption
	bopts := []builder.BuilderOption{builder.WithSeed(g.Seed)}
	if g.WeightMax != 0 {
		gopts = append(gopts, core.WithWeighted())
		bopts = append(bopts, builder.WithWeightFn(builder.UniformWeightFn(g.WeightMin, g.WeightMax)))
	}

	graph, err := builder.BuildGraph(gopts, bopts, cons)
	if err != nil {
		return nil, fmt.Errorf("building %s graph: %w", g.Kind, err)
	}
	am, err := matrix.NewAdjacencyMatrix(graph, mopts...)
	if err != nil {
		return nil, fmt.Errorf("building adjacency: %w", err)
	}

	return am.Mat, nil
}

// applyEnvOverrides applies CAPY_* environment variables. Unparsable
// numeric values are ignored.
func applyEnvOverrides(cfg *RunConfig) {
	if v := os.Getenv("CAPY_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Steps = n
		}
	}
	if v := os.Getenv("CAPY_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.Temperature = f
		}
	}
	if v := os.Getenv("CAPY_TARGET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.Target = f
		}
	}
	if v := os.Getenv("CAPY_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.Seed = n
		}
	}
	if v := os.Getenv("CAPY_SPARSE"); v != "" {
		if v == "true" || v == "1" {
			cfg.Graph.Representation = ReprSparse
		} else {
			cfg.Graph.Representation = ReprDense
		}
	}
	if v := os.Getenv("CAPY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
