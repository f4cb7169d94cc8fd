// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/katalvlaran/capy/energy"
	"github.com/katalvlaran/capy/internal/config"
	"github.com/katalvlaran/capy/internal/logging"
	"github.com/katalvlaran/capy/simulation"
	"github.com/spf13/cobra"
)

// runSummary is the JSON shape of `capysim run`.
type runSummary struct {
	RunID         string            `json:"run_id"`
	Nodes         int               `json:"nodes"`
	Budget        int               `json:"budget"`
	Steps         int               `json:"steps"`
	Accepted      int               `json:"accepted"`
	Moved         int64             `json:"moved"`
	Target        float64           `json:"target"`
	InitialEnergy float64           `json:"initial_energy"`
	FinalEnergy   float64           `json:"final_energy"`
	FinalA        energy.Population `json:"final_a"`
	FinalB        energy.Population `json:"final_b"`
	Interrupted   bool              `json:"interrupted"`
	Elapsed       string            `json:"elapsed"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the Metropolis-Hastings simulation",
		Long: `Run the configured simulation and print a summary.

Flags override the run file. Interrupting (Ctrl-C) stops between steps and
still prints the summary of the steps completed so far.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runSimulation(ctx, cmd, cfg)
		},
	}

	cmd.Flags().Int("steps", 0, "Step budget")
	cmd.Flags().Float64("temperature", 0, "Acceptance temperature")
	cmd.Flags().Float64("target", 0, "Target half-edge CAPY score")
	cmd.Flags().Int64("seed", 0, "Random seed")
	cmd.Flags().String("sampling", "", "Proposal sampling: uniform or legacy")
	cmd.Flags().Bool("sparse", false, "Use the sparse (CSR) adjacency")
	cmd.Flags().Int("every", 0, "Print progress every N steps (0 = summary only)")
	cmd.Flags().String("trace-file", "", "Write one JSON record per step to this file")

	return cmd
}

// applyRunFlags copies explicitly set flags over the loaded config.
func applyRunFlags(cmd *cobra.Command, cfg *config.RunConfig) {
	f := cmd.Flags()
	if f.Changed("steps") {
		cfg.Simulation.Steps, _ = f.GetInt("steps")
	}
	if f.Changed("temperature") {
		cfg.Simulation.Temperature, _ = f.GetFloat64("temperature")
	}
	if f.Changed("target") {
		cfg.Simulation.Target, _ = f.GetFloat64("target")
	}
	if f.Changed("seed") {
		cfg.Simulation.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("sampling") {
		cfg.Simulation.Sampling, _ = f.GetString("sampling")
	}
	if f.Changed("sparse") {
		cfg.Graph.Representation = config.ReprDense
		if sparse, _ := f.GetBool("sparse"); sparse {
			cfg.Graph.Representation = config.ReprSparse
		}
	}
	if f.Changed("every") {
		cfg.Output.Every, _ = f.GetInt("every")
	}
	if f.Changed("trace-file") {
		cfg.Output.TraceFile, _ = f.GetString("trace-file")
	}
}

func runSimulation(ctx context.Context, cmd *cobra.Command, cfg *config.RunConfig) error {
	runID := uuid.New().String()
	logger := newLogger(cmd, cfg).With("run", runID)

	adj, err := cfg.BuildAdjacency()
	if err != nil {
		return err
	}
	a, b := cfg.Populations()
	opts := append(cfg.SimulationOptions(), simulation.WithLogger(logger))
	sim, err := simulation.New(a, b, adj, opts...)
	if err != nil {
		return err
	}
	initial, err := sim.InitialEnergy()
	if err != nil {
		return err
	}

	trace, err := logging.NewTraceLogger(cfg.Output.TraceFile)
	if err != nil {
		return fmt.Errorf("opening trace file: %w", err)
	}
	defer trace.Close()

	out := cmd.OutOrStdout()
	text := cfg.Output.Format == config.FormatText
	sum := runSummary{
		RunID:         runID,
		Nodes:         sim.Nodes(),
		Budget:        sim.Len(),
		Target:        sim.Target(),
		InitialEnergy: initial,
		FinalEnergy:   initial,
		FinalA:        a,
		FinalB:        b,
	}

	logger.Info("run started",
		"nodes", sum.Nodes,
		"steps", sum.Budget,
		"target", sum.Target,
		"initial_energy", initial,
	)
	start := time.Now()

	err = sim.Run(ctx, func(st simulation.Step) error {
		sum.Steps = st.Index
		sum.FinalEnergy = st.Energy
		sum.FinalA, sum.FinalB = st.A, st.B
		if st.Accepted {
			sum.Accepted++
			sum.Moved += st.Move.Count
		}
		trace.Log(map[string]any{
			"run":       runID,
			"step":      st.Index,
			"from":      st.Move.From,
			"to":        st.Move.To,
			"count":     st.Move.Count,
			"energy":    st.Energy,
			"candidate": st.Candidate,
			"accepted":  st.Accepted,
		})
		if text && cfg.Output.Every > 0 && st.Index%cfg.Output.Every == 0 {
			fmt.Fprintf(out, "step %s  energy %.6f  accepted %s\n",
				humanize.Comma(int64(st.Index)), st.Energy, humanize.Comma(int64(sum.Accepted)))
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		sum.Interrupted = true
		logger.Info("run interrupted", "steps", sum.Steps)
	} else if err != nil {
		return err
	}

	elapsed := time.Since(start)
	sum.Elapsed = elapsed.String()
	logger.Info("run finished",
		"steps", sum.Steps,
		"accepted", sum.Accepted,
		"final_energy", sum.FinalEnergy,
		"elapsed", elapsed,
	)

	if !text {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	return printSummary(out, sum)
}

func printSummary(w io.Writer, s runSummary) error {
	status := "completed"
	if s.Interrupted {
		status = "interrupted"
	}
	_, err := fmt.Fprintf(w, `run %s %s
  nodes:     %s
  steps:     %s of %s (%s accepted)
  moved:     %s members
  energy:    %.6f -> %.6f (target %g)
`,
		s.RunID, status,
		humanize.Comma(int64(s.Nodes)),
		humanize.Comma(int64(s.Steps)), humanize.Comma(int64(s.Budget)), humanize.Comma(int64(s.Accepted)),
		humanize.Comma(s.Moved),
		s.InitialEnergy, s.FinalEnergy, s.Target,
	)

	return err
}
