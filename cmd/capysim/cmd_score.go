// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/capy/energy"
	"github.com/katalvlaran/capy/internal/config"
	"github.com/spf13/cobra"
)

// scoreResult is the JSON shape of `capysim score`.
type scoreResult struct {
	Nodes int     `json:"nodes"`
	XX    float64 `json:"xx"`
	XY    float64 `json:"xy"`
	YY    float64 `json:"yy"`
	Half  float64 `json:"half_capy"`
	Edge  float64 `json:"edge_capy"`
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Compute the CAPY scores of the configured populations",
		Long: `Compute xx, xy and yy = xᵗ(A+I)y for the two configured population
vectors and derive the half-edge and edge CAPY scores. No simulation runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			adj, err := cfg.BuildAdjacency()
			if err != nil {
				return err
			}
			a, b := cfg.Populations()
			s, err := energy.Compute(a, b, adj)
			if err != nil {
				return err
			}
			half, err := s.Half()
			if err != nil {
				return err
			}
			edge, err := s.Edge()
			if err != nil {
				return err
			}

			res := scoreResult{Nodes: adj.Rows(), XX: s.XX, XY: s.XY, YY: s.YY, Half: half, Edge: edge}
			out := cmd.OutOrStdout()
			if cfg.Output.Format == config.FormatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Fprintf(out, "nodes:      %d\n", res.Nodes)
			fmt.Fprintf(out, "xx xy yy:   %g %g %g\n", res.XX, res.XY, res.YY)
			fmt.Fprintf(out, "half capy:  %.6f\n", res.Half)
			fmt.Fprintf(out, "edge capy:  %.6f\n", res.Edge)
			return nil
		},
	}
}
