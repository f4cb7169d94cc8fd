package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/capy/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const k2Config = `
graph:
  kind: path
  nodes: 2
population:
  a: [10, 0]
  b: [0, 10]
simulation:
  steps: 50
  target: 0.5
  seed: 3
`

const pathConfig = `
graph:
  kind: edges
  nodes: 4
  edges:
    - {u: 0, v: 1}
    - {u: 1, v: 2}
    - {u: 2, v: 3}
population:
  a: [5, 5, 0, 0]
  b: [0, 0, 5, 5]
simulation:
  steps: 40
  temperature: 10
  seed: 8
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "capysim version "+version+"\n", out)

	out, _, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var v map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, version, v["version"])
}

func TestScoreCmd(t *testing.T) {
	path := writeConfig(t, pathConfig)

	out, _, err := execute(t, "score", "--config", path, "--json")
	require.NoError(t, err)
	var res scoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 4, res.Nodes)
	assert.Equal(t, 100.0, res.XX)
	assert.Equal(t, 25.0, res.XY)
	assert.Equal(t, 100.0, res.YY)
	assert.InDelta(t, 0.8, res.Half, 1e-12)
	assert.InDelta(t, 2.0/3.0, res.Edge, 1e-12)

	out, _, err = execute(t, "score", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "half capy:  0.800000")
	assert.Contains(t, out, "edge capy:  0.666667")
}

func TestRunCmdJSON(t *testing.T) {
	out, _, err := execute(t, "run", "--config", writeConfig(t, k2Config), "--json")
	require.NoError(t, err)

	var sum runSummary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, 2, sum.Nodes)
	assert.Equal(t, 50, sum.Budget)
	assert.Equal(t, 50, sum.Steps)
	assert.False(t, sum.Interrupted)
	assert.Equal(t, int64(10), sum.FinalA.Total())
	assert.Equal(t, int64(10), sum.FinalB.Total())
	assert.InDelta(t, 0.5, sum.InitialEnergy, 1e-12)
	assert.InDelta(t, 0.5, sum.FinalEnergy, 1e-12)
}

func TestRunCmdFlagsOverrideFile(t *testing.T) {
	trace := filepath.Join(t.TempDir(), "trace.jsonl")
	out, _, err := execute(t, "run", "-c", writeConfig(t, pathConfig),
		"--json", "--steps", "12", "--sparse", "--sampling", "legacy", "--trace-file", trace)
	require.NoError(t, err)

	var sum runSummary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 12, sum.Budget)
	assert.Equal(t, 12, sum.Steps)

	data, err := os.ReadFile(trace)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 12)
	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, sum.RunID, first["run"])
	assert.Equal(t, float64(1), first["step"])
}

func TestApplyRunFlagsSparse(t *testing.T) {
	cases := []struct {
		name string
		args []string
		from string
		want string
	}{
		{"unset keeps sparse", nil, config.ReprSparse, config.ReprSparse},
		{"unset keeps dense", nil, config.ReprDense, config.ReprDense},
		{"true selects sparse", []string{"--sparse"}, config.ReprDense, config.ReprSparse},
		{"false selects dense", []string{"--sparse=false"}, config.ReprSparse, config.ReprDense},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRunCmd()
			require.NoError(t, cmd.ParseFlags(tc.args))

			cfg := config.Default()
			cfg.Graph.Representation = tc.from
			applyRunFlags(cmd, cfg)
			assert.Equal(t, tc.want, cfg.Graph.Representation)
		})
	}
}

func TestRunCmdText(t *testing.T) {
	out, _, err := execute(t, "run", "-c", writeConfig(t, pathConfig), "--every", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "step 10  energy")
	assert.Contains(t, out, "step 40  energy")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "steps:     40 of 40")
}

func TestRunCmdTraceLogging(t *testing.T) {
	_, stderr, err := execute(t, "run", "-c", writeConfig(t, k2Config), "--steps", "3", "--log-level", "trace")
	require.NoError(t, err)
	assert.Contains(t, stderr, "run started")
	assert.Contains(t, stderr, "level=TRACE")
	assert.Contains(t, stderr, "run finished")
}

func TestRunCmdEnvOverride(t *testing.T) {
	t.Setenv("CAPY_STEPS", "6")
	out, _, err := execute(t, "run", "-c", writeConfig(t, k2Config), "--json")
	require.NoError(t, err)
	var sum runSummary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 6, sum.Steps)
}

func TestRunCmdErrors(t *testing.T) {
	_, _, err := execute(t, "run")
	assert.ErrorContains(t, err, "invalid config")

	_, _, err = execute(t, "run", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	_, _, err = execute(t, "run", "-c", writeConfig(t, k2Config), "--sampling", "legacy")
	assert.ErrorContains(t, err, "too few nodes")

	_, _, err = execute(t, "score", "-c", writeConfig(t, k2Config), "--log-level", "loud")
	assert.ErrorContains(t, err, "log level")
}
