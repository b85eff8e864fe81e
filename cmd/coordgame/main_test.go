package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "coordgame version "+version)
}

func TestDiameterCmd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "path.txt", "0 1\n1 2\n2 3\n")

	out, err := run(t, "diameter", path)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	_, err = run(t, "diameter", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestPipelineCmds(t *testing.T) {
	dir := t.TempDir()
	graph := writeFile(t, dir, "cycle.txt", "0 1\n1 2\n2 3\n3 0\n")
	cfg := writeFile(t, dir, "coordgame.yaml", `
experiment:
  bonuses: [0.2]
  localities: [1, -1]
sampling:
  instances: 1
  solve_scenarios: 3
  eval_scenarios: 2
logging:
  level: error
`)
	db := filepath.Join(dir, "coordgame.db")
	global := []string{"--config", cfg, "--store", db, "--workers", "2"}
	cmd := func(args ...string) string {
		t.Helper()
		out, err := run(t, append(args, global...)...)
		require.NoError(t, err, "coordgame %s", strings.Join(args, " "))
		return out
	}

	assert.Contains(t, cmd("import-graph", graph, "--size", "4"), "diameter 2")
	assert.Equal(t, "0 1\n0 3\n1 2\n2 3\n", cmd("export-graph", "--size", "4"))
	_, err := run(t, append([]string{"export-graph", "--size", "9"}, global...)...)
	require.Error(t, err)
	assert.Contains(t, cmd("sample", "--size", "4"), "1 instances, 3 solve scenarios, 2 eval scenarios")
	assert.Contains(t, cmd("solve", "--size", "4"), "solved 2 configurations")
	assert.Contains(t, cmd("evaluate", "--size", "4"), "evaluated 1 instances, 4 payoff rows")

	csv := cmd("export", "--size", "4")
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "c,L,instance,realization,payoff", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0.2,1,1,0,"), lines[1])

	out := filepath.Join(dir, "payoffs.csv")
	cmd("export", "--size", "4", "--out", out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))

	// single configuration already stored
	_, err = run(t, append([]string{"solve", "--size", "4", "--c", "0.2", "--locality", "full"}, global...)...)
	require.Error(t, err)
	_, err = run(t, append([]string{"solve", "--size", "4", "--c", "0.2", "--locality", "wide"}, global...)...)
	require.Error(t, err)
	assert.Contains(t, cmd("solve", "--size", "4", "--c", "0.3", "--locality", "0"), "c=0.300 L=0")
}

func TestMissingSizeFlag(t *testing.T) {
	_, err := run(t, "sample", "--store", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
}
