package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Commands are package-level; undo flags set by earlier tests.
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", filepath.Join("testdata", "pingpong.yaml"), "--duration", "1")
	require.NoError(t, err)

	var frames []map[string]any
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		frames = append(frames, m)
	}
	require.Len(t, frames, 50)
	assert.Equal(t, 1.0, frames[0]["tick"])
	assert.InDelta(t, 1.0, frames[49]["time"], 1e-9)
}

func TestRunToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.jsonl")
	out, err := execute(t, "run", filepath.Join("testdata", "pingpong.yaml"), "--dt", "0.5", "--duration", "5", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, bytes.Count(data, []byte("\n")))
}

func TestRunMany(t *testing.T) {
	out, err := execute(t, "run", "-p", "2", "--duration", "1",
		filepath.Join("testdata", "pingpong.yaml"),
		filepath.Join("testdata", "loop.yaml"))
	require.NoError(t, err)

	counts := map[string]int{}
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		name, _ := m["scenario"].(string)
		counts[name]++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, map[string]int{"pingpong": 50, "loop": 50}, counts)
}

func TestRunInvalid(t *testing.T) {
	_, err := execute(t, "run", filepath.Join("testdata", "invalid.yaml"))
	assert.Error(t, err)

	_, err = execute(t, "run", filepath.Join("testdata", "pingpong.yaml"), "--dt", "-1")
	assert.Error(t, err)

	_, err = execute(t, "run")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", filepath.Join("testdata", "pingpong.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "ok (pingpong")
	assert.Contains(t, out, "500 ticks")

	out, err = execute(t, "validate", filepath.Join("testdata", "pingpong.yaml"), filepath.Join("testdata", "invalid.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 scenarios invalid")
	assert.Contains(t, out, "invalid.yaml: ")
	assert.Contains(t, out, "at least 2 points")
}

func TestPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.png")
	_, err := execute(t, "plot", filepath.Join("testdata", "pingpong.yaml"), "-o", path, "--duration", "4")
	require.NoError(t, err)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "splinewalk version dev\n", out)
}
