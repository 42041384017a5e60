package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags undoes what earlier Execute calls left on the shared commands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--fps=-1", "--seed=3", "--chart=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulation Ended")
	assert.Contains(t, out, "**Simulation Results**")
	assert.Contains(t, out, "Escape Time:")
	assert.Contains(t, out, "Farthest: ")
	assert.Contains(t, out, " of 500.00")
	assert.NotContains(t, out, "distance from center per step")
}

func TestRunCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: -1\nseed: 9\nmaxSteps: 3\n"), 0o644))
	_, err := execute(t, "run", path, "--chart=false")
	assert.ErrorContains(t, err, "step limit")
}

func TestRunCommandBadOverride(t *testing.T) {
	_, err := execute(t, "run", "--set", "medium.opacity=-1", "--chart=false")
	assert.ErrorContains(t, err, "opacity")
}

func TestEnsembleCommand(t *testing.T) {
	out, err := execute(t, "ensemble", "--walks=4", "--workers=2", "--seed=1")
	require.NoError(t, err)
	assert.Contains(t, out, "Walks: 4 (completed 4, capped 0)")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "photonwalk version "+Version+"\n", out)
}
