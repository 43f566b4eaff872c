package testbed

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecSpawner_ExitCodes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantOut  string
	}{
		{"success", `echo "out $1"; echo "err" 1>&2`, 0, "out one\nerr\n"},
		{"failure", `exit 7`, 7, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, filepath.Join(dir, tt.name+".sh"), tt.body)
			var out bytes.Buffer

			code, err := ExecSpawner{}.Spawn(context.Background(), Command{
				Args:   []string{script, "one"},
				Dir:    dir,
				Output: &out,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestExecSpawner_UsesEnvironmentPath(t *testing.T) {
	binDir := filepath.Join(t.TempDir(), "bin")
	writeScript(t, filepath.Join(binDir, "probe"), `echo "$PROBE_VALUE"`)

	var out bytes.Buffer
	code, err := ExecSpawner{}.Spawn(context.Background(), Command{
		Args:   []string{"probe"},
		Env:    []string{"PATH=" + binDir, "PROBE_VALUE=found"},
		Output: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "found\n", out.String())
}

func TestExecSpawner_NotFound(t *testing.T) {
	_, err := ExecSpawner{}.Spawn(context.Background(), Command{
		Args: []string{"definitely-not-a-real-tool"},
		Env:  []string{"PATH=" + t.TempDir()},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestExecSpawner_EmptyCommand(t *testing.T) {
	_, err := ExecSpawner{}.Spawn(context.Background(), Command{})
	assert.Error(t, err)
}

func TestExecSpawner_Cancelled(t *testing.T) {
	script := writeScript(t, filepath.Join(t.TempDir(), "slow.sh"), `sleep 5`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecSpawner{}.Spawn(ctx, Command{Args: []string{script}})
	assert.Error(t, err)
}

func TestLookPathIn(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeScript(t, filepath.Join(second, "tool"), "exit 0")
	writeFile(t, filepath.Join(first, "tool"), "not executable")

	got, err := lookPathIn("tool", first+":"+second)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "tool"), got)

	_, err = lookPathIn("tool", first)
	assert.Error(t, err)
}

func TestLookupEnv(t *testing.T) {
	v, ok := lookupEnv([]string{"PATH=/a", "X=1", "PATH=/b"}, "PATH")
	assert.True(t, ok)
	assert.Equal(t, "/b", v)

	_, ok = lookupEnv([]string{"X=1"}, "PATH")
	assert.False(t, ok)
}
