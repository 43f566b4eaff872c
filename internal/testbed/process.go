package testbed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Command describes one child process launch.
type Command struct {
	// Args is the full command line, Args[0] being the executable.
	Args []string
	// Dir is the working directory of the child.
	Dir string
	// Env is the child environment. Nil inherits the harness environment.
	Env []string
	// Output receives both stdout and stderr.
	Output io.Writer
}

// Spawner launches a command and blocks until it exits.
type Spawner interface {
	// Spawn returns the exit code of the child. A non-nil error means the
	// process could not be launched or was torn down by ctx.
	Spawn(ctx context.Context, c Command) (int, error)
}

// ExecSpawner is the Spawner backed by os/exec.
type ExecSpawner struct{}

var _ Spawner = ExecSpawner{}

// Spawn implements Spawner.
func (ExecSpawner) Spawn(ctx context.Context, c Command) (int, error) {
	if len(c.Args) == 0 {
		return -1, errors.New("empty command line")
	}

	path, err := resolveExecutable(c.Args[0], c.Env)
	if err != nil {
		return -1, err
	}

	cmd := exec.CommandContext(ctx, path, c.Args[1:]...)
	cmd.Args[0] = c.Args[0]
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdout = c.Output
	cmd.Stderr = c.Output

	if err := cmd.Start(); err != nil {
		return -1, err
	}

	err = cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("process %s interrupted: %w", c.Args[0], ctxErr)
	}
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// hasDirComponent reports whether name names a path rather than a bare
// command to be searched for in PATH.
func hasDirComponent(name string) bool {
	return strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator)
}

// resolveExecutable finds name in the PATH of env when it has no directory
// component. The result is always absolute so os/exec does not search again.
func resolveExecutable(name string, env []string) (string, error) {
	if hasDirComponent(name) {
		return filepath.Abs(name)
	}
	pathList, ok := lookupEnv(env, "PATH")
	if !ok {
		pathList = os.Getenv("PATH")
	}
	return lookPathIn(name, pathList)
}

// lookupEnv returns the last value of key in env. A nil env means the
// harness environment.
func lookupEnv(env []string, key string) (string, bool) {
	if env == nil {
		return os.LookupEnv(key)
	}
	var (
		value string
		found bool
	)
	prefix := key + "="
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			value, found = kv[len(prefix):], true
		}
	}
	return value, found
}

func lookPathIn(name, pathList string) (string, error) {
	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return filepath.Abs(candidate)
		}
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
