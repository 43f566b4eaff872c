package testbed

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clitestbed/internal/config"
)

// fakeSpawner records commands and answers with canned results.
type fakeSpawner struct {
	mu    sync.Mutex
	calls []Command
	code  int
	err   error
	panic interface{}
}

func (f *fakeSpawner) Spawn(_ context.Context, c Command) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
	if f.panic != nil {
		panic(f.panic)
	}
	return f.code, f.err
}

func (f *fakeSpawner) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Command{}, f.calls...)
}

func testContext(dir string) config.Context {
	return config.NewContext(time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC), dir)
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeScript(t *testing.T, path, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}
