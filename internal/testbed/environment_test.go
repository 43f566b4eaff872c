package testbed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEnvironment(t *testing.T) {
	base := []string{"HOME=/root", "PATH=/usr/bin:/bin", "LANG=C"}

	t.Run("no dirs inherits", func(t *testing.T) {
		assert.Nil(t, BuildEnvironment(base, nil))
		assert.Nil(t, BuildEnvironment(base, []string{}))
	})

	t.Run("first listed has highest priority", func(t *testing.T) {
		env := BuildEnvironment(base, []string{"a", "b"})
		assert.Equal(t, []string{"HOME=/root", "LANG=C", "PATH=a:b:/usr/bin:/bin"}, env)
	})

	t.Run("missing PATH", func(t *testing.T) {
		env := BuildEnvironment([]string{"HOME=/root"}, []string{"/opt/tools"})
		assert.Equal(t, []string{"HOME=/root", "PATH=/opt/tools"}, env)
	})

	t.Run("base is not modified", func(t *testing.T) {
		_ = BuildEnvironment(base, []string{"a"})
		assert.Equal(t, "PATH=/usr/bin:/bin", base[1])
	})
}

func TestNormalizePathDirs(t *testing.T) {
	assert.Equal(t, []string{"a", "/opt/b"}, normalizePathDirs([]string{"a", "", "  ", "/opt/b/"}))
	assert.Equal(t, []string{}, normalizePathDirs(nil))
	assert.Equal(t, []string{"x/z"}, normalizePathDirs([]string{"x/y/../z\r"}))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/tmp/out/sub/log.txt", joinPath("/tmp/out", "sub", "log.txt"))
	assert.Equal(t, "/var/log/case.log", joinPath("/tmp/out", "sub", "/var/log/case.log"))
	assert.Equal(t, "/tmp/out/log.txt", joinPath("/tmp/out", "", "log.txt"))
}
