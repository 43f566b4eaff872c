package testbed

import (
	"os"
	"path/filepath"
	"strings"
)

// BuildEnvironment returns a copy of base whose PATH is pathDirs followed by
// the existing PATH, the first directory having the highest priority. With
// no pathDirs it returns nil, which tells the spawner to inherit.
func BuildEnvironment(base []string, pathDirs []string) []string {
	if len(pathDirs) == 0 {
		return nil
	}

	env := make([]string, 0, len(base)+1)
	oldPath, hasPath := "", false
	for _, kv := range base {
		if strings.HasPrefix(kv, "PATH=") {
			oldPath, hasPath = strings.TrimPrefix(kv, "PATH="), true
			continue
		}
		env = append(env, kv)
	}

	parts := append([]string{}, pathDirs...)
	if hasPath && oldPath != "" {
		parts = append(parts, oldPath)
	}
	return append(env, "PATH="+strings.Join(parts, string(os.PathListSeparator)))
}

// normalizePathDirs drops blank entries and cleans the rest.
func normalizePathDirs(raw []string) []string {
	dirs := []string{}
	for _, d := range raw {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		dirs = append(dirs, filepath.Clean(d))
	}
	return dirs
}

// joinPath joins elements like filepath.Join, except that an absolute
// element discards everything before it.
func joinPath(elem ...string) string {
	start := 0
	for i, e := range elem {
		if filepath.IsAbs(e) {
			start = i
		}
	}
	return filepath.Join(elem[start:]...)
}
