// Package paths resolves user supplied paths against the directory the
// process was started in and provides a scoped working-directory change.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns relative paths into absolute ones anchored to the working
// directory captured when the resolver was created. Later chdir calls do not
// affect it.
type Resolver struct {
	startDir string
}

// NewResolver creates a resolver anchored to startDir.
func NewResolver(startDir string) *Resolver {
	if !filepath.IsAbs(startDir) {
		if abs, err := filepath.Abs(startDir); err == nil {
			startDir = abs
		}
	}
	return &Resolver{startDir: evalExisting(filepath.Clean(startDir))}
}

// NewResolverFromCwd captures the current working directory.
func NewResolverFromCwd() (*Resolver, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return NewResolver(cwd), nil
}

// StartDir returns the captured working directory.
func (r *Resolver) StartDir() string {
	return r.startDir
}

// Resolve returns the absolute, cleaned form of path with symlinks resolved
// on the part of it that exists. It never fails on nonexistent paths.
func (r *Resolver) Resolve(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.startDir, path)
	}
	return evalExisting(filepath.Clean(path))
}

// ResolveCommand resolves a program name the way Resolve does when it
// contains a path separator. Bare names are returned unchanged so they are
// still looked up on PATH.
func (r *Resolver) ResolveCommand(name string) string {
	if name == "" || !strings.ContainsRune(name, '/') && !strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return r.Resolve(name)
}

// evalExisting resolves symlinks on the longest existing prefix of an
// absolute, clean path and appends the remaining elements unchanged.
func evalExisting(path string) string {
	var rest []string
	cur := path
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			for i := len(rest) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, rest[i])
			}
			return resolved
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return path
		}
		rest = append(rest, filepath.Base(cur))
		cur = parent
	}
}
