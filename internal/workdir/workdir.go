// Package workdir finds the directory that holds clinic's .clinic state, so
// the config, session and cache follow the user around a project tree.
package workdir

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// HomeEnv pins the base directory, skipping discovery
	HomeEnv = "CLINIC_HOME"

	rootFile = ".clinic-root"
	stateDir = ".clinic"
)

// ResolveBaseDir picks the base directory for cwd:
//  1. $CLINIC_HOME when set.
//  2. The nearest directory from cwd upward holding a .clinic-root redirect
//     or a .clinic state dir. The walk stops at the git top level when cwd
//     is inside a repository.
//
// If nothing matches, cwd is returned cleaned.
func ResolveBaseDir(cwd string) string {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		if abs, err := filepath.Abs(home); err == nil {
			return abs
		}
		return filepath.Clean(home)
	}
	if cwd == "" {
		return cwd
	}
	cwd = filepath.Clean(cwd)

	stop := ""
	if top, err := gitTopLevel(cwd); err == nil && top != "" {
		stop = filepath.Clean(top)
	}

	for dir := cwd; ; {
		if resolved, ok := readRootFile(dir); ok {
			return resolved
		}
		if hasStateDir(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if dir == stop || parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

// StateDir is the .clinic directory under base
func StateDir(base string) string {
	return filepath.Join(base, stateDir)
}

// EnsureStateDir creates the .clinic directory under base if needed
func EnsureStateDir(base string) (string, error) {
	dir := StateDir(base)
	return dir, os.MkdirAll(dir, 0755)
}

// readRootFile follows a .clinic-root redirect; relative targets resolve
// against dir.
func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}

func hasStateDir(dir string) bool {
	fi, err := os.Stat(StateDir(dir))
	return err == nil && fi.IsDir()
}

func gitTopLevel(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
