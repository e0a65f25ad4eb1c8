// Package runonce persists whether the tour was already shown.
//
// The state is a single empty marker file. Once it exists the tour counts
// as completed; there is no way back short of deleting the file.
package runonce

import (
	"os"
	"path/filepath"

	"github.com/vanderheijden86/ptour/pkg/debug"
)

// MarkerName is the marker's file name inside the application's config
// directory.
const MarkerName = "run-once"

// Gate checks and creates the run-once marker at Path.
type Gate struct {
	Path string
}

// New returns a gate for the marker inside configDir.
func New(configDir string) Gate {
	return Gate{Path: filepath.Join(configDir, MarkerName)}
}

// Completed reports whether the marker exists, without creating it.
func (g Gate) Completed() bool {
	_, err := os.Stat(g.Path)
	return err == nil
}

// CheckAndCreate returns true when the tour already ran. Otherwise it
// creates the marker and returns false. Failures to create the directory
// or the file are logged and also return false so the tour is shown.
func (g Gate) CheckAndCreate() bool {
	if g.Completed() {
		debug.Log("run-once marker %s exists", g.Path)
		return true
	}

	dir := filepath.Dir(g.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		debug.Warn("failed to create %s: %v", dir, err)
		return false
	}

	f, err := os.OpenFile(g.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		debug.Warn("failed to create %s: %v", g.Path, err)
		return false
	}
	if err := f.Close(); err != nil {
		debug.Warn("failed to close %s: %v", g.Path, err)
		return false
	}

	debug.Log("created run-once marker %s", g.Path)
	return false
}
