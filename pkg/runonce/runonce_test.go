package runonce

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/ptour/pkg/debug"
)

func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	t.Cleanup(func() { debug.SetOutput(os.Stderr) })
	return &buf
}

func TestCheckAndCreate_FirstRunCreatesMarker(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "ptour")
	g := New(dir)

	if g.Completed() {
		t.Fatal("marker should not exist on a clean config dir")
	}
	if g.CheckAndCreate() {
		t.Fatal("first call should report not completed")
	}

	info, err := os.Stat(filepath.Join(dir, MarkerName))
	if err != nil {
		t.Fatalf("expected marker to exist: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty marker, got %d bytes", info.Size())
	}
}

func TestCheckAndCreate_SubsequentCallsLeaveMarkerAlone(t *testing.T) {
	g := New(t.TempDir())
	g.CheckAndCreate()

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(g.Path, past, past); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if !g.CheckAndCreate() {
			t.Fatalf("call %d: expected completed", i+2)
		}
	}

	info, err := os.Stat(g.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(past) {
		t.Errorf("marker was modified: mtime %v, want %v", info.ModTime(), past)
	}
}

func TestCheckAndCreate_ContentIsIrrelevant(t *testing.T) {
	g := New(t.TempDir())
	if err := os.WriteFile(g.Path, []byte("anything"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !g.CheckAndCreate() {
		t.Error("existing marker with content should count as completed")
	}
}

func TestCheckAndCreate_DirectoryFailureFailsOpen(t *testing.T) {
	warnings := captureWarnings(t)

	// A regular file where the config directory should be makes MkdirAll fail.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	g := New(filepath.Join(blocker, "ptour"))

	if g.CheckAndCreate() {
		t.Error("directory failure should report not completed")
	}
	if !strings.Contains(warnings.String(), "failed to create") {
		t.Errorf("expected warning, got %q", warnings.String())
	}
	if g.CheckAndCreate() {
		t.Error("gate should keep failing open")
	}
}

func TestCheckAndCreate_FileFailureFailsOpen(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	warnings := captureWarnings(t)

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	g := New(dir)
	if g.CheckAndCreate() {
		t.Error("file creation failure should report not completed")
	}
	if !strings.Contains(warnings.String(), MarkerName) {
		t.Errorf("expected warning naming the marker, got %q", warnings.String())
	}
}
