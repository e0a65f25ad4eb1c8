package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vanderheijden86/ptour/pkg/debug"
	"github.com/vanderheijden86/ptour/pkg/tour"
)

// CaptureLog redirects debug and warning output into the returned buffer
// for the rest of the test.
func CaptureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	t.Cleanup(func() { debug.SetOutput(os.Stderr) })
	return &buf
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WritePNG writes a w×h PNG with a diagonal gradient and returns its path.
func WritePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / max(w, 1)), G: uint8(y * 255 / max(h, 1)), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return WriteFile(t, dir, name, buf.String())
}

// DeviceTree creates a filesystem root whose device tree carries the given
// compatibles, most specific first, and returns the root.
func DeviceTree(t *testing.T, compatibles ...string) string {
	t.Helper()
	root := t.TempDir()
	data := strings.Join(compatibles, "\x00") + "\x00"
	WriteFile(t, root, filepath.Join("sys", "firmware", "devicetree", "base", "compatible"), data)
	return root
}

// AssertIDs verifies the page IDs of a sequence, in order.
func AssertIDs(t *testing.T, pages tour.Sequence, want ...string) {
	t.Helper()
	if got := pages.IDs(); !slices.Equal(got, want) {
		t.Errorf("expected pages %q, got %q", want, got)
	}
}
