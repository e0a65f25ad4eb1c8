package devicetree

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeCompatible(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParse(t *testing.T) {
	got := Parse([]byte("purism,librem5r4\x00purism,librem5\x00fsl,imx8mq\x00"))
	want := []string{"purism,librem5r4", "purism,librem5", "fsl,imx8mq"}
	if !slices.Equal(got, want) {
		t.Errorf("Parse() = %q, want %q", got, want)
	}

	if got := Parse(nil); len(got) != 0 {
		t.Errorf("expected empty list, got %q", got)
	}
	if got := Parse([]byte("\x00\x00 \x00")); len(got) != 0 {
		t.Errorf("expected empties dropped, got %q", got)
	}
}

func TestCompatibles_Sysfs(t *testing.T) {
	root := t.TempDir()
	writeCompatible(t, root, "sys/firmware/devicetree/base/compatible", []byte("pine64,pinephone-1.2\x00allwinner,sun50i-a64\x00"))
	writeCompatible(t, root, "proc/device-tree/compatible", []byte("ignored\x00"))

	got, err := Compatibles(root)
	if err != nil {
		t.Fatalf("Compatibles failed: %v", err)
	}
	want := []string{"pine64,pinephone-1.2", "allwinner,sun50i-a64"}
	if !slices.Equal(got, want) {
		t.Errorf("Compatibles() = %q, want %q", got, want)
	}
}

func TestCompatibles_ProcFallback(t *testing.T) {
	root := t.TempDir()
	writeCompatible(t, root, "proc/device-tree/compatible", []byte("oneplus,enchilada\x00qcom,sdm845\x00"))

	got, err := Compatibles(root)
	if err != nil {
		t.Fatalf("Compatibles failed: %v", err)
	}
	if len(got) != 2 || got[0] != "oneplus,enchilada" {
		t.Errorf("unexpected compatibles %q", got)
	}
}

func TestCompatibles_NoDeviceTree(t *testing.T) {
	got, err := Compatibles(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error without a device tree, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestParseList(t *testing.T) {
	got := ParseList(" purism,librem5r4; pine64,pinephone-1.2\tfoo,bar ")
	want := []string{"purism,librem5r4", "pine64,pinephone-1.2", "foo,bar"}
	if !slices.Equal(got, want) {
		t.Errorf("ParseList() = %q, want %q", got, want)
	}
	if got := ParseList(""); len(got) != 0 {
		t.Errorf("expected empty list, got %q", got)
	}
}
