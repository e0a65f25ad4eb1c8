package tour_test

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/vanderheijden86/ptour/pkg/devicetree"
	"github.com/vanderheijden86/ptour/pkg/imageview"
	"github.com/vanderheijden86/ptour/pkg/testutil"
	"github.com/vanderheijden86/ptour/pkg/tour"
)

// expectedIDs lists the definitions a device should see, in order.
func expectedIDs(defs []tour.Definition, device []string) []string {
	var ids []string
	for _, d := range defs {
		if d.IsHardware() && !slices.ContainsFunc(d.Compatibles, func(c string) bool {
			return slices.Contains(device, c)
		}) {
			continue
		}
		ids = append(ids, d.ID)
	}
	return ids
}

func TestBuild_GeneratedTours(t *testing.T) {
	testutil.CaptureLog(t)

	for seed := int64(1); seed <= 20; seed++ {
		cfg := testutil.DefaultConfig()
		cfg.Seed = seed
		gen := testutil.New(cfg)
		defs := gen.Definitions()
		device := gen.Device()

		seq, err := tour.Build(context.Background(), defs, tour.BuildOptions{
			Branding: tour.Branding{Brand: "Phosh", Vendor: "Purism"},
			Device:   device,
		})
		if err != nil {
			t.Fatalf("seed %d: Build failed: %v", seed, err)
		}

		testutil.AssertIDs(t, seq, expectedIDs(defs, device)...)
		if first := seq[0]; first.ID != defs[0].ID {
			t.Errorf("seed %d: every device should see the first page", seed)
		}
		for _, p := range seq {
			if strings.Contains(p.Summary, "@BRAND@") || strings.Contains(p.Explanation, "@VENDOR@") {
				t.Errorf("seed %d: page %s not branded", seed, p.ID)
			}
		}
		seq.Close()
	}
}

func TestGeneratedDefinitionsParse(t *testing.T) {
	defs := testutil.NewDefault().Definitions()
	path := testutil.WriteFile(t, t.TempDir(), "pages.yaml", testutil.ToYAML(defs))

	parsed, err := tour.LoadDefinitionsFile(path)
	if err != nil {
		t.Fatalf("generated document did not parse: %v", err)
	}
	if len(parsed) != len(defs) {
		t.Fatalf("expected %d definitions, got %d", len(defs), len(parsed))
	}
	for i := range defs {
		if parsed[i].ID != defs[i].ID || parsed[i].IsHardware() != defs[i].IsHardware() {
			t.Errorf("definition %d: got %+v, want %+v", i, parsed[i], defs[i])
		}
		if !slices.Equal(parsed[i].Compatibles, defs[i].Compatibles) {
			t.Errorf("definition %d: compatibles %q, want %q", i, parsed[i].Compatibles, defs[i].Compatibles)
		}
	}
}

func TestBuild_DeviceTreeFixture(t *testing.T) {
	testutil.CaptureLog(t)
	root := testutil.DeviceTree(t, "pine64,pinephone-1.2", "allwinner,sun50i-a64")
	device, err := devicetree.Compatibles(root)
	if err != nil {
		t.Fatal(err)
	}

	seq, err := tour.Build(context.Background(), tour.DefaultDefinitions(), tour.BuildOptions{
		Device: device,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer seq.Close()
	if seq.IndexOf("pinephone") < 0 || seq.IndexOf("librem5") >= 0 {
		t.Errorf("unexpected pages %q", seq.IDs())
	}
}

func TestBuild_ImagesFromPagesDir(t *testing.T) {
	log := testutil.CaptureLog(t)
	dir := t.TempDir()
	testutil.WritePNG(t, dir, "img/wide.png", 40, 20)

	defs := []tour.Definition{
		{ID: "relative", Summary: "Relative", ImageURI: "img/wide.png"},
		{ID: "missing", Summary: "Missing", ImageURI: "img/none.png"},
	}
	seq, err := tour.Build(context.Background(), defs, tour.BuildOptions{
		Images: &imageview.Loader{BaseDir: dir},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer seq.Close()

	testutil.AssertIDs(t, seq, "relative", "missing")
	if seq[0].Image == nil || seq[0].Image.Bounds().Dx() != 40 {
		t.Errorf("expected the 40px image to load, got %+v", seq[0].Image)
	}
	if seq[1].Image != nil {
		t.Error("missing image should leave the page without one")
	}
	if !strings.Contains(log.String(), "img/none.png") {
		t.Errorf("expected a warning for the missing image, got %q", log.String())
	}
}
