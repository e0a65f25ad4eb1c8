// Package testutil provides fixtures for tour tests: generated page
// definitions, device trees, image files and log capture. Generators are
// deterministic for a given seed.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/ptour/pkg/tour"
)

// GeneratorConfig controls definition generation.
type GeneratorConfig struct {
	Seed int64 // Random seed (0 = 42)
	// Pages is the number of definitions (default 8).
	Pages int
	// HardwareRatio is the share of hardware pages in [0, 1].
	HardwareRatio float64
	// Devices are the compatibles hardware pages draw from.
	Devices []string
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:          42,
		Pages:         8,
		HardwareRatio: 0.4,
		Devices: []string{
			"purism,librem5r4",
			"pine64,pinephone-1.2",
			"oneplus,enchilada",
			"xiaomi,beryllium",
		},
	}
}

// Generator creates page definitions.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	def := DefaultConfig()
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.Pages <= 0 {
		cfg.Pages = def.Pages
	}
	if len(cfg.Devices) == 0 {
		cfg.Devices = def.Devices
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// NewDefault creates a Generator with the default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Definitions returns a tour. The first and last pages are always plain so
// every device sees a start and an end.
func (g *Generator) Definitions() []tour.Definition {
	defs := make([]tour.Definition, g.cfg.Pages)
	for i := range defs {
		d := tour.Definition{
			ID:          fmt.Sprintf("page-%02d", i),
			Summary:     fmt.Sprintf("Page %d of @BRAND@", i+1),
			Explanation: fmt.Sprintf("Brought to you by @VENDOR@ (%d).", i+1),
		}
		last := i == len(defs)-1
		if i > 0 && !last && g.rng.Float64() < g.cfg.HardwareRatio {
			d.Kind = tour.KindHardware
			d.Compatibles = g.pickCompatibles()
		}
		defs[i] = d
	}
	return defs
}

func (g *Generator) pickCompatibles() tour.Compatibles {
	n := 1 + g.rng.Intn(min(2, len(g.cfg.Devices)))
	perm := g.rng.Perm(len(g.cfg.Devices))
	out := make(tour.Compatibles, n)
	for i := range out {
		out[i] = g.cfg.Devices[perm[i]]
	}
	return out
}

// Device returns a device's compatibles: one of the configured devices
// followed by a generic SoC entry.
func (g *Generator) Device() []string {
	return []string{g.cfg.Devices[g.rng.Intn(len(g.cfg.Devices))], "generic,soc"}
}

// ToYAML encodes definitions as a page definitions document.
func ToYAML(defs []tour.Definition) string {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(tour.Document{Pages: defs}); err != nil {
		panic(err)
	}
	enc.Close()
	return b.String()
}
