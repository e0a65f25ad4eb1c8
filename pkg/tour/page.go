// Package tour holds the tour's page model: pages, hardware specific pages,
// brand substitution and the declarative page definitions the carousel is
// built from.
package tour

import (
	"errors"
	"slices"
	"strings"

	"github.com/vanderheijden86/ptour/pkg/imageview"
)

// ErrNoCompatibles is returned when a hardware page is checked against a
// device but was never assigned any compatible strings.
var ErrNoCompatibles = errors.New("hardware page has no compatibles")

// Page is a single unit of tour content.
type Page struct {
	ID          string
	Summary     string
	Explanation string
	ImageURI    string

	// Image is the decoded ImageURI, nil when there is none or it failed
	// to load.
	Image *imageview.Image

	// Widget is optional embedded content owned by the page.
	Widget Widget

	// Hardware is set for pages that only apply to specific devices.
	Hardware *Hardware
}

// IsHardware reports whether the page is limited to specific devices.
func (p *Page) IsHardware() bool {
	return p.Hardware != nil
}

// IsCompatible reports whether the page applies to a device with the given
// compatibles. Plain pages apply to every device.
func (p *Page) IsCompatible(device []string) (bool, error) {
	if p.Hardware == nil {
		return true, nil
	}
	return p.Hardware.IsCompatible(device)
}

// Close releases the page's embedded content.
func (p *Page) Close() {
	if p.Widget != nil {
		p.Widget.Close()
		p.Widget = nil
	}
}

// Hardware is the data of a hardware specific page: the device tree
// compatibles it applies to.
type Hardware struct {
	compatibles []string
}

// NewHardware returns hardware data for the given compatibles, normalized
// with NormalizeCompatibles.
func NewHardware(compatibles ...string) *Hardware {
	h := &Hardware{}
	h.SetCompatibles(compatibles)
	return h
}

// SetCompatibles replaces the compatibles. Entries are trimmed and empty
// entries dropped.
func (h *Hardware) SetCompatibles(compatibles []string) {
	h.compatibles = NormalizeCompatibles(compatibles)
}

// Compatibles returns a copy of the normalized compatibles.
func (h *Hardware) Compatibles() []string {
	return slices.Clone(h.compatibles)
}

// IsCompatible reports whether any of the device's compatibles is one the
// page was declared for.
func (h *Hardware) IsCompatible(device []string) (bool, error) {
	return IsCompatible(h.compatibles, device)
}

// NormalizeCompatibles trims whitespace from each entry and drops entries
// that are empty afterwards. Order is preserved.
func NormalizeCompatibles(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// IsCompatible reports whether device and page share at least one
// compatible string. Matching is exact; there is no prefix or hierarchy
// handling. It fails with ErrNoCompatibles when page is empty.
func IsCompatible(page, device []string) (bool, error) {
	if len(page) == 0 {
		return false, ErrNoCompatibles
	}
	for _, c := range device {
		if slices.Contains(page, c) {
			return true, nil
		}
	}
	return false, nil
}
