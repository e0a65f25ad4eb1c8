package tour

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/ptour/pkg/debug"
	"github.com/vanderheijden86/ptour/pkg/imageview"
	"github.com/vanderheijden86/ptour/pkg/metrics"
)

// BuildOptions configures Build.
type BuildOptions struct {
	Branding Branding
	// Device holds the running device's compatibles.
	Device []string
	// Widgets resolves widget specs; DefaultWidgets when nil.
	Widgets WidgetFactories
	// Images loads page images; nil skips image loading.
	Images *imageview.Loader
	// MaxImageLoads bounds concurrent image decodes (default 4).
	MaxImageLoads int
}

// Sequence is the ordered list of pages shown in the carousel.
type Sequence []*Page

// Close releases every page's embedded content.
func (s Sequence) Close() {
	for _, p := range s {
		p.Close()
	}
}

// IDs returns the page IDs in order.
func (s Sequence) IDs() []string {
	ids := make([]string, len(s))
	for i, p := range s {
		ids[i] = p.ID
	}
	return ids
}

// IndexOf returns the position of the page with the given ID, or -1.
func (s Sequence) IndexOf(id string) int {
	for i, p := range s {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Build turns definitions into the page sequence for this device. Text is
// branded, widgets are created and images are loaded concurrently. Hardware
// pages that do not match the device are left out; hardware pages without
// compatibles are left out with a warning. Widget and image failures only
// drop the widget or image.
func Build(ctx context.Context, defs []Definition, opts BuildOptions) (Sequence, error) {
	start := time.Now()
	widgets := opts.Widgets
	if widgets == nil {
		widgets = DefaultWidgets()
	}

	seq := make(Sequence, 0, len(defs))
	for _, d := range defs {
		page := &Page{
			ID:          d.ID,
			Summary:     opts.Branding.Apply(d.Summary),
			Explanation: opts.Branding.Apply(d.Explanation),
			ImageURI:    d.ImageURI,
		}
		if d.IsHardware() {
			page.Hardware = NewHardware(d.Compatibles...)
		}

		ok, err := page.IsCompatible(opts.Device)
		if err != nil {
			debug.Warn("page %q: %v", d.ID, err)
			continue
		}
		if !ok {
			debug.Log("page %q: not compatible with this device", d.ID)
			continue
		}

		if d.Widget != nil {
			w, err := widgets.New(*d.Widget, opts.Branding)
			if err != nil {
				debug.Warn("page %q: widget: %v", d.ID, err)
			} else {
				page.Widget = w
			}
		}
		seq = append(seq, page)
	}

	if opts.Images != nil {
		if err := loadImages(ctx, seq, *opts.Images, opts.MaxImageLoads); err != nil {
			seq.Close()
			return nil, err
		}
	}

	elapsed := time.Since(start)
	metrics.PageBuild.Record(elapsed)
	debug.LogTiming("tour.Build", elapsed)
	return seq, nil
}

// loadImages decodes page images in parallel. A failed image is logged and
// left nil; only cancellation aborts the build.
func loadImages(ctx context.Context, seq Sequence, loader imageview.Loader, limit int) error {
	if limit <= 0 {
		limit = 4
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, page := range seq {
		if page.ImageURI == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := loader.Load(page.ImageURI)
			if err != nil {
				debug.Warn("failed to load image %s: %v", page.ImageURI, err)
				return nil
			}
			page.Image = img
			return nil
		})
	}

	return g.Wait()
}
