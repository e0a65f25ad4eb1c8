package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/ptour/pkg/config"
	"github.com/vanderheijden86/ptour/pkg/debug"
	"github.com/vanderheijden86/ptour/pkg/devicetree"
	"github.com/vanderheijden86/ptour/pkg/imageview"
	"github.com/vanderheijden86/ptour/pkg/tour"
	"github.com/vanderheijden86/ptour/pkg/ui"
)

// tourSetup is the merged result of config, environment and flags.
type tourSetup struct {
	branding  tour.Branding
	device    []string
	pagesFile string
}

// resolveSetup layers flags over cfg. The device's compatibles come from
// --compatible, then the config or PTOUR_COMPATIBLES, then the device tree.
func resolveSetup(cmd *cobra.Command, cfg config.Config, s settings) tourSetup {
	setup := tourSetup{
		branding:  tour.Branding{Brand: cfg.Tour.Brand, Vendor: cfg.Tour.Vendor},
		pagesFile: cfg.Tour.PagesFile,
	}
	flags := cmd.Flags()
	if flags.Changed("brand") {
		setup.branding.Brand = s.brand
	}
	if flags.Changed("vendor") {
		setup.branding.Vendor = s.vendor
	}
	if s.pagesFile != "" {
		setup.pagesFile = s.pagesFile
	}

	switch {
	case len(s.compatibles) > 0:
		setup.device = tour.NormalizeCompatibles(s.compatibles)
	case len(cfg.Tour.Compatibles) > 0:
		setup.device = tour.NormalizeCompatibles(cfg.Tour.Compatibles)
	default:
		device, err := devicetree.Compatibles(cfg.Tour.DeviceTreeRoot)
		if err != nil {
			debug.Warn("%v", err)
		}
		setup.device = device
	}
	debug.Log("device compatibles: %q", setup.device)
	return setup
}

func (s tourSetup) definitions() ([]tour.Definition, error) {
	if s.pagesFile == "" {
		return tour.DefaultDefinitions(), nil
	}
	return tour.LoadDefinitionsFile(s.pagesFile)
}

// build loads the definitions and builds the page sequence for the device.
// Images are only decoded when they will be shown.
func (s tourSetup) build(ctx context.Context, withImages bool) (tour.Sequence, error) {
	defs, err := s.definitions()
	if err != nil {
		return nil, err
	}

	opts := tour.BuildOptions{
		Branding: s.branding,
		Device:   s.device,
		Widgets:  ui.Widgets(),
	}
	if withImages {
		loader := &imageview.Loader{Resources: tour.Resources()}
		if s.pagesFile != "" {
			loader.BaseDir = filepath.Dir(s.pagesFile)
		}
		opts.Images = loader
	}
	return tour.Build(ctx, defs, opts)
}
