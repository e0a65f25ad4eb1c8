// Command ptour shows an introductory tour of the phone shell.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/ptour/pkg/config"
	"github.com/vanderheijden86/ptour/pkg/debug"
	"github.com/vanderheijden86/ptour/pkg/runonce"
	"github.com/vanderheijden86/ptour/pkg/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// settings holds the command line flags.
type settings struct {
	showVersion bool
	runOnce     bool
	watch       bool
	noAltScreen bool

	pagesFile   string
	compatibles []string
	brand       string
	vendor      string
}

func newRootCmd() *cobra.Command {
	var s settings

	root := &cobra.Command{
		Use:   version.Name,
		Short: version.Description,
		Long: `Show a tour of the phone shell's basic features.

Hardware specific pages are only shown when the device tree compatibles
of the running device match the page.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s - %s\n", version.Name, version.Version, version.Description)
				return nil
			}
			return runTour(cmd, s)
		},
	}

	flags := root.Flags()
	flags.BoolVar(&s.showVersion, "version", false, "Show version and exit")
	flags.BoolVar(&s.runOnce, "run-once", false, "Only show the tour if it was not shown before")
	flags.BoolVar(&s.watch, "watch", false, "Reload the pages when the page file changes")
	flags.BoolVar(&s.noAltScreen, "no-alt-screen", false, "Render inline instead of taking over the terminal")

	persistent := root.PersistentFlags()
	persistent.StringVar(&s.pagesFile, "pages", "", "Read page definitions from `file` instead of the built-in tour")
	persistent.StringArrayVar(&s.compatibles, "compatible", nil, "Use this device tree `compatible` instead of the device's (repeatable)")
	persistent.StringVar(&s.brand, "brand", "", "Brand name shown in the tour (default from config)")
	persistent.StringVar(&s.vendor, "vendor", "", "Vendor name shown in the tour (default from config)")

	root.AddCommand(pagesCmd(&s), compatiblesCmd(&s))
	return root
}

// runTour shows the tour: interactively when stdout is a terminal, as a
// plain listing otherwise. With --run-once a completed tour shows nothing.
// Only the interactive tour marks itself as shown, once it is about to
// start.
func runTour(cmd *cobra.Command, s settings) error {
	cfg := loadConfig()

	if s.runOnce {
		if gate, ok := runOnceGate(); ok && gate.Completed() {
			debug.Log("tour already shown")
			return nil
		}
	}

	setup := resolveSetup(cmd, cfg, s)
	out := cmd.OutOrStdout()
	if !isTerminal(out) {
		pages, err := setup.build(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer pages.Close()
		return writePages(out, pages)
	}

	return runInteractive(cmd.Context(), cfg, setup, s)
}

// runOnceGate returns the gate for the run-once marker. Without a config
// directory there is no gate and the tour always shows.
func runOnceGate() (runonce.Gate, bool) {
	dir := config.ConfigDir()
	if dir == "" {
		debug.Warn("no config directory, showing the tour")
		return runonce.Gate{}, false
	}
	return runonce.New(dir), true
}

// markShown creates the run-once marker. A tour started by another process
// in the meantime still shows here.
func markShown() {
	if gate, ok := runOnceGate(); ok {
		gate.CheckAndCreate()
	}
}

// loadConfig reads the config file and environment. A broken config is
// reported and replaced by the defaults.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		debug.Warn("ignoring configuration: %v", err)
		return config.DefaultConfig()
	}
	return cfg
}

// isTerminal reports whether w is a terminal. Tests replace it to reach the
// interactive path.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// errNoPagesFile is returned for --watch without a page file.
var errNoPagesFile = errors.New("--watch needs a page file (--pages or pages_file)")
