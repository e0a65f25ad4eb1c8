package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/ptour/pkg/config"
	"github.com/vanderheijden86/ptour/pkg/debug"
	"github.com/vanderheijden86/ptour/pkg/metrics"
	"github.com/vanderheijden86/ptour/pkg/tour"
	"github.com/vanderheijden86/ptour/pkg/ui"
	"github.com/vanderheijden86/ptour/pkg/version"
	"github.com/vanderheijden86/ptour/pkg/watcher"
)

// runInteractive builds the pages and runs the tour window until the user
// quits.
func runInteractive(ctx context.Context, cfg config.Config, setup tourSetup, s settings) error {
	if s.watch && setup.pagesFile == "" {
		return errNoPagesFile
	}

	closeLog := redirectLogs()
	defer closeLog()

	pages, err := setup.build(ctx, true)
	if err != nil {
		return err
	}

	opts := ui.Options{
		Branding:       setup.branding,
		ScrollDuration: cfg.ScrollDuration(),
		ImageRows:      cfg.UI.ImageRows,
		Reload: func(ctx context.Context) (tour.Sequence, error) {
			return setup.build(ctx, true)
		},
	}

	if s.watch {
		w, err := watcher.New(setup.pagesFile,
			watcher.WithOnChange(func() {
				debug.Log("%s changed, reloading", setup.pagesFile)
			}),
			watcher.WithOnError(func(err error) {
				debug.Warn("watching %s: %v", setup.pagesFile, err)
			}),
		)
		if err != nil {
			pages.Close()
			return err
		}
		if err := w.Start(); err != nil {
			pages.Close()
			return err
		}
		defer w.Stop()
		debug.Log("watching %s (polling: %v, fs: %s)", w.Path(), w.IsPolling(), w.FilesystemType())
		opts.Watcher = w
	}

	if s.runOnce {
		markShown()
	}

	m := ui.NewModel(pages, opts)
	altScreen := cfg.UseAltScreen() && !s.noAltScreen
	final, err := runProgram(m, altScreen)
	final.Close()
	if final.Finished() {
		debug.Log("tour finished")
	}
	logTimings()
	return err
}

// logTimings writes the collected timings to the debug log.
func logTimings() {
	if !debug.Enabled() {
		return
	}
	debug.Section("timings")
	for _, st := range metrics.AllTimingStats() {
		debug.Log("%s: %d calls, avg %v, max %v, total %v", st.Name, st.Count, st.Avg, st.Max, st.Total)
	}
}

// redirectLogs sends warnings to the log file while the terminal is in use
// by the tour. It returns a function restoring stderr.
func redirectLogs() func() {
	path := config.LogPath()
	if path == "" {
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		debug.Warn("failed to create log directory: %v", err)
		return func() {}
	}
	f, err := tea.LogToFile(path, version.Name)
	if err != nil {
		debug.Warn("failed to open log file %s: %v", path, err)
		return func() {}
	}
	debug.SetOutput(f)
	return func() {
		debug.SetOutput(os.Stderr)
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
		f.Close()
	}
}

// runProgram runs the tour window. Tests replace it to skip the terminal.
var runProgram = runTUIProgram

func runTUIProgram(m ui.Model, altScreen bool) (ui.Model, error) {
	opts := []tea.ProgramOption{
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, opts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set PTOUR_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("PTOUR_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	final, err := p.Run()
	if fm, ok := final.(ui.Model); ok {
		m = fm
	}
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return m, nil
	}
	return m, err
}
