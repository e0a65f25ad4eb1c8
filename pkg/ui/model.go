// Package ui implements the tour's Bubble Tea program: a carousel of pages
// with previous and next buttons, page dots and an about dialog.
package ui

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/ptour/pkg/carousel"
	"github.com/vanderheijden86/ptour/pkg/debug"
	"github.com/vanderheijden86/ptour/pkg/tour"
	"github.com/vanderheijden86/ptour/pkg/watcher"
)

const (
	frameInterval   = time.Second / 60
	reloadTimeout   = 10 * time.Second
	maxContentWidth = 80
	minContentWidth = 20
)

// Options configures the model.
type Options struct {
	Theme    Theme
	Branding tour.Branding
	// ScrollDuration is the page scroll animation length; zero jumps.
	ScrollDuration time.Duration
	// ImageRows bounds the height of page images in terminal rows.
	ImageRows int
	// Watcher, when set, triggers Reload whenever the page file changes.
	Watcher *watcher.Watcher
	Reload  func(ctx context.Context) (tour.Sequence, error)
	// Clipboard copies text; atotto/clipboard when nil.
	Clipboard func(string) error
}

type tickMsg time.Time

type pagesChangedMsg struct{}

type pagesReloadedMsg struct {
	pages tour.Sequence
	err   error
}

// Model is the tour window.
type Model struct {
	pages    tour.Sequence
	carousel carousel.Carousel
	dots     paginator.Model
	body     viewport.Model
	help     help.Model
	keys     KeyMap
	theme    Theme
	about    About

	showAbout  bool
	status     string
	statusWarn bool
	ticking   bool
	finished  bool
	quitting  bool

	width     int
	height    int
	imageRows int

	// shown is the page whose body is in the viewport at shownWidth. A zero
	// shownWidth forces a refresh.
	shown         int
	shownWidth    int
	explanations  map[int]string
	markdownWidth int

	watcher   *watcher.Watcher
	reload    func(ctx context.Context) (tour.Sequence, error)
	clipboard func(string) error
}

// NewModel creates the tour window for pages. The model owns pages from
// now on; call Close on the final model to release them.
func NewModel(pages tour.Sequence, opts Options) Model {
	theme := opts.Theme
	if theme.Renderer == nil {
		theme = DefaultTheme(nil)
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	imageRows := opts.ImageRows
	if imageRows <= 0 {
		imageRows = 10
	}

	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.PerPage = 1
	dots.ActiveDot = theme.ActiveDot.Render("●")
	dots.InactiveDot = theme.InactiveDot.Render("○")
	dots.SetTotalPages(len(pages))

	m := Model{
		pages:        pages,
		carousel:     carousel.New(len(pages), opts.ScrollDuration),
		dots:         dots,
		body:         viewport.New(maxContentWidth, 16),
		help:         help.New(),
		keys:         DefaultKeyMap(),
		theme:        theme,
		about:        NewAbout(opts.Branding.Brand),
		width:        80,
		height:       24,
		imageRows:    imageRows,
		shown:        -1,
		explanations: make(map[int]string),
		watcher:      opts.Watcher,
		reload:       opts.Reload,
		clipboard:    copyFn,
	}
	m.layout()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.about.ProgramName)}
	if m.watcher != nil && m.reload != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tickMsg:
		if m.carousel.Step(frameInterval) {
			m.syncBody()
			return m, tick()
		}
		m.ticking = false
		m.syncBody()
		return m, nil

	case pagesChangedMsg:
		return m, tea.Batch(m.reloadCmd(), waitForChange(m.watcher))

	case pagesReloadedMsg:
		if msg.err != nil {
			debug.Warn("failed to reload pages: %v", msg.err)
			m.setStatus("Reload failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.ReplacePages(msg.pages)
		m.setStatus("Pages reloaded", false)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			debug.Warn("failed to copy %s to the clipboard: %v", msg.text, msg.err)
			m.setStatus("Copy failed", true)
		} else {
			m.setStatus("Copied "+msg.text, false)
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		var cmd tea.Cmd
		switch msg.Button {
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			cmd = m.navigate(m.carousel.Next())
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			cmd = m.navigate(m.carousel.Previous())
		}
		return m, cmd

	case tea.KeyMsg:
		if m.showAbout {
			return m.handleAboutKeys(msg)
		}
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleAboutKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		return m, copyCmd(m.clipboard, m.about.Website)
	case msg.String() == "esc", key.Matches(msg, m.keys.About):
		m.showAbout = false
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.About):
		m.showAbout = true
	case key.Matches(msg, m.keys.Next):
		cmd = m.navigate(m.carousel.Next())
	case key.Matches(msg, m.keys.Previous):
		cmd = m.navigate(m.carousel.Previous())
	case key.Matches(msg, m.keys.FlipNext):
		cmd = m.navigate(m.carousel.Flip(flipStep))
	case key.Matches(msg, m.keys.FlipPrev):
		cmd = m.navigate(m.carousel.Flip(-flipStep))
	case key.Matches(msg, m.keys.Jump):
		cmd = m.navigate(m.carousel.ScrollTo(int(msg.String()[0] - '1')))
	case key.Matches(msg, m.keys.First):
		cmd = m.navigate(m.carousel.ScrollTo(0))
	case key.Matches(msg, m.keys.Last):
		cmd = m.navigate(m.carousel.ScrollTo(m.carousel.Count() - 1))
	case key.Matches(msg, m.keys.Done):
		if m.onLastPage() {
			m.finished = true
			m.quitting = true
			return m, tea.Quit
		}
	case key.Matches(msg, m.keys.Down):
		m.body.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.body.ScrollUp(1)
	}
	return m, cmd
}

// navigate reacts to a carousel move, starting the scroll animation when
// the move did not complete immediately.
func (m *Model) navigate(moved bool) tea.Cmd {
	if !moved {
		return nil
	}
	m.setStatus("", false)
	m.dots.Page = m.carousel.Index()
	m.syncBody()
	if m.carousel.Animating() && !m.ticking {
		m.ticking = true
		return tick()
	}
	return nil
}

// setStatus replaces the help line with msg until the next page change.
// Warnings are highlighted.
func (m *Model) setStatus(msg string, warn bool) {
	m.status = msg
	m.statusWarn = warn
}

func (m Model) onLastPage() bool {
	count := m.carousel.Count()
	return count == 0 || m.carousel.Index() == count-1
}

// ReplacePages swaps in a new page sequence, staying on the same page when
// it still exists and clamping otherwise. The old pages are closed.
func (m *Model) ReplacePages(pages tour.Sequence) {
	current := ""
	if p := m.CurrentPage(); p != nil {
		current = p.ID
	}

	old := m.pages
	m.pages = pages
	m.carousel.SetCount(len(pages))
	if i := pages.IndexOf(current); i >= 0 {
		m.carousel.Jump(i)
	}
	m.dots.SetTotalPages(len(pages))
	m.dots.Page = max(m.carousel.Index(), 0)
	m.explanations = make(map[int]string)
	m.shownWidth = 0
	m.syncBody()

	for _, p := range old {
		if !slices.Contains(pages, p) {
			p.Close()
		}
	}
}

// CurrentPage returns the page the carousel is at or scrolling to.
func (m Model) CurrentPage() *tour.Page {
	i := m.carousel.Index()
	if i < 0 || i >= len(m.pages) {
		return nil
	}
	return m.pages[i]
}

// Carousel returns the navigation state.
func (m Model) Carousel() carousel.Carousel {
	return m.carousel
}

// Finished reports whether the tour was left through the Done button.
func (m Model) Finished() bool {
	return m.finished
}

// Close releases the pages' embedded content.
func (m Model) Close() {
	m.pages.Close()
}

// visiblePage is the page under the animated scroll position.
func (m Model) visiblePage() int {
	if m.carousel.Count() == 0 {
		return -1
	}
	return int(math.Round(m.carousel.Position()))
}

func (m Model) contentWidth() int {
	return min(max(m.width-4, minContentWidth), maxContentWidth)
}

// layout sizes the viewport: header and gap (2), buttons (3), help (1),
// status (1).
func (m *Model) layout() {
	m.body.Width = m.contentWidth()
	m.body.Height = max(m.height-7, 3)
	m.help.Width = m.width
	m.syncBody()
}

// syncBody refreshes the viewport when the visible page or width changed.
func (m *Model) syncBody() {
	i := m.visiblePage()
	width := m.contentWidth()
	if i == m.shown && width == m.shownWidth {
		return
	}
	m.shown = i
	m.shownWidth = width
	m.body.SetContent(m.pageBody(i, width))
	m.body.GotoTop()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.Changed()
		return pagesChangedMsg{}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	reload := m.reload
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		pages, err := reload(ctx)
		return pagesReloadedMsg{pages: pages, err: err}
	}
}
