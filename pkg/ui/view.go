package ui

import (
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/ptour/pkg/metrics"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showAbout {
		dialog := m.about.Render(m.theme, m.width)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.body.View()))
	b.WriteString("\n")
	b.WriteString(m.renderButtons())
	b.WriteString("\n")
	if m.status != "" {
		style := m.theme.Status
		if m.statusWarn {
			style = m.theme.WarningText
		}
		b.WriteString(style.Render(runewidth.Truncate(m.status, m.width, "…")))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// renderHeader renders the title on the left and the page dots on the right.
func (m Model) renderHeader() string {
	title := m.theme.Header.Render(m.about.ProgramName)
	dots := ""
	if m.carousel.Count() > 1 {
		dots = m.dots.View()
	}
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(dots), 1)
	return title + strings.Repeat(" ", gap) + dots
}

// renderButtons renders the previous and next buttons. Their visibility
// follows the animated scroll position. The last page offers Done instead
// of next.
func (m Model) renderButtons() string {
	left := ""
	if m.carousel.PreviousVisible() {
		left = m.theme.Button.Render("← Previous")
	}

	right := ""
	switch {
	case m.carousel.NextVisible():
		right = m.theme.Button.Render("Next →")
	case m.carousel.Count() > 0:
		right = m.theme.DoneButton.Render("Done")
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), right)
}

// pageBody renders page i: image, summary, explanation and widget.
func (m *Model) pageBody(i, width int) string {
	if i < 0 || i >= len(m.pages) {
		return m.theme.MutedText.Render("There are no pages for this device.")
	}
	defer metrics.Timer(metrics.PageRender)()
	page := m.pages[i]

	var parts []string
	if page.Image != nil {
		img := page.Image.Render(width, m.imageRows, m.theme.Renderer)
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center, img))
	}
	summary := m.theme.Summary.Render(runewidth.Truncate(page.Summary, width, "…"))
	parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center, summary))
	if page.Explanation != "" {
		parts = append(parts, m.explanation(i, width))
	}
	if page.Widget != nil {
		if view := page.Widget.View(width); view != "" {
			parts = append(parts, view)
		}
	}
	return strings.Join(parts, "\n\n")
}

// explanation renders a page's explanation as markdown. Results are cached
// per page until the width changes.
func (m *Model) explanation(i, width int) string {
	if width != m.markdownWidth {
		m.explanations = make(map[int]string)
		m.markdownWidth = width
	}
	if out, ok := m.explanations[i]; ok {
		return out
	}

	text := m.pages[i].Explanation
	out := m.theme.Text.Width(width).Render(strings.TrimSpace(text))
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := renderer.Render(text); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	m.explanations[i] = out
	return out
}

func (m Model) markdownStyle() string {
	switch {
	case TermProfile <= colorprofile.ASCII:
		return "notty"
	case m.theme.Renderer.HasDarkBackground():
		return "dark"
	default:
		return "light"
	}
}
