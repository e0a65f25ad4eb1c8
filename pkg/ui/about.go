package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/ptour/pkg/version"
)

// About describes the program in the about dialog.
type About struct {
	ProgramName string
	Version     string
	Comments    string
	Authors     []string
	Artists     []string
	License     string
	Website     string
}

// NewAbout returns the about information for the given brand.
func NewAbout(brand string) About {
	if brand == "" {
		brand = "Phosh"
	}
	return About{
		ProgramName: brand + " Tour",
		Version:     version.Version,
		Comments:    "A simple tour of " + brand,
		Authors:     []string{"Guido Günther"},
		Artists:     []string{"Sam Hewitt"},
		License:     "GPL-3.0-or-later",
		Website:     version.Website,
	}
}

// Render draws the dialog.
func (a About) Render(t Theme, width int) string {
	r := t.Renderer
	label := r.NewStyle().Foreground(t.Subtext).Width(9)

	var b strings.Builder
	b.WriteString(t.Summary.Render(a.ProgramName))
	b.WriteString("  ")
	b.WriteString(t.MutedText.Render(a.Version))
	b.WriteString("\n")
	if a.Comments != "" {
		b.WriteString(t.Text.Render(a.Comments))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	row := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(name), t.Text.Render(value)))
		b.WriteString("\n")
	}
	row("Authors", strings.Join(a.Authors, "\n"))
	row("Artists", strings.Join(a.Artists, "\n"))
	row("License", a.License)
	row("Website", a.Website)

	b.WriteString("\n")
	b.WriteString(t.MutedText.Render("y copy website • ? close"))

	style := t.Dialog
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(b.String())
}

// clipboardMsg reports the result of copying text.
type clipboardMsg struct {
	text string
	err  error
}

func copyCmd(copyFn func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{text: text, err: copyFn(text)}
	}
}
