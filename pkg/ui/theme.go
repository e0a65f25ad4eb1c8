package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and ANSI white
// for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so limited palettes keep the terminal's
// own background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// Theme holds the colors and pre-built styles of the tour.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary lipgloss.AdaptiveColor
	Accent  lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor

	Header      lipgloss.Style
	Summary     lipgloss.Style
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	Status      lipgloss.Style
	WarningText lipgloss.Style
	Button      lipgloss.Style
	DoneButton  lipgloss.Style
	ActiveDot   lipgloss.Style
	InactiveDot lipgloss.Style
	Dialog      lipgloss.Style
}

// DefaultTheme returns the tour theme, adaptive to light and dark terminals.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := Theme{
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#1C71D8", Dark: "#62A0EA"}, // Blue
		Accent:  lipgloss.AdaptiveColor{Light: "#26A269", Dark: "#57E389"}, // Green
		Subtext: lipgloss.AdaptiveColor{Light: "#5E5C64", Dark: "#C0BFBC"},
		Border:  lipgloss.AdaptiveColor{Light: "#9A9996", Dark: "#3D3846"},
		Muted:   lipgloss.AdaptiveColor{Light: "#77767B", Dark: "#77767B"},
		Warning: lipgloss.AdaptiveColor{Light: "#C64600", Dark: "#FFA348"},
	}

	headerFg, statusBg := "#FFFFFF", "#EBEBED"
	if r.HasDarkBackground() {
		headerFg, statusBg = "#241F31", "#303030"
	}

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(ThemeFg(headerFg)).
		Bold(true).
		Padding(0, 1)
	t.Summary = r.NewStyle().Bold(true).Foreground(t.Primary)
	t.Text = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F6F5F4"})
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Status = t.MutedText.Background(ThemeBg(statusBg))
	t.WarningText = t.Status.Foreground(t.Warning).Bold(true)
	t.Button = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Subtext).
		Padding(0, 1)
	t.DoneButton = t.Button.
		BorderForeground(t.Accent).
		Foreground(t.Accent).
		Bold(true)
	t.ActiveDot = r.NewStyle().Foreground(t.Primary)
	t.InactiveDot = r.NewStyle().Foreground(t.Border)
	t.Dialog = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	return t
}
