package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

func TestColorProfile_Detection(t *testing.T) {
	valid := map[colorprofile.Profile]bool{
		colorprofile.Unknown:   true,
		colorprofile.NoTTY:     true,
		colorprofile.ASCII:     true,
		colorprofile.ANSI:      true,
		colorprofile.ANSI256:   true,
		colorprofile.TrueColor: true,
	}
	if !valid[TermProfile] {
		t.Errorf("TermProfile has unexpected value: %d", TermProfile)
	}
}

func TestThemeFgBg(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	tests := []struct {
		profile   colorprofile.Profile
		fgIsANSI  bool
		bgIsEmpty bool
	}{
		{colorprofile.TrueColor, false, false},
		{colorprofile.ANSI256, false, true},
		{colorprofile.ANSI, true, true},
		{colorprofile.NoTTY, true, true},
	}
	for _, tt := range tests {
		TermProfile = tt.profile

		_, fgANSI := ThemeFg("#62A0EA").(lipgloss.ANSIColor)
		if fgANSI != tt.fgIsANSI {
			t.Errorf("profile %d: ThemeFg ANSI = %v, want %v", tt.profile, fgANSI, tt.fgIsANSI)
		}
		_, bgEmpty := ThemeBg("#241F31").(lipgloss.NoColor)
		if bgEmpty != tt.bgIsEmpty {
			t.Errorf("profile %d: ThemeBg NoColor = %v, want %v", tt.profile, bgEmpty, tt.bgIsEmpty)
		}
	}
}

func TestDefaultTheme_NilRenderer(t *testing.T) {
	theme := DefaultTheme(nil)
	if theme.Renderer == nil {
		t.Fatal("expected the default renderer")
	}
	if out := theme.DoneButton.Render("Done"); out == "" {
		t.Error("expected styles to render")
	}
}

func TestDefaultTheme_FollowsProfile(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	tests := []struct {
		profile      colorprofile.Profile
		headerIsANSI bool
		statusNoBg   bool
	}{
		{colorprofile.TrueColor, false, false},
		{colorprofile.ANSI256, false, true},
		{colorprofile.ANSI, true, true},
	}
	for _, tt := range tests {
		TermProfile = tt.profile
		theme := DefaultTheme(nil)

		_, ansi := theme.Header.GetForeground().(lipgloss.ANSIColor)
		if ansi != tt.headerIsANSI {
			t.Errorf("profile %d: header foreground ANSI = %v, want %v", tt.profile, ansi, tt.headerIsANSI)
		}
		_, noBg := theme.Status.GetBackground().(lipgloss.NoColor)
		if noBg != tt.statusNoBg {
			t.Errorf("profile %d: status background NoColor = %v, want %v", tt.profile, noBg, tt.statusNoBg)
		}
		if theme.WarningText.GetForeground() != lipgloss.TerminalColor(theme.Warning) {
			t.Errorf("profile %d: warnings should use the warning color", tt.profile)
		}
	}
}
