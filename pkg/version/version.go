package version

// Version is the current application version.
// This is a var (not const) so it can be overridden at build time via:
//
//	go build -ldflags "-X github.com/vanderheijden86/ptour/pkg/version.Version=v0.2.0"
var Version = "v0.16.0"

// Name is the program name used in --version output and the about dialog.
const Name = "ptour"

// Description is the one-line summary printed by --version.
const Description = "A simple introductory tour for phones running Phosh"

// Website is shown in the about dialog.
const Website = "https://gitlab.gnome.org/guidog/phosh-tour"
