package pdf

import (
	"fmt"
	"strings"
)

// Profile is a Ghostscript PDFSETTINGS preset.
type Profile string

const (
	ProfilePrepress Profile = "prepress"
	ProfileScreen   Profile = "screen"
	ProfileEbook    Profile = "ebook"
	ProfilePrinter  Profile = "printer"
)

// Profiles lists the accepted presets. The first entry is the default.
var Profiles = []Profile{ProfilePrepress, ProfileScreen, ProfileEbook, ProfilePrinter}

// DefaultProfile returns the preset used when the client does not pick one.
func DefaultProfile() Profile {
	return Profiles[0]
}

// ParseProfile returns the Profile named by s.
func ParseProfile(s string) (Profile, error) {
	for _, p := range Profiles {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidProfile, s)
}

// AcceptedProfiles renders the accepted presets as a list, e.g. ['prepress', 'screen'].
func AcceptedProfiles() string {
	quoted := make([]string, len(Profiles))
	for i, p := range Profiles {
		quoted[i] = "'" + string(p) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Label is a human readable description of the preset.
func (p Profile) Label() string {
	switch p {
	case ProfileScreen:
		return "Screen (low quality, smallest size)"
	case ProfileEbook:
		return "Ebook (medium quality, smaller size)"
	case ProfilePrinter:
		return "Printer (high quality)"
	case ProfilePrepress:
		return "Prepress (highest quality, largest size)"
	}
	return string(p)
}
