package mirror

import (
	"strings"

	"recipe-manager/feature/recipe"
)

// LineType tags one line of a unified diff.
type LineType int

const (
	LineContext LineType = iota
	LineAdded
	LineRemoved
	LineHeader
)

// Line is a single diff line with its +/- marker stripped.
type Line struct {
	Type    LineType
	Content string
}

// ParseDiff splits a unified diff into tagged lines. File headers
// ("+++", "---") are tagged separately so they are never mistaken for
// content changes.
func ParseDiff(text string) []Line {
	if text == "" {
		return nil
	}
	raw := strings.Split(strings.TrimRight(text, "\n"), "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		switch {
		case strings.HasPrefix(l, "+++") || strings.HasPrefix(l, "---"):
			lines = append(lines, Line{Type: LineHeader, Content: l})
		case strings.HasPrefix(l, "+"):
			lines = append(lines, Line{Type: LineAdded, Content: l[1:]})
		case strings.HasPrefix(l, "-"):
			lines = append(lines, Line{Type: LineRemoved, Content: l[1:]})
		default:
			lines = append(lines, Line{Type: LineContext, Content: l})
		}
	}
	return lines
}

// AllowPublish decides whether a regenerated recipe is worth publishing by
// scanning the changed lines of its diff against the mirror.
//
// Version-controlled packages rebuild their pkgver at every refresh, so a
// diff touching only pkgver/pkgrel assignments is pure bookkeeping and is
// suppressed. Fixed packages suppress only isolated pkgrel churn: for them
// a version bump is a meaningful change. The two policies are intentionally
// asymmetric and are kept exactly as they are.
//
// The scan short-circuits on the first line that qualifies the diff for
// publication.
func AllowPublish(class recipe.PackageClass, lines []Line) bool {
	vcs := class == recipe.ClassVersionControlled
	for _, line := range lines {
		if line.Type != LineAdded && line.Type != LineRemoved {
			continue
		}
		if vcs && !strings.HasPrefix(line.Content, "pkgver=") && !strings.HasPrefix(line.Content, "pkgrel=") {
			return true
		}
		if !vcs && !strings.HasPrefix(line.Content, "pkgrel=") {
			return true
		}
	}
	return false
}
