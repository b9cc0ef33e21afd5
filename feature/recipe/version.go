package recipe

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedRecipe reports that a required pkgver/pkgrel assignment is
// absent or unparseable. Reconciliation requires a previously built recipe,
// so hitting this during a required read is a contract violation and fatal.
var ErrMalformedRecipe = errors.New("recipe is missing a required version or release assignment")

// ReleaseNumber is the rebuild counter of a recipe. It is either a plain
// non-negative integer or a dotted sub-release whose leading segment is the
// integer consumed by arithmetic ("3.2" has major 3).
type ReleaseNumber struct {
	Major int
	// Sub is the remainder after the first dot; empty for plain integers.
	Sub string
}

// ParseRelease parses a quote-stripped pkgrel value.
func ParseRelease(s string) (ReleaseNumber, error) {
	head, rest, dotted := strings.Cut(s, ".")
	major, err := strconv.Atoi(head)
	if err != nil || major < 0 {
		return ReleaseNumber{}, fmt.Errorf("invalid release %q: %w", s, ErrMalformedRecipe)
	}
	if dotted {
		return ReleaseNumber{Major: major, Sub: rest}, nil
	}
	return ReleaseNumber{Major: major}, nil
}

// Next returns the following release: the sub-release fraction is discarded
// and the integer part incremented, so 3 -> 4 and "3.2" -> 4.
func (r ReleaseNumber) Next() ReleaseNumber {
	return ReleaseNumber{Major: r.Major + 1}
}

func (r ReleaseNumber) String() string {
	if r.Sub != "" {
		return strconv.Itoa(r.Major) + "." + r.Sub
	}
	return strconv.Itoa(r.Major)
}

// VersionState is the version/release marker pair of a recipe. Release is
// nil for a never-built recipe; that is an expected state, not an error.
type VersionState struct {
	Epoch   string
	Version string
	Release *ReleaseNumber
}

// ReadVersionState extracts the current markers from the recipe file with a
// single linear scan. The first pkgrel= line sets the release
// (quote-stripped), the first pkgver= line sets the version (verbatim).
// A missing file yields the zero state and no error.
func ReadVersionState(path string) (VersionState, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return VersionState{}, nil
		}
		return VersionState{}, err
	}
	defer f.Close()

	var state VersionState
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		switch {
		case state.Release == nil && strings.HasPrefix(line, "pkgrel="):
			value := strings.Trim(strings.SplitN(line, "=", 2)[1], `'"`)
			rel, err := ParseRelease(value)
			if err != nil {
				return VersionState{}, err
			}
			state.Release = &rel
		case state.Version == "" && strings.HasPrefix(line, "pkgver="):
			state.Version = strings.SplitN(line, "=", 2)[1]
		case state.Epoch == "" && strings.HasPrefix(line, "epoch="):
			state.Epoch = strings.Trim(strings.SplitN(line, "=", 2)[1], `'"`)
		}
	}
	if err := scanner.Err(); err != nil {
		return VersionState{}, err
	}
	return state, nil
}

// SetRelease rewrites the pkgrel assignment in place. A nil rel means "the
// next release of the current value". Quotes around the old value are
// dropped; the counter is always written bare.
func SetRelease(path string, rel *ReleaseNumber) error {
	if rel == nil {
		state, err := ReadVersionState(path)
		if err != nil {
			return err
		}
		if state.Release == nil {
			return fmt.Errorf("cannot bump release of %s: %w", path, ErrMalformedRecipe)
		}
		next := state.Release.Next()
		rel = &next
	}

	done := false
	return Rewrite(path, func(line string) string {
		if done || !strings.HasPrefix(line, "pkgrel=") {
			return line
		}
		done = true
		return "pkgrel=" + rel.String()
	})
}

// UpdateVersion sets the recipe to newver. A version change resets the
// release counter to 1; rebuilding the same version bumps it instead.
func UpdateVersion(path, newver string) error {
	state, err := ReadVersionState(path)
	if err != nil {
		return err
	}
	if state.Version == "" || state.Release == nil {
		return fmt.Errorf("cannot update version of %s: %w", path, ErrMalformedRecipe)
	}

	changed := state.Version != newver
	return Rewrite(path, func(line string) string {
		switch {
		case strings.HasPrefix(line, "pkgver=") && changed:
			return "pkgver=" + newver
		case strings.HasPrefix(line, "pkgrel="):
			if changed {
				return "pkgrel=1"
			}
			return "pkgrel=" + state.Release.Next().String()
		}
		return line
	})
}

// FormatVersion renders the full package version the way the package
// manager displays it: [epoch:]pkgver[-pkgrel].
func FormatVersion(s VersionState) string {
	v := s.Version
	if s.Epoch != "" && s.Epoch != "0" {
		v = s.Epoch + ":" + v
	}
	if s.Release != nil {
		v += "-" + s.Release.String()
	}
	return v
}
