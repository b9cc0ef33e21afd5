package reconcile

import "strings"

// Comparator provides the total order over package version strings
// ("[epoch:]version[-release]") used when merging local and upstream
// release state. The reconciler only feeds it synthetic "1-<rel>" strings,
// so the epoch never differs.
type Comparator interface {
	// Compare returns a negative value when a orders before b, zero when
	// they are equal and a positive value when a orders after b.
	Compare(a, b string) int
}

type comparatorFunc func(a, b string) int

func (f comparatorFunc) Compare(a, b string) int { return f(a, b) }

// DefaultComparator returns a Comparator implementing the alpm vercmp
// ordering in pure Go.
func DefaultComparator() Comparator {
	return comparatorFunc(VersionCompare)
}

// VersionCompare compares two full version strings with alpm semantics:
// the epoch wins outright, then the version part, then the release part
// (skipped when either side has none).
func VersionCompare(a, b string) int {
	ae, av, ar := splitEVR(a)
	be, bv, br := splitEVR(b)

	if ret := rpmvercmp(ae, be); ret != 0 {
		return ret
	}
	if ret := rpmvercmp(av, bv); ret != 0 {
		return ret
	}
	if ar != "" && br != "" {
		return rpmvercmp(ar, br)
	}
	return 0
}

// splitEVR splits "[epoch:]version[-release]" into its three parts. A
// missing epoch counts as "0".
func splitEVR(evr string) (epoch, version, release string) {
	epoch = "0"
	if i := strings.IndexByte(evr, ':'); i >= 0 {
		epoch, evr = evr[:i], evr[i+1:]
	}
	if i := strings.LastIndexByte(evr, '-'); i >= 0 {
		return epoch, evr[:i], evr[i+1:]
	}
	return epoch, evr, ""
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isAlnum(c byte) bool { return isDigit(c) || isAlpha(c) }

// rpmvercmp is the segment-wise version comparison used by alpm. Versions
// are split into alternating alphabetic and numeric blocks; numeric blocks
// compare as integers, alphabetic blocks lexically, and a numeric block
// always orders after an alphabetic one.
func rpmvercmp(a, b string) int {
	if a == b {
		return 0
	}

	one, two := 0, 0
	for one < len(a) && two < len(b) {
		segStart1, segStart2 := one, two
		for one < len(a) && !isAlnum(a[one]) {
			one++
		}
		for two < len(b) && !isAlnum(b[two]) {
			two++
		}
		if one >= len(a) || two >= len(b) {
			break
		}
		// Different separator run lengths decide the comparison.
		if one-segStart1 != two-segStart2 {
			if one-segStart1 < two-segStart2 {
				return -1
			}
			return 1
		}

		p1, p2 := one, two
		isnum := isDigit(a[p1])
		if isnum {
			for p1 < len(a) && isDigit(a[p1]) {
				p1++
			}
			for p2 < len(b) && isDigit(b[p2]) {
				p2++
			}
		} else {
			for p1 < len(a) && isAlpha(a[p1]) {
				p1++
			}
			for p2 < len(b) && isAlpha(b[p2]) {
				p2++
			}
		}

		seg1 := a[one:p1]
		seg2 := b[two:p2]
		if seg2 == "" {
			// One side is numeric where the other is alphabetic;
			// the numeric segment is always newer.
			if isnum {
				return 1
			}
			return -1
		}

		if isnum {
			seg1 = strings.TrimLeft(seg1, "0")
			seg2 = strings.TrimLeft(seg2, "0")
			if len(seg1) != len(seg2) {
				if len(seg1) > len(seg2) {
					return 1
				}
				return -1
			}
		}
		if rc := strings.Compare(seg1, seg2); rc != 0 {
			return rc
		}

		one, two = p1, p2
	}

	// One string is a prefix of the other (modulo separators). Whichever
	// has a remaining alphabetic segment is older ("1.0a" < "1.0").
	if one >= len(a) && two >= len(b) {
		return 0
	}
	if one >= len(a) {
		if isAlpha(b[two]) {
			return 1
		}
		return -1
	}
	if isAlpha(a[one]) {
		return -1
	}
	return 1
}
