package recipe

import "strings"

// PackageClass partitions packages by how their version evolves. It is
// derived from the pkgbase name, never stored.
type PackageClass int

const (
	// ClassFixed packages track a fixed upstream version; a version bump
	// in their recipe is a meaningful change.
	ClassFixed PackageClass = iota
	// ClassVersionControlled packages derive their version from a live
	// source repository at every refresh, so pkgver churn is expected.
	ClassVersionControlled
)

var vcsSuffixes = []string{"-git", "-hg", "-svn", "-bzr"}

// Class reports the package class from the pkgbase suffix convention.
func Class(pkgbase string) PackageClass {
	for _, suffix := range vcsSuffixes {
		if strings.HasSuffix(pkgbase, suffix) {
			return ClassVersionControlled
		}
	}
	return ClassFixed
}

func (c PackageClass) String() string {
	if c == ClassVersionControlled {
		return "version-controlled"
	}
	return "fixed"
}
