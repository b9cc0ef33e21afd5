package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		// Release-only comparisons as issued by the reconciler.
		{"1-1", "1-2", -1},
		{"1-2", "1-1", 1},
		{"1-3", "1-3", 0},
		{"1-3.2", "1-3", 1},
		{"1-3.2", "1-4", -1},
		{"1-10", "1-9", 1},

		// General version ordering.
		{"1.0", "1.1", -1},
		{"1.0.2", "1.0.10", -1},
		{"1.0a", "1.0", -1},
		{"1.0", "1.0rc1", 1},
		{"01", "1", 0},
		{"1.0", "1_0", 0},

		// Epoch dominates.
		{"2:0.1", "1:9.9", 1},
		{"0.1", "1:0.1", -1},
	}
	for _, tc := range cases {
		got := VersionCompare(tc.a, tc.b)
		switch tc.want {
		case 0:
			assert.Zero(t, got, "%s vs %s", tc.a, tc.b)
		case -1:
			assert.Negative(t, got, "%s vs %s", tc.a, tc.b)
		case 1:
			assert.Positive(t, got, "%s vs %s", tc.a, tc.b)
		}
	}
}

func TestVersionCompareReleaseAbsent(t *testing.T) {
	// When either side has no release part the comparison stops at the
	// version part.
	assert.Zero(t, VersionCompare("1", "1-5"))
	assert.Zero(t, VersionCompare("1-5", "1"))
}
