package core

import (
	"slices"
	"strings"
)

// dottedComponents splits a version into its numeric components. Each
// dot-separated part contributes its leading digits with leading zeros
// stripped; a part without leading digits counts as zero. Suffixes such as
// "rc1" in "2.0rc1" are ignored. Components stay as digit strings so
// arbitrarily long numbers compare correctly. One leading "v" or "V" is
// skipped.
func dottedComponents(v string) []string {
	if len(v) > 1 && (v[0] == 'v' || v[0] == 'V') {
		v = v[1:]
	}
	parts := strings.Split(v, ".")
	out := make([]string, len(parts))
	for i, p := range parts {
		end := 0
		for end < len(p) && p[end] >= '0' && p[end] <= '9' {
			end++
		}
		out[i] = strings.TrimLeft(p[:end], "0")
	}
	return out
}

func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// CompareDotted orders two version strings by their dot-separated numeric
// components, left to right. The shorter version is zero-padded, so "2" and
// "2.0" compare equal. Returns -1, 0 or 1.
func CompareDotted(a, b string) int {
	ca, cb := dottedComponents(a), dottedComponents(b)
	n := max(len(ca), len(cb))
	for i := 0; i < n; i++ {
		var x, y string
		if i < len(ca) {
			x = ca[i]
		}
		if i < len(cb) {
			y = cb[i]
		}
		if c := compareDigits(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// SortDotted returns a new slice with versions in ascending dotted-numeric
// order. The sort is stable, so versions that compare equal keep their
// input order.
func SortDotted(versions []string) []string {
	sorted := slices.Clone(versions)
	slices.SortStableFunc(sorted, CompareDotted)
	return sorted
}

// LatestDotted returns the highest version in dotted-numeric order. When
// several compare equal the last one in input order wins.
func LatestDotted(versions []string) (string, bool) {
	if len(versions) == 0 {
		return "", false
	}
	sorted := SortDotted(versions)
	return sorted[len(sorted)-1], true
}
