// Package core provides shared types, the source registry, and the version
// ordering and selection primitives used by every ecosystem.
package core

// Sort names a tag ordering policy.
type Sort string

const (
	// SortDate trusts the upstream order, most recent first.
	SortDate Sort = "date"
	// SortSemver picks the highest semantic version.
	SortSemver Sort = "semver"
)

// ParseSort maps a query value to a Sort. Anything unrecognised is SortDate.
func ParseSort(s string) Sort {
	if Sort(s) == SortSemver {
		return SortSemver
	}
	return SortDate
}

// Query carries the caller-controlled resolution policy for a single request.
type Query struct {
	Sort               Sort
	Filter             string
	IncludePrereleases bool
	Submodule          string

	// MaxLicenseNameLength separates a license name from an inlined license
	// text. Zero means the ecosystem default.
	MaxLicenseNameLength int
}

// Result is a resolved version plus any metadata the source derived on the way.
type Result struct {
	Name     string         `json:"name"`
	Version  string         `json:"version"`
	Tag      string         `json:"tag,omitempty"`      // display value, e.g. "submodule@v1.2.0"
	Versions []string       `json:"versions,omitempty"` // ascending, when the source knows the full list
	Licenses []string       `json:"licenses,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
