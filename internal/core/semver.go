package core

import (
	"github.com/Masterminds/semver/v3"
)

// parseSemver keeps the versions that parse as semantic versions, paired
// with their original spelling. Anything else is dropped, never coerced.
func parseSemver(versions []string) []*semver.Version {
	parsed := make([]*semver.Version, 0, len(versions))
	for _, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		parsed = append(parsed, v)
	}
	return parsed
}

func highest(versions []*semver.Version, keep func(*semver.Version) bool) *semver.Version {
	var best *semver.Version
	for _, v := range versions {
		if !keep(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	return best
}

// LatestSemver returns the original spelling of the highest semantic version
// in versions. With includePrereleases false the highest stable version wins,
// but when only pre-releases exist the highest pre-release is returned
// instead of nothing. ok is false only when no entry is a valid semver.
func LatestSemver(versions []string, includePrereleases bool) (latest string, ok bool) {
	parsed := parseSemver(versions)
	if len(parsed) == 0 {
		return "", false
	}

	all := func(*semver.Version) bool { return true }
	if includePrereleases {
		return highest(parsed, all).Original(), true
	}

	stable := highest(parsed, func(v *semver.Version) bool { return v.Prerelease() == "" })
	if stable != nil {
		return stable.Original(), true
	}
	return highest(parsed, all).Original(), true
}

// MaxSatisfying returns the highest version satisfying constraint, in its
// original spelling. Invalid versions are skipped.
func MaxSatisfying(versions []string, constraint string) (string, bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", false, err
	}
	best := highest(parseSemver(versions), c.Check)
	if best == nil {
		return "", false, nil
	}
	return best.Original(), true, nil
}
