package pypi

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/git-pkgs/versionbadge/internal/core"
)

// ParsedVersion is the major/minor pair of a loosely formatted version.
type ParsedVersion struct {
	Major int
	Minor int
}

var leadingVersion = regexp.MustCompile(`^(\d+)(?:\.(\d+))?`)

// ParseVersion reads the leading "major[.minor]" of s. Anything after the
// second numeric group is ignored, and a string that does not start with a
// digit parses as 0.0. It never fails.
func ParseVersion(s string) ParsedVersion {
	m := leadingVersion.FindStringSubmatch(s)
	if m == nil {
		return ParsedVersion{}
	}
	var v ParsedVersion
	v.Major, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		v.Minor, _ = strconv.Atoi(m[2])
	}
	return v
}

// SortVersions returns versions in ascending dotted-numeric order.
func SortVersions(versions []string) []string {
	return core.SortDotted(versions)
}

type classifierOptions struct {
	preserveCase bool
}

// ClassifierOption tunes ParseClassifiers.
type ClassifierOption func(*classifierOptions)

// PreserveCase keeps captures in their original case.
func PreserveCase() ClassifierOption {
	return func(o *classifierOptions) {
		o.preserveCase = true
	}
}

// ParseClassifiers returns the first capture group of pattern for every
// classifier it matches, in classifier order. Captures are lower-cased
// unless PreserveCase is given. Duplicates are kept.
func ParseClassifiers(classifiers []string, pattern *regexp.Regexp, opts ...ClassifierOption) []string {
	var o classifierOptions
	for _, opt := range opts {
		opt(&o)
	}

	out := []string{}
	for _, c := range classifiers {
		m := pattern.FindStringSubmatch(c)
		if len(m) < 2 {
			continue
		}
		if o.preserveCase {
			out = append(out, m[1])
		} else {
			out = append(out, strings.ToLower(m[1]))
		}
	}
	return out
}

var (
	pythonVersionClassifier  = regexp.MustCompile(`^Programming Language :: Python :: ([\d.]+)$`)
	pythonOnlyClassifier     = regexp.MustCompile(`^Programming Language :: Python :: (\d+) :: Only$`)
	djangoVersionClassifier  = regexp.MustCompile(`^Framework :: Django :: ([\d.]+)$`)
	implementationClassifier = regexp.MustCompile(`^Programming Language :: Python :: Implementation :: (\S+)$`)
)

// PythonVersions lists the Python versions a package declares support for.
// A bare major ("3") is dropped when a minor of it ("3.6") is also listed.
// When no version classifier exists the "N :: Only" form is used instead.
func PythonVersions(classifiers []string) []string {
	versions := ParseClassifiers(classifiers, pythonVersionClassifier)
	if len(versions) == 0 {
		versions = ParseClassifiers(classifiers, pythonOnlyClassifier)
	}

	seen := make(map[string]bool, len(versions))
	unique := make([]string, 0, len(versions))
	for _, v := range versions {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}

	out := make([]string, 0, len(unique))
	for _, v := range unique {
		if !strings.Contains(v, ".") && hasMinorOf(unique, v) {
			continue
		}
		out = append(out, v)
	}
	return SortVersions(out)
}

func hasMinorOf(versions []string, major string) bool {
	for _, v := range versions {
		if strings.HasPrefix(v, major+".") {
			return true
		}
	}
	return false
}

// DjangoVersions lists the Django versions a package declares support for.
func DjangoVersions(classifiers []string) []string {
	return SortVersions(ParseClassifiers(classifiers, djangoVersionClassifier))
}

// Implementations lists the Python implementations a package declares,
// defaulting to cpython when none are listed.
func Implementations(classifiers []string) []string {
	impls := ParseClassifiers(classifiers, implementationClassifier)
	if len(impls) == 0 {
		return []string{"cpython"}
	}
	return impls
}

// File is a distribution file from the "urls" array of a release.
type File struct {
	PackageType string `json:"packagetype"`
}

// PackageFormats records which binary distributions a release ships.
type PackageFormats struct {
	HasWheel bool
	HasEgg   bool
}

// DetectPackageFormats inspects the package types of a release's files.
func DetectPackageFormats(files []File) PackageFormats {
	var f PackageFormats
	for _, file := range files {
		switch file.PackageType {
		case "bdist_wheel":
			f.HasWheel = true
		case "bdist_egg":
			f.HasEgg = true
		}
	}
	return f
}
