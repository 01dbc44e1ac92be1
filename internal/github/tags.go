package github

import (
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/git-pkgs/versionbadge/internal/core"
)

const (
	singleTagLimit = 1
	tagPoolLimit   = 100
)

// Limit returns how many tags to request upstream. Sorting by date without
// a filter only needs the most recent tag; anything else needs a pool.
func Limit(sort core.Sort, filter string) int {
	if filter == "" && sort != core.SortSemver {
		return singleTagLimit
	}
	return tagPoolLimit
}

// compileFilter turns a wildcard pattern into a case-insensitive matcher
// where only "*" is special.
func compileFilter(pattern string) (glob.Glob, error) {
	parts := strings.Split(strings.ToLower(pattern), "*")
	for i, p := range parts {
		parts[i] = glob.QuoteMeta(p)
	}
	return glob.Compile(strings.Join(parts, "*"))
}

// ApplyFilter keeps the tags matching filter, in their original order.
// A leading "!" keeps the tags that do not match the rest of the pattern.
// An empty filter keeps everything.
func ApplyFilter(tags []string, filter string) []string {
	if filter == "" {
		return tags
	}

	negate := strings.HasPrefix(filter, "!")
	pattern := strings.TrimPrefix(filter, "!")

	g, err := compileFilter(pattern)
	if err != nil {
		// a pattern the matcher rejects can only match itself literally
		g = literal(strings.ToLower(pattern))
	}

	out := []string{}
	for _, tag := range tags {
		if g.Match(strings.ToLower(tag)) != negate {
			out = append(out, tag)
		}
	}
	return out
}

type literal string

func (l literal) Match(s string) bool { return string(l) == s }

// Strategy picks the latest tag from a non-empty candidate list.
type Strategy func(tags []string, includePrereleases bool) (string, error)

func byDate(tags []string, _ bool) (string, error) {
	return tags[0], nil
}

func bySemver(tags []string, includePrereleases bool) (string, error) {
	latest, ok := core.LatestSemver(tags, includePrereleases)
	if !ok {
		return "", core.NoCandidatesError("valid semver tags", false)
	}
	return latest, nil
}

var strategies = map[core.Sort]Strategy{
	core.SortDate:   byDate,
	core.SortSemver: bySemver,
}

// StrategyFor returns the selection strategy for sort, defaulting to date.
func StrategyFor(sort core.Sort) Strategy {
	if s, ok := strategies[sort]; ok {
		return s
	}
	return byDate
}

// LatestTag selects the latest of tags. For date order the upstream order
// is trusted and the first tag wins. For semver order non-semver tags are
// ignored and a pre-release is returned only when no stable version exists
// or includePrereleases is set.
func LatestTag(tags []string, sort core.Sort, includePrereleases bool) (string, error) {
	if len(tags) == 0 {
		return "", core.NoCandidatesError("tags", false)
	}
	return StrategyFor(sort)(tags, includePrereleases)
}

// Selection is the outcome of SelectTag.
type Selection struct {
	Version string
	Tag     string // "submodule@version" when a submodule was requested
}

// SelectTag validates the requested submodule against submodules, filters
// tags and picks the latest under q.
func SelectTag(tags, submodules []string, q core.Query) (Selection, error) {
	if q.Submodule != "" && !slices.Contains(submodules, q.Submodule) {
		return Selection{}, &core.NotFoundError{Kind: core.UnknownQualifier, Subject: "submodule", Name: q.Submodule}
	}

	candidates := ApplyFilter(tags, q.Filter)
	if len(candidates) == 0 {
		return Selection{}, core.NoCandidatesError("tags", q.Filter != "")
	}

	version, err := LatestTag(candidates, q.Sort, q.IncludePrereleases)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{Version: version, Tag: version}
	if q.Submodule != "" {
		sel.Tag = q.Submodule + "@" + version
	}
	return sel, nil
}
