package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/versionbadge/internal/core"
	"github.com/git-pkgs/versionbadge/internal/log"
	"github.com/git-pkgs/versionbadge/internal/pypi"
)

type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// ExitNotFound is the exit status for a resolution that found nothing.
const ExitNotFound = 2

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, core.ErrNotFound) {
		return &exitError{err: err, code: ExitNotFound}
	}
	return err
}

type selectionFlags struct {
	sort               string
	filter             string
	includePrereleases bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sort, "sort", string(core.SortDate), "Tag ordering: date or semver")
	cmd.Flags().StringVar(&f.filter, "filter", "", "Wildcard tag filter; prefix with ! to exclude")
	cmd.Flags().BoolVar(&f.includePrereleases, "include-prereleases", false, "Allow pre-release tags when sorting by semver")
}

func (f *selectionFlags) query() (core.Query, error) {
	switch core.Sort(f.sort) {
	case core.SortDate, core.SortSemver:
	default:
		return core.Query{}, fmt.Errorf("invalid --sort %q, want date or semver", f.sort)
	}
	return core.Query{
		Sort:               core.ParseSort(f.sort),
		Filter:             f.filter,
		IncludePrereleases: f.includePrereleases,
	}, nil
}

func newResolveCmd(flags *runtimeOptions) *cobra.Command {
	var sel selectionFlags
	var submodule string

	cmd := &cobra.Command{
		Use:   "resolve <purl>...",
		Short: "Resolve one or more Package URLs",
		Example: `  versionbadge resolve pkg:github/badges/shields --sort semver
  versionbadge resolve pkg:pypi/django pkg:gem/rails pkg:winget/Microsoft.WSL`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, c, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			q, err := sel.query()
			if err != nil {
				return err
			}
			q.Submodule = submodule
			q = opts.query(q)

			// config base URLs become repository_url qualifiers
			purls := make([]string, len(args))
			for i, p := range args {
				purls[i] = withBaseURL(p, opts.BaseURLs)
			}

			if len(purls) == 1 {
				res, err := core.ResolveFromPURL(cmd.Context(), purls[0], c, q)
				if err != nil {
					return classify(err)
				}
				return printResult(cmd.OutOrStdout(), opts.JSON, res)
			}

			results := core.BulkResolveWithConcurrency(cmd.Context(), purls, c, q, opts.Concurrency)
			log.Debug("bulk resolve finished", "requested", len(purls), "resolved", len(results))

			keyed := make(map[string]*core.Result, len(results))
			for i, p := range purls {
				res, ok := results[p]
				if !ok {
					log.With("purl", args[i]).Warn("no result")
					continue
				}
				keyed[args[i]] = res
			}
			if err := printBulk(cmd.OutOrStdout(), opts.JSON, args, keyed); err != nil {
				return err
			}
			if len(keyed) == 0 {
				return classify(core.NoCandidatesError("packages", false))
			}
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVar(&submodule, "submodule", "", "GitHub submodule that must exist in the repository")
	return cmd
}

func withBaseURL(purl string, baseURLs map[string]string) string {
	p, err := core.ParsePURL(purl)
	if err != nil {
		return purl
	}
	base, ok := baseURLs[p.Type]
	if !ok || p.Qualifiers.Map()["repository_url"] != "" {
		return purl
	}
	return p.WithQualifier("repository_url", base)
}

func newTagCmd(flags *runtimeOptions) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "tag <owner/repo> [submodule]",
		Short: "Resolve the latest tag of a GitHub repository",
		Example: `  versionbadge tag badges/shields
  versionbadge tag badges/shields --sort semver --include-prereleases
  versionbadge tag badges/shields --filter '!*-dev'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, c, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			q, err := sel.query()
			if err != nil {
				return err
			}
			if len(args) == 2 {
				q.Submodule = args[1]
			}

			src, err := opts.source("github", c)
			if err != nil {
				return err
			}
			res, err := src.Resolve(cmd.Context(), args[0], opts.query(q))
			if err != nil {
				return classify(err)
			}
			return printResult(cmd.OutOrStdout(), opts.JSON, res)
		},
	}

	sel.register(cmd)
	return cmd
}

func newWingetCmd(flags *runtimeOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "winget <Package.Identifier>",
		Short: "Resolve the latest version of a winget package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, c, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			src, err := opts.source("winget", c)
			if err != nil {
				return err
			}
			res, err := src.Resolve(cmd.Context(), args[0], opts.query(core.Query{}))
			if err != nil {
				return classify(err)
			}
			if all && !opts.JSON {
				return printLines(cmd.OutOrStdout(), res.Versions)
			}
			return printResult(cmd.OutOrStdout(), opts.JSON, res)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every version, oldest first")
	return cmd
}

func newPypiCmd(flags *runtimeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pypi <name>",
		Short: "Resolve version, licenses and classifier facets of a PyPI package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, c, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			src, err := opts.source("pypi", c)
			if err != nil {
				return err
			}
			res, err := src.Resolve(cmd.Context(), args[0], opts.query(core.Query{}))
			if err != nil {
				return classify(err)
			}
			return printResult(cmd.OutOrStdout(), opts.JSON, res)
		},
	}
	return cmd
}

func newGemCmd(flags *runtimeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gem <name>",
		Short: "Resolve the latest stable release of a gem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, c, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			src, err := opts.source("gem", c)
			if err != nil {
				return err
			}
			res, err := src.Resolve(cmd.Context(), args[0], opts.query(core.Query{}))
			if err != nil {
				return classify(err)
			}
			return printResult(cmd.OutOrStdout(), opts.JSON, res)
		},
	}
	return cmd
}

func newSortCmd(flags *runtimeOptions) *cobra.Command {
	var latest bool

	cmd := &cobra.Command{
		Use:   "sort <version>...",
		Short: "Sort version strings in dotted-numeric order",
		Example: `  versionbadge sort 2.0 1.9 10 1.11
  versionbadge sort --latest 2204.1.8.0 1804 2004`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := mergedOptions(cmd, flags)
			if err != nil {
				return err
			}
			sorted := pypi.SortVersions(args)
			if latest {
				sorted = sorted[len(sorted)-1:]
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), sorted)
			}
			return printLines(cmd.OutOrStdout(), sorted)
		},
	}

	cmd.Flags().BoolVar(&latest, "latest", false, "Print only the highest version")
	return cmd
}
