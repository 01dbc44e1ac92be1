package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/versionbadge/internal/core"
	"github.com/git-pkgs/versionbadge/internal/log"
)

type urlEntry struct {
	URL    string `json:"url"`
	Exists *bool  `json:"exists,omitempty"`
}

func newURLsCmd(flags *runtimeOptions) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "urls <purl>",
		Short: "Print registry, documentation and PURL links for a package",
		Example: `  versionbadge urls pkg:pypi/django@4.2
  versionbadge urls pkg:gem/rails --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, c, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			purl := withBaseURL(args[0], opts.BaseURLs)
			p, err := core.ParsePURL(purl)
			if err != nil {
				return err
			}
			src, name, err := core.NewFromPURL(purl, c)
			if err != nil {
				return err
			}

			entries := map[string]*urlEntry{}
			for key, u := range core.BuildURLs(src.URLs(), name, p.Version) {
				entries[key] = &urlEntry{URL: u}
			}

			var missing error
			if reg, ok := entries["registry"]; ok && check {
				exists, err := c.Head(cmd.Context(), reg.URL)
				if err != nil {
					return err
				}
				log.Debug("checked registry page", "url", reg.URL, "exists", exists)
				reg.Exists = &exists
				if !exists {
					missing = &core.NotFoundError{Kind: core.UnknownParent, Subject: "registry page", Ecosystem: p.Type, Name: name}
				}
			}

			if opts.JSON {
				if err := writeJSON(cmd.OutOrStdout(), entries); err != nil {
					return err
				}
			} else {
				for _, key := range slices.Sorted(maps.Keys(entries)) {
					e := entries[key]
					if e.Exists != nil && !*e.Exists {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (missing)\n", key, e.URL)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", key, e.URL)
				}
			}
			return classify(missing)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Verify that the registry page exists")
	return cmd
}
