package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/git-pkgs/versionbadge/internal/core"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func display(res *core.Result) string {
	if res.Tag != "" {
		return res.Tag
	}
	return res.Version
}

func printResult(w io.Writer, asJSON bool, res *core.Result) error {
	if asJSON {
		return writeJSON(w, res)
	}

	if _, err := fmt.Fprintln(w, display(res)); err != nil {
		return err
	}
	if len(res.Licenses) > 0 {
		fmt.Fprintf(w, "licenses: %s\n", strings.Join(res.Licenses, ", "))
	}
	for _, key := range slices.Sorted(maps.Keys(res.Metadata)) {
		switch v := res.Metadata[key].(type) {
		case []string:
			fmt.Fprintf(w, "%s: %s\n", key, strings.Join(v, ", "))
		default:
			fmt.Fprintf(w, "%s: %v\n", key, v)
		}
	}
	return nil
}

func printBulk(w io.Writer, asJSON bool, order []string, results map[string]*core.Result) error {
	if asJSON {
		return writeJSON(w, results)
	}
	for _, purl := range order {
		res, ok := results[purl]
		if !ok {
			fmt.Fprintf(w, "%s\tnot found\n", purl)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", purl, display(res))
	}
	return nil
}
