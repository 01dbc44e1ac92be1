package pypi

import (
	"regexp"
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"
)

// DefaultMaxLicenseNameLength is the length at which a license field is
// assumed to hold the full license text rather than its name.
const DefaultMaxLicenseNameLength = 40

// Info is the subset of a package's metadata used to detect its licenses.
type Info struct {
	License           string
	LicenseExpression string
	Classifiers       []string
}

// LicenseRule maps license phrases matching Pattern to ID. ID may reference
// capture groups of Pattern, e.g. "$1".
type LicenseRule struct {
	Pattern *regexp.Regexp
	ID      string
}

func phrase(p, id string) LicenseRule {
	return LicenseRule{Pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(p) + `$`), ID: id}
}

// LicenseTable is an ordered list of rules; the first matching rule wins.
type LicenseTable []LicenseRule

// DefaultLicenseTable maps the final segment of "License :: ..." classifiers
// to short identifiers.
var DefaultLicenseTable = LicenseTable{
	phrase("Apache Software License", "Apache-2.0"),
	phrase("CC0 1.0 Universal (CC0 1.0) Public Domain Dedication", "CC0-1.0"),
	phrase("GNU Affero General Public License v3", "AGPL-3.0"),
	phrase("GNU Affero General Public License v3 or later (AGPLv3+)", "AGPL-3.0-or-later"),
	phrase("GNU General Public License v2 (GPLv2)", "GPL-2.0"),
	phrase("GNU General Public License v2 or later (GPLv2+)", "GPL-2.0-or-later"),
	phrase("GNU General Public License v3 (GPLv3)", "GPL-3.0"),
	phrase("GNU General Public License v3 or later (GPLv3+)", "GPL-3.0-or-later"),
	phrase("GNU Lesser General Public License v2 (LGPLv2)", "LGPL-2.0"),
	phrase("GNU Lesser General Public License v3 (LGPLv3)", "LGPL-3.0"),
	phrase("ISC License (ISCL)", "ISC"),
	phrase("Mozilla Public License 2.0 (MPL 2.0)", "MPL-2.0"),
	phrase("Python Software Foundation License", "PSF-2.0"),
	phrase("The Unlicense (Unlicense)", "Unlicense"),
	phrase("Zero-Clause BSD (0BSD)", "0BSD"),
	phrase("Public Domain", "Public Domain"),
	{Pattern: regexp.MustCompile(`\(([A-Za-z0-9][A-Za-z0-9.+-]*)\)$`), ID: "$1"},
	{Pattern: regexp.MustCompile(`^([A-Z][A-Z0-9]+) License$`), ID: "$1"},
}

// Lookup maps a single license phrase to an identifier. Phrases no rule
// covers are accepted when they are already valid SPDX identifiers.
func (t LicenseTable) Lookup(phrase string) (string, bool) {
	for _, rule := range t {
		m := rule.Pattern.FindStringSubmatchIndex(phrase)
		if m == nil {
			continue
		}
		return string(rule.Pattern.ExpandString(nil, rule.ID, phrase, m)), true
	}
	if valid, _ := spdxexp.ValidateLicenses([]string{phrase}); valid {
		return phrase, true
	}
	return "", false
}

// LicenseResolver picks the licenses of a package from its metadata.
type LicenseResolver struct {
	// MaxNameLength separates a license name from an inlined license text.
	// Zero means DefaultMaxLicenseNameLength.
	MaxNameLength int
	// Table maps classifier phrases. Nil means DefaultLicenseTable.
	Table LicenseTable
}

var licenseClassifier = regexp.MustCompile(`^License :: (.+)$`)

// Resolve applies, in order: the license expression verbatim, a short
// license field verbatim, then every license classifier mapped through the
// table. Unknown classifier phrases are dropped and results are deduplicated.
func (r LicenseResolver) Resolve(info Info) []string {
	if info.LicenseExpression != "" {
		return []string{info.LicenseExpression}
	}

	limit := r.MaxNameLength
	if limit <= 0 {
		limit = DefaultMaxLicenseNameLength
	}
	if info.License != "" && len(info.License) < limit {
		return []string{info.License}
	}

	table := r.Table
	if table == nil {
		table = DefaultLicenseTable
	}

	var out []string
	seen := map[string]bool{}
	for _, c := range ParseClassifiers(info.Classifiers, licenseClassifier, PreserveCase()) {
		segments := strings.Split(c, " :: ")
		id, ok := table.Lookup(segments[len(segments)-1])
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Licenses resolves licenses with the default threshold and table.
func Licenses(info Info) []string {
	return LicenseResolver{}.Resolve(info)
}

// ValidLicenses reports whether every id is a known SPDX license and
// returns the ones that are not.
func ValidLicenses(ids []string) (bool, []string) {
	if len(ids) == 0 {
		return false, nil
	}
	return spdxexp.ValidateLicenses(ids)
}
