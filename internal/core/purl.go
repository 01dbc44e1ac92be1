package core

import (
	"context"
	"fmt"

	packageurl "github.com/package-url/packageurl-go"
)

// PURL wraps packageurl.PackageURL with source-specific helpers.
type PURL struct {
	packageurl.PackageURL
}

// FullName returns the package name in the form the source expects.
// For github: "badges/shields", for winget: "Microsoft.WSL".
func (p PURL) FullName() string {
	if p.Namespace == "" {
		return p.Name
	}

	switch p.Type {
	case "winget":
		// winget identifiers are dotted; a namespace is the publisher segment
		return p.Namespace + "." + p.Name
	default:
		return p.Namespace + "/" + p.Name
	}
}

// WithQualifier returns the PURL as a string with qualifier key set to
// value, replacing any existing value.
func (p PURL) WithQualifier(key, value string) string {
	qs := make(packageurl.Qualifiers, 0, len(p.Qualifiers)+1)
	for _, q := range p.Qualifiers {
		if q.Key != key {
			qs = append(qs, q)
		}
	}
	p.Qualifiers = append(qs, packageurl.Qualifier{Key: key, Value: value})
	return p.ToString()
}

// ParsePURL parses a Package URL string into its components.
func ParsePURL(purl string) (*PURL, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return nil, err
	}
	return &PURL{p}, nil
}

// NewFromPURL creates a source from a PURL and returns the full package name.
// A repository_url qualifier overrides the default API URL.
func NewFromPURL(purl string, client *Client) (Source, string, error) {
	p, err := ParsePURL(purl)
	if err != nil {
		return nil, "", err
	}

	baseURL := p.Qualifiers.Map()["repository_url"]

	src, err := New(p.Type, baseURL, client)
	if err != nil {
		return nil, "", err
	}

	return src, p.FullName(), nil
}

// ResolveFromPURL resolves the package a PURL names. A version in the PURL
// is ignored; the query decides what gets picked.
func ResolveFromPURL(ctx context.Context, purl string, client *Client, q Query) (*Result, error) {
	src, name, err := NewFromPURL(purl, client)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", purl, err)
	}
	return src.Resolve(ctx, name, q)
}
