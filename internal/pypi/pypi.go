// Package pypi resolves versions, licenses and classifier facets for
// packages on pypi.org.
package pypi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/git-pkgs/versionbadge/internal/core"
)

const (
	DefaultURL = "https://pypi.org"
	ecosystem  = "pypi"
)

func init() {
	core.Register(ecosystem, DefaultURL, func(baseURL string, client *core.Client) core.Source {
		return New(baseURL, client)
	})
}

type Source struct {
	baseURL string
	client  *core.Client
	urls    *URLs
}

func New(baseURL string, client *core.Client) *Source {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	s := &Source{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
	s.urls = &URLs{baseURL: s.baseURL}
	return s
}

func (s *Source) Ecosystem() string {
	return ecosystem
}

func (s *Source) URLs() core.URLBuilder {
	return s.urls
}

type packageResponse struct {
	Info     infoBlock         `json:"info"`
	URLs     []File            `json:"urls"`
	Releases map[string][]File `json:"releases"`
}

type infoBlock struct {
	Name              string   `json:"name"`
	Version           string   `json:"version"`
	License           string   `json:"license"`
	LicenseExpression string   `json:"license_expression"`
	Classifiers       []string `json:"classifiers"`
	RequiresPython    string   `json:"requires_python"`
}

// fetch returns the decoded JSON document for a package.
func (s *Source) fetch(ctx context.Context, name string) (*packageResponse, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", s.baseURL, name)

	var resp packageResponse
	if err := s.client.GetJSON(ctx, url, &resp); err != nil {
		var httpErr *core.HTTPError
		if errors.As(err, &httpErr) && httpErr.IsNotFound() {
			return nil, &core.NotFoundError{Kind: core.UnknownParent, Subject: "package", Ecosystem: ecosystem, Name: name}
		}
		return nil, err
	}
	return &resp, nil
}

// Resolve returns the current version of a package together with its
// licenses, supported Python and Django versions, implementations and
// distribution formats.
func (s *Source) Resolve(ctx context.Context, name string, q core.Query) (*core.Result, error) {
	resp, err := s.fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	info := Info{
		License:           resp.Info.License,
		LicenseExpression: resp.Info.LicenseExpression,
		Classifiers:       resp.Info.Classifiers,
	}
	licenses := LicenseResolver{MaxNameLength: q.MaxLicenseNameLength}.Resolve(info)
	spdxValid, _ := ValidLicenses(licenses)
	formats := DetectPackageFormats(resp.URLs)

	versions := SortVersions(slices.Collect(maps.Keys(resp.Releases)))

	slog.Debug("resolved pypi package", "name", name, "version", resp.Info.Version, "releases", len(versions), "licenses", licenses)

	return &core.Result{
		Name:     resp.Info.Name,
		Version:  resp.Info.Version,
		Versions: versions,
		Licenses: licenses,
		Metadata: map[string]any{
			"python_versions": PythonVersions(resp.Info.Classifiers),
			"django_versions": DjangoVersions(resp.Info.Classifiers),
			"implementations": Implementations(resp.Info.Classifiers),
			"has_wheel":       formats.HasWheel,
			"has_egg":         formats.HasEgg,
			"requires_python": resp.Info.RequiresPython,
			"spdx_valid":      spdxValid,
			"normalized_name": normalizeName(resp.Info.Name),
		},
	}, nil
}

func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	return name
}

type URLs struct {
	baseURL string
}

func (u *URLs) Registry(name, version string) string {
	if version != "" {
		return fmt.Sprintf("%s/project/%s/%s/", u.baseURL, name, version)
	}
	return fmt.Sprintf("%s/project/%s/", u.baseURL, name)
}

func (u *URLs) Documentation(name, version string) string {
	if version != "" {
		return fmt.Sprintf("https://%s.readthedocs.io/en/%s/", name, version)
	}
	return fmt.Sprintf("https://%s.readthedocs.io/", name)
}

func (u *URLs) PURL(name, version string) string {
	normalized := normalizeName(name)
	if version != "" {
		return fmt.Sprintf("pkg:pypi/%s@%s", normalized, version)
	}
	return fmt.Sprintf("pkg:pypi/%s", normalized)
}
