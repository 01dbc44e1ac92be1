// Package rubygems resolves the latest release of a gem on rubygems.org.
package rubygems

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/git-pkgs/versionbadge/internal/core"
)

const (
	DefaultURL = "https://rubygems.org"
	ecosystem  = "gem"
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

type versionResponse struct {
	Number     string   `json:"number"`
	Platform   string   `json:"platform"`
	CreatedAt  string   `json:"created_at"`
	Licenses   []string `json:"licenses"`
	Prerelease bool     `json:"prerelease"`
}

// Latest returns the highest stable semantic version in versions.
// Pre-releases and versions that are not valid semver are skipped.
func Latest(versions []string) (string, error) {
	latest, ok, err := core.MaxSatisfying(versions, ">0")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", core.NoCandidatesError("versions", false)
	}
	return latest, nil
}

// Resolve returns the latest stable release of the gem name.
func (s *Source) Resolve(ctx context.Context, name string, q core.Query) (*core.Result, error) {
	url := fmt.Sprintf("%s/api/v1/versions/%s.json", s.baseURL, name)

	var resp []versionResponse
	if err := s.client.GetJSON(ctx, url, &resp); err != nil {
		var httpErr *core.HTTPError
		if errors.As(err, &httpErr) && httpErr.IsNotFound() {
			return nil, &core.NotFoundError{Kind: core.UnknownParent, Subject: "gem", Ecosystem: ecosystem, Name: name}
		}
		return nil, err
	}

	numbers := make([]string, 0, len(resp))
	for _, v := range resp {
		numbers = append(numbers, v.Number)
	}

	latest, err := Latest(numbers)
	if err != nil {
		return nil, err
	}

	slog.Debug("resolved gem", "name", name, "versions", len(numbers), "latest", latest)

	res := &core.Result{
		Name:     name,
		Version:  latest,
		Versions: core.SortDotted(numbers),
	}
	for _, v := range resp {
		if v.Number == latest {
			res.Licenses = v.Licenses
			res.Metadata = map[string]any{
				"platform":   v.Platform,
				"created_at": v.CreatedAt,
			}
			break
		}
	}
	return res, nil
}

type URLs struct {
	baseURL string
}

func (u *URLs) Registry(name, version string) string {
	if version != "" {
		return fmt.Sprintf("%s/gems/%s/versions/%s", u.baseURL, name, version)
	}
	return fmt.Sprintf("%s/gems/%s", u.baseURL, name)
}

func (u *URLs) Documentation(name, version string) string {
	if version != "" {
		return fmt.Sprintf("https://www.rubydoc.info/gems/%s/%s", name, version)
	}
	return fmt.Sprintf("https://www.rubydoc.info/gems/%s", name)
}

func (u *URLs) PURL(name, version string) string {
	if version != "" {
		return fmt.Sprintf("pkg:gem/%s@%s", name, version)
	}
	return fmt.Sprintf("pkg:gem/%s", name)
}
