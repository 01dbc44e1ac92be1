// Package github resolves the latest tag of a GitHub repository through the
// GraphQL API.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/git-pkgs/versionbadge/internal/core"
)

const (
	DefaultURL = "https://api.github.com"
	ecosystem  = "github"
)

func init() {
	core.Register(ecosystem, DefaultURL, func(baseURL string, client *core.Client) core.Source {
		return New(baseURL, client)
	})
}

const tagsQuery = `query ($user: String!, $repo: String!, $limit: Int!) {
  repository(owner: $user, name: $repo) {
    refs(
      refPrefix: "refs/tags/"
      first: $limit
      orderBy: { field: TAG_COMMIT_DATE, direction: DESC }
    ) {
      edges {
        node {
          name
          target {
            oid
          }
        }
      }
    }
    submodules(first: 100) {
      nodes {
        name
        branch
      }
    }
  }
}`

type Source struct {
	baseURL string
	client  *core.Client
	urls    *URLs
}

func New(baseURL string, client *core.Client) *Source {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Source{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		urls:    &URLs{},
	}
}

func (s *Source) Ecosystem() string {
	return ecosystem
}

func (s *Source) URLs() core.URLBuilder {
	return s.urls
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type tagsResponse struct {
	Data struct {
		Repository *struct {
			Refs struct {
				Edges []struct {
					Node struct {
						Name   string `json:"name"`
						Target struct {
							OID string `json:"oid"`
						} `json:"target"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"refs"`
			Submodules struct {
				Nodes []struct {
					Name   string `json:"name"`
					Branch string `json:"branch"`
				} `json:"nodes"`
			} `json:"submodules"`
		} `json:"repository"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

func splitRepo(name string) (user, repo string, err error) {
	user, repo, ok := strings.Cut(name, "/")
	if !ok || user == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q, want owner/repo", name)
	}
	return user, repo, nil
}

// Resolve selects the latest tag of the "owner/repo" named by name.
func (s *Source) Resolve(ctx context.Context, name string, q core.Query) (*core.Result, error) {
	user, repo, err := splitRepo(name)
	if err != nil {
		return nil, err
	}

	limit := Limit(q.Sort, q.Filter)
	req := graphqlRequest{
		Query:     tagsQuery,
		Variables: map[string]any{"user": user, "repo": repo, "limit": limit},
	}

	var resp tagsResponse
	if err := s.client.PostJSON(ctx, s.baseURL+"/graphql", req, &resp); err != nil {
		return nil, err
	}

	for _, e := range resp.Errors {
		if e.Type == "NOT_FOUND" {
			return nil, &core.NotFoundError{Kind: core.UnknownParent, Subject: "repo", Ecosystem: ecosystem, Name: name}
		}
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("github graphql: %s", resp.Errors[0].Message)
	}
	if resp.Data.Repository == nil {
		return nil, &core.NotFoundError{Kind: core.UnknownParent, Subject: "repo", Ecosystem: ecosystem, Name: name}
	}

	r := resp.Data.Repository
	tags := make([]string, 0, len(r.Refs.Edges))
	for _, e := range r.Refs.Edges {
		tags = append(tags, e.Node.Name)
	}
	submodules := make([]string, 0, len(r.Submodules.Nodes))
	for _, n := range r.Submodules.Nodes {
		submodules = append(submodules, n.Name)
	}

	slog.Debug("fetched github tags", "repo", name, "limit", limit, "tags", len(tags), "submodules", len(submodules), "sort", q.Sort)

	sel, err := SelectTag(tags, submodules, q)
	if err != nil {
		return nil, err
	}

	return &core.Result{
		Name:    name,
		Version: sel.Version,
		Tag:     sel.Tag,
		Metadata: map[string]any{
			"limit":      limit,
			"candidates": len(tags),
		},
	}, nil
}

type URLs struct{}

func (u *URLs) Registry(name, version string) string {
	if version != "" {
		return fmt.Sprintf("https://github.com/%s/releases/tag/%s", name, version)
	}
	return fmt.Sprintf("https://github.com/%s/tags", name)
}

func (u *URLs) Documentation(name, version string) string {
	return ""
}

func (u *URLs) PURL(name, version string) string {
	if version != "" {
		return fmt.Sprintf("pkg:github/%s@%s", strings.ToLower(name), version)
	}
	return fmt.Sprintf("pkg:github/%s", strings.ToLower(name))
}
