// Package winget resolves package versions from the manifests in the
// microsoft/winget-pkgs repository.
package winget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/git-pkgs/versionbadge/internal/core"
)

const (
	DefaultURL = "https://api.github.com"
	ecosystem  = "winget"

	manifestOwner = "microsoft"
	manifestRepo  = "winget-pkgs"
)

func init() {
	core.Register(ecosystem, DefaultURL, func(baseURL string, client *core.Client) core.Source {
		return New(baseURL, client)
	})
}

// The listing is two levels deep: version directories and their files.
const manifestQuery = `query ($owner: String!, $repo: String!, $expression: String!) {
  repository(owner: $owner, name: $repo) {
    object(expression: $expression) {
      ... on Tree {
        entries {
          type
          name
          object {
            ... on Tree {
              entries {
                type
                name
              }
            }
          }
        }
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

// ManifestPath returns the directory holding a package's manifests,
// e.g. "manifests/m/Microsoft/WSL" for "Microsoft.WSL".
func ManifestPath(pkg string) string {
	if pkg == "" {
		return "manifests"
	}
	first, _ := utf8.DecodeRuneInString(pkg)
	return fmt.Sprintf("manifests/%c/%s", unicode.ToLower(first), strings.ReplaceAll(pkg, ".", "/"))
}

type entry struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Object *struct {
		Entries []entry `json:"entries"`
	} `json:"object"`
}

type manifestResponse struct {
	Data struct {
		Repository *struct {
			Object *struct {
				Entries []entry `json:"entries"`
			} `json:"object"`
		} `json:"repository"`
	} `json:"data"`
	Errors []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"errors"`
}

func toNodes(entries []entry) []TreeNode {
	if entries == nil {
		return nil
	}
	nodes := make([]TreeNode, len(entries))
	for i, e := range entries {
		nodes[i] = TreeNode{Type: e.Type, Name: e.Name}
		if e.Object != nil {
			nodes[i].Children = toNodes(e.Object.Entries)
		}
	}
	return nodes
}

// Resolve returns the latest version of the winget package identifier name.
func (s *Source) Resolve(ctx context.Context, name string, q core.Query) (*core.Result, error) {
	notFound := &core.NotFoundError{Kind: core.UnknownParent, Subject: "package", Ecosystem: ecosystem, Name: name}
	if name == "" {
		return nil, notFound
	}

	path := ManifestPath(name)
	req := map[string]any{
		"query": manifestQuery,
		"variables": map[string]any{
			"owner":      manifestOwner,
			"repo":       manifestRepo,
			"expression": "HEAD:" + path,
		},
	}

	var resp manifestResponse
	if err := s.client.PostJSON(ctx, s.baseURL+"/graphql", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("github graphql: %s", resp.Errors[0].Message)
	}
	if resp.Data.Repository == nil || resp.Data.Repository.Object == nil {
		return nil, notFound
	}

	root := TreeNode{Type: TypeTree, Name: path, Children: toNodes(resp.Data.Repository.Object.Entries)}
	versions, err := Versions(root, name)
	if err != nil {
		return nil, err
	}

	slog.Debug("walked winget manifests", "package", name, "path", path, "entries", len(root.Children), "versions", len(versions))

	return &core.Result{
		Name:     name,
		Version:  versions[len(versions)-1],
		Versions: versions,
	}, nil
}

type URLs struct{}

func (u *URLs) Registry(name, version string) string {
	url := fmt.Sprintf("https://github.com/%s/%s/tree/master/%s", manifestOwner, manifestRepo, ManifestPath(name))
	if version != "" {
		url += "/" + version
	}
	return url
}

func (u *URLs) Documentation(name, version string) string {
	return ""
}

func (u *URLs) PURL(name, version string) string {
	if version != "" {
		return fmt.Sprintf("pkg:winget/%s@%s", name, version)
	}
	return fmt.Sprintf("pkg:winget/%s", name)
}
