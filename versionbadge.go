// Package versionbadge resolves the version a badge should show for a
// package or repository.
//
// Each ecosystem is a Source that fetches upstream data and applies a
// resolution policy: tag filtering and selection for GitHub, classifier and
// license extraction for PyPI, manifest tree walking for winget and semver
// selection for RubyGems.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/git-pkgs/versionbadge"
//		_ "github.com/git-pkgs/versionbadge/all"
//	)
//
//	res, err := versionbadge.ResolveFromPURL(ctx, "pkg:github/badges/shields", nil,
//		versionbadge.Query{Sort: versionbadge.SortSemver})
//	if versionbadge.IsNotFound(err) {
//		// render a "not found" badge
//	}
//	fmt.Println(res.Tag)
package versionbadge

import (
	"context"
	"errors"

	"github.com/git-pkgs/purl"
	"github.com/git-pkgs/versionbadge/client"
	"github.com/git-pkgs/versionbadge/internal/core"
)

// Re-export types from internal/core
type (
	// Source is the interface implemented by every ecosystem.
	Source = core.Source

	// Query carries the resolution policy for one request.
	Query = core.Query

	// Result is a resolved version plus derived metadata.
	Result = core.Result

	// Sort names a tag ordering policy.
	Sort = core.Sort

	// NotFoundError reports a resolution that produced nothing.
	NotFoundError = core.NotFoundError

	// NotFoundKind classifies a NotFoundError.
	NotFoundKind = core.NotFoundKind
)

// Re-export types from client
type (
	// Client is an HTTP client with retry logic for upstream APIs.
	Client = client.Client

	// URLBuilder constructs URLs for a source.
	URLBuilder = client.URLBuilder
)

// Re-export constants
const (
	SortDate   = core.SortDate
	SortSemver = core.SortSemver

	NoCandidates     = core.NoCandidates
	UnknownQualifier = core.UnknownQualifier
	UnknownParent    = core.UnknownParent
)

// Re-export errors
var (
	ErrNotFound = core.ErrNotFound
)

// Error types
type (
	HTTPError      = client.HTTPError
	RateLimitError = client.RateLimitError
)

// IsNotFound reports whether err is any resolution not-found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}

// IsNotFoundKind reports whether err is a not-found condition of kind.
func IsNotFoundKind(err error, kind NotFoundKind) bool {
	return core.IsNotFound(err, kind)
}

// ParseSort maps a query value to a Sort, defaulting to SortDate.
func ParseSort(s string) Sort {
	return core.ParseSort(s)
}

// New creates a source for the given ecosystem.
// If baseURL is empty, the default API URL is used.
// If client is nil, DefaultClient() is used.
//
// Supported ecosystems: "github", "gem", "pypi", "winget"
func New(ecosystem string, baseURL string, c *Client) (Source, error) {
	return core.New(ecosystem, baseURL, c)
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// Option configures a Client.
type Option = client.Option

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithMaxRetries sets the maximum number of retries.
var WithMaxRetries = client.WithMaxRetries

// SupportedSources returns all registered ecosystem types.
// Note: ecosystems must be imported to be registered.
func SupportedSources() []string {
	return core.SupportedSources()
}

// BuildURLs returns a map of all non-empty URLs for a package.
// Keys are "registry", "docs", and "purl".
func BuildURLs(urls URLBuilder, name, version string) map[string]string {
	return client.BuildURLs(urls, name, version)
}

// DefaultURL returns the default API URL for an ecosystem.
func DefaultURL(ecosystem string) string {
	return core.DefaultURL(ecosystem)
}

// PURL represents a parsed Package URL.
type PURL = purl.PURL

// ParsePURL parses a Package URL string into its components.
// Supports both package PURLs (pkg:pypi/django) and version PURLs (pkg:pypi/django@4.2).
func ParsePURL(purlStr string) (*PURL, error) {
	return purl.Parse(purlStr)
}

// NewFromPURL creates a source from a PURL and returns the full package name.
func NewFromPURL(purl string, c *Client) (Source, string, error) {
	return core.NewFromPURL(purl, c)
}

// ResolveFromPURL resolves the package or repository a PURL names under q.
func ResolveFromPURL(ctx context.Context, purl string, c *Client, q Query) (*Result, error) {
	return core.ResolveFromPURL(ctx, purl, c, q)
}

// BulkResolve resolves many PURLs concurrently. Failed PURLs are omitted.
func BulkResolve(ctx context.Context, purls []string, c *Client, q Query) map[string]*Result {
	return core.BulkResolve(ctx, purls, c, q)
}

// BulkResolveWithConcurrency is BulkResolve with a custom concurrency limit.
func BulkResolveWithConcurrency(ctx context.Context, purls []string, c *Client, q Query, concurrency int) map[string]*Result {
	return core.BulkResolveWithConcurrency(ctx, purls, c, q, concurrency)
}
