package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Source is the interface implemented by every ecosystem adapter.
type Source interface {
	// Ecosystem returns the PURL type for this source (e.g., "github", "pypi", "gem").
	Ecosystem() string

	// Resolve fetches upstream data for name and resolves it under q.
	Resolve(ctx context.Context, name string, q Query) (*Result, error)

	// URLs returns the URL builder for this source.
	URLs() URLBuilder
}

// Factory creates a source instance for a given base URL.
type Factory func(baseURL string, client *Client) Source

var (
	factories = make(map[string]Factory)
	defaults  = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a source factory to the global registry.
// ecosystem is the PURL type (e.g., "github", "pypi", "gem", "winget").
// defaultURL is the default API URL for the ecosystem.
func Register(ecosystem string, defaultURL string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[ecosystem] = factory
	defaults[ecosystem] = defaultURL
}

// New creates a new source for the given ecosystem.
// If baseURL is empty, the default API URL is used.
func New(ecosystem string, baseURL string, client *Client) (Source, error) {
	mu.RLock()
	factory, ok := factories[ecosystem]
	defaultURL := defaults[ecosystem]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown ecosystem: %s", ecosystem)
	}

	if baseURL == "" {
		baseURL = defaultURL
	}

	if client == nil {
		client = DefaultClient()
	}

	return factory(baseURL, client), nil
}

// SupportedSources returns all registered ecosystem types, sorted.
func SupportedSources() []string {
	mu.RLock()
	defer mu.RUnlock()

	ecosystems := make([]string, 0, len(factories))
	for eco := range factories {
		ecosystems = append(ecosystems, eco)
	}
	sort.Strings(ecosystems)
	return ecosystems
}

// DefaultURL returns the default API URL for an ecosystem.
func DefaultURL(ecosystem string) string {
	mu.RLock()
	defer mu.RUnlock()
	return defaults[ecosystem]
}
