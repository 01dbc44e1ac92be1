package core

import (
	"context"
	"sync"
)

const defaultConcurrency = 15

// BulkResolve resolves multiple PURLs in parallel.
// Individual failures are silently ignored - those PURLs are omitted from results.
// Returns a map of PURL to Result.
func BulkResolve(ctx context.Context, purls []string, client *Client, q Query) map[string]*Result {
	return BulkResolveWithConcurrency(ctx, purls, client, q, defaultConcurrency)
}

// BulkResolveWithConcurrency resolves PURLs with a custom concurrency limit.
func BulkResolveWithConcurrency(ctx context.Context, purls []string, client *Client, q Query, concurrency int) map[string]*Result {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make(map[string]*Result)
	var mu sync.Mutex
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, purl := range purls {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			res, err := ResolveFromPURL(ctx, p, client, q)
			if err == nil && res != nil {
				mu.Lock()
				results[p] = res
				mu.Unlock()
			}
		}(purl)
	}

	wg.Wait()
	return results
}
