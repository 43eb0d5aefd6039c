package resolver

import (
	"context"
	"sync"

	"github.com/iridum-cli/iridum/source"
	"github.com/panjf2000/ants/v2"
)

// Result is the outcome of one resolution in a batch.
type Result struct {
	PlayURL    string                  `json:"play_url"`
	Resolution source.StreamResolution `json:"resolution"`
	Err        error                   `json:"-"`
}

// ResolveAll resolves independent play URLs concurrently, at most settings.Workers at a time.
// Results keep the order of playURLs and one failure does not affect the others.
func (c *Chain) ResolveAll(ctx context.Context, playURLs []string) ([]Result, error) {
	results := make([]Result, len(playURLs))
	if len(playURLs) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(max(c.settings.Workers, 1))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, playURL := range playURLs {
		results[i].PlayURL = playURL

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i].Resolution, results[i].Err = c.Resolve(ctx, playURL)
		})
		if err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()

	return results, nil
}
