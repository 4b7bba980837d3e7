package crossing

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dpup/strem/server/internal/lib/geo"
)

// CountAll counts one track against many survey routes in parallel.
// Result i belongs to routes[i]. At most workers routes are processed at
// once; workers <= 0 means GOMAXPROCS.
func CountAll(ctx context.Context, c Counter, track geo.Polyline, routes []geo.Polyline, workers int) ([]int, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	counts := make([]int, len(routes))
	if len(routes) == 0 {
		return counts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range routes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine writes only its own slot
			counts[i] = c.Count(track, routes[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
