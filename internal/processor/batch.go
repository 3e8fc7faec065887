package processor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent analyses in AnalyzeAll. The scrape
// service drives a browser per request, so keep it small.
const DefaultWorkers = 2

// AnalyzeAll runs Analyze for every request with at most workers in flight.
// Results keep the order of reqs. Per-listing failures are recorded in
// Result.Error; the returned count says how many failed.
func (p *Processor) AnalyzeAll(ctx context.Context, reqs []Request, workers int) ([]Result, int) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	results := make([]Result, len(reqs))
	failed := make([]bool, len(reqs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, req := range reqs {
		i, req := i, req
		eg.Go(func() error {
			res, err := p.Analyze(egCtx, req)
			if err != nil {
				p.log.WithField("url", req.URL).WithError(err).Warn("listing failed")
				failed[i] = true
			}
			results[i] = res
			return nil
		})
	}
	_ = eg.Wait()

	n := 0
	for _, f := range failed {
		if f {
			n++
		}
	}
	return results, n
}
