package processor

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

const statusTimeout = 5 * time.Second

type ServiceStatus struct {
	OK        bool   `json:"ok"`
	Detail    string `json:"detail,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

type Status struct {
	OK      bool          `json:"ok"`
	Scraper ServiceStatus `json:"scraper"`
	Advisor ServiceStatus `json:"advisor"`
}

// Status checks that both collaborators are reachable. The checks run
// concurrently and each gets its own five-second budget.
func (p *Processor) Status(ctx context.Context) Status {
	var st Status

	var eg errgroup.Group
	eg.Go(func() error {
		st.Scraper = timed(ctx, func(ctx context.Context) (string, error) {
			return "", p.scraper.Ping(ctx)
		})
		return nil
	})
	eg.Go(func() error {
		st.Advisor = timed(ctx, func(ctx context.Context) (string, error) {
			h, err := p.advisor.Health(ctx)
			if err == nil && h.Status != "" && h.Status != "healthy" {
				return h.Status, errUnhealthy
			}
			return h.Status, err
		})
		return nil
	})
	_ = eg.Wait()

	st.OK = st.Scraper.OK && st.Advisor.OK
	if !st.OK {
		p.log.WithField("scraper_ok", st.Scraper.OK).
			WithField("advisor_ok", st.Advisor.OK).
			Warn("some collaborators are unavailable")
	}
	return st
}

var errUnhealthy = errors.New("service reports unhealthy")

func timed(ctx context.Context, check func(context.Context) (string, error)) ServiceStatus {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()
	start := time.Now()
	detail, err := check(ctx)
	s := ServiceStatus{OK: err == nil, Detail: detail, LatencyMs: time.Since(start).Milliseconds()}
	if err != nil && s.Detail == "" {
		s.Detail = err.Error()
	}
	return s
}
