package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tartampluch/go-saju/internal/config"
	"golang.org/x/sync/errgroup"
)

// Result pairs a profile with its chart.
type Result struct {
	UID   string `json:"uid" yaml:"uid"`
	Chart *Chart `json:"chart" yaml:"chart"`
}

// CalculateBatch computes one chart per profile with at most workers charts in
// flight. Results keep the input order. Sink failures do not stop the batch;
// they are joined into the returned error.
func (c *Calculator) CalculateBatch(ctx context.Context, profiles []Profile, workers int) ([]Result, error) {
	if len(profiles) == 0 {
		return nil, errors.New(config.ErrBatchEmpty)
	}
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	results := make([]Result, len(profiles))
	sinkErrs := make([]error, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chart := c.Compute(gctx, p.Birth)
			results[i] = Result{UID: p.UID, Chart: chart}
			sinkErrs[i] = c.save(gctx, chart)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info(config.MsgBatchDone,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyCount, len(results),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return results, errors.Join(sinkErrs...)
}
