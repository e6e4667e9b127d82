package experiment

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/molvib/internal/config"
	"github.com/san-kum/molvib/internal/metrics"
)

// RunAll plays each scenario on its own lab in parallel, with the default
// metrics attached. Results come back in scenario order. When ctx is
// cancelled the partial results are returned together with the error.
func RunAll(ctx context.Context, cfg *config.Config, scenarios []*config.Scenario, opts ...Option) ([]*Result, error) {
	exps := make([]*Experiment, len(scenarios))
	for i, sc := range scenarios {
		exp, err := New(cfg, sc, opts...)
		if err != nil {
			return nil, err
		}
		for _, m := range metrics.Defaults() {
			exp.AddMetric(m)
		}
		exps[i] = exp
	}

	results := make([]*Result, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	for i, exp := range exps {
		g.Go(func() error {
			res, err := exp.Run(ctx)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
