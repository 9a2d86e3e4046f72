package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
)

// ProgressFunc is called as sweep jobs finish.
// current is the number of runs completed so far, total is the total count.
type ProgressFunc func(current, total int)

// SweepOptions narrows and tunes a sweep. Empty name lists mean every
// scenario or strategy in the config catalogue.
type SweepOptions struct {
	Scenarios  []string
	Strategies []string
	Workers    int
	Progress   ProgressFunc
	Logger     *zap.Logger
}

type sweepJob struct {
	scenario config.LoanScenario
	strategy string
}

// Sweep runs every scenario x strategy pair in a bounded worker pool. Each
// job gets its own config value and its own random source seeded from
// cfg.General.Seed, so results match single runs. A failed run is reported
// in its Outcome rather than aborting the sweep.
func Sweep(ctx context.Context, cfg config.Config, opts SweepOptions) ([]model.Outcome, error) {
	jobs, err := sweepJobs(cfg, opts)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	numWorkers := opts.Workers
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}

	work := make(chan int, len(jobs))
	results := make([]model.Outcome, len(jobs))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range jobs {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = runJob(ctx, cfg, jobs[idx], logger)
				n := processed.Add(1)
				if opts.Progress != nil {
					opts.Progress(int(n), len(jobs))
				}
			}
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("sweep cancelled: %w", err)
	}
	return results, nil
}

func runJob(ctx context.Context, cfg config.Config, job sweepJob, logger *zap.Logger) model.Outcome {
	out := model.Outcome{Scenario: job.scenario.Name, Strategy: job.strategy}
	c := cfg.WithLoan(job.scenario.Name, job.strategy)

	records, err := engine.Run(ctx, c, engine.NewRandom(c.General.Seed),
		engine.WithLogger(logger.With(zap.String("scenario", job.scenario.Name), zap.String("strategy", job.strategy))))
	if err != nil {
		out.Err = err
		return out
	}
	out.Summary = Summarize(records, job.scenario.Amount)
	return out
}

func sweepJobs(cfg config.Config, opts SweepOptions) ([]sweepJob, error) {
	scenarios := cfg.Loan.Scenarios
	if len(opts.Scenarios) > 0 {
		scenarios = make([]config.LoanScenario, 0, len(opts.Scenarios))
		for _, name := range opts.Scenarios {
			s, err := cfg.LookupScenario(name)
			if err != nil {
				return nil, err
			}
			scenarios = append(scenarios, s)
		}
	}

	strategies := make([]string, 0, len(cfg.Loan.Strategies))
	if len(opts.Strategies) > 0 {
		for _, name := range opts.Strategies {
			s, err := cfg.LookupStrategy(name)
			if err != nil {
				return nil, err
			}
			strategies = append(strategies, s.Name)
		}
	} else {
		for _, s := range cfg.Loan.Strategies {
			strategies = append(strategies, s.Name)
		}
	}

	jobs := make([]sweepJob, 0, len(scenarios)*len(strategies))
	for _, sc := range scenarios {
		for _, st := range strategies {
			jobs = append(jobs, sweepJob{scenario: sc, strategy: st})
		}
	}
	return jobs, nil
}
