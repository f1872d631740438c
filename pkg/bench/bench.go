// Package bench times a delegate holding three targets against a plain
// slice of funcs doing the same work.
package bench

import (
	"context"
	"time"

	"github.com/arthur-debert/delegate/pkg/delegate"
	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/arthur-debert/delegate/pkg/logging"
	"github.com/arthur-debert/delegate/pkg/types"
)

// Run names
const (
	RunDelegate = "delegate"
	RunBaseline = "baseline"
)

// checkEvery is how many iterations run between context checks
const checkEvery = 1024

// Options configures a benchmark run
type Options struct {
	Iterations int
	Warmup     int

	// Timeout bounds the whole run. Zero means no limit.
	Timeout time.Duration

	// IDScope is only recorded in the report; pass the matching option in
	// DelegateOptions.
	IDScope         string
	DelegateOptions []delegate.Option
}

type loop struct {
	name    string
	targets int
	call    func(*int)
}

// Run warms both loops up, then times opts.Iterations calls of each and
// verifies every target ran once per call.
func Run(ctx context.Context, opts Options) (*types.BenchReport, error) {
	if opts.Iterations <= 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "iterations must be positive, got %d", opts.Iterations)
	}
	if opts.Warmup < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "warmup must not be negative, got %d", opts.Warmup)
	}

	logger := logging.GetLogger("bench")
	done := logging.LogOperationStart(logger, "bench")
	defer done()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	d := newDelegate(opts.DelegateOptions...)
	baseline := newBaseline()

	loops := []loop{
		{name: RunDelegate, targets: d.Count(), call: d.Invoke},
		{name: RunBaseline, targets: len(baseline), call: baseline.invoke},
	}

	report := &types.BenchReport{
		Iterations: opts.Iterations,
		Warmup:     opts.Warmup,
		IDScope:    opts.IDScope,
	}

	for _, l := range loops {
		if _, err := spin(ctx, l.call, opts.Warmup); err != nil {
			return report, timedOut(err, l.name, "warmup")
		}

		start := time.Now()
		value, err := spin(ctx, l.call, opts.Iterations)
		elapsed := time.Since(start)
		if err != nil {
			return report, timedOut(err, l.name, "timed")
		}

		run := types.BenchRun{
			Name:       l.name,
			Targets:    l.targets,
			Iterations: opts.Iterations,
			Elapsed:    elapsed,
			NsPerOp:    float64(elapsed.Nanoseconds()) / float64(opts.Iterations),
			Value:      value,
			Expected:   l.targets * opts.Iterations,
		}
		report.Runs = append(report.Runs, run)

		logger.Debug().
			Str("run", run.Name).
			Dur("elapsed", run.Elapsed).
			Float64("ns_per_op", run.NsPerOp).
			Int("value", run.Value).
			Msg("Benchmark loop finished")

		if !run.Verified() {
			return report, errors.Newf(errors.ErrBenchMismatch, "%s produced %d, expected %d", run.Name, run.Value, run.Expected).
				WithDetail("run", run.Name)
		}
	}

	logger.Info().
		Float64("ratio", report.Ratio(RunDelegate, RunBaseline)).
		Msg("Benchmark complete")

	return report, nil
}

// spin calls call n times on a fresh counter and returns the counter
func spin(ctx context.Context, call func(*int), n int) (int, error) {
	value := 0
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return value, err
			}
		}
		call(&value)
	}
	return value, nil
}

func timedOut(err error, run, phase string) error {
	return errors.Wrapf(err, errors.ErrBenchTimeout, "benchmark stopped during %s %s loop", phase, run).
		WithDetail("run", run)
}
