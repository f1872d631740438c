// Package demo walks through every registration form of a delegate, invokes
// it, removes each target again and checks the results. Every expectation
// becomes a types.Check in the returned report.
package demo

import (
	"fmt"
	"io"
	"time"

	"github.com/arthur-debert/delegate/pkg/delegate"
	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/arthur-debert/delegate/pkg/logging"
	"github.com/arthur-debert/delegate/pkg/types"
)

// Options configures a demo run
type Options struct {
	// Sections to run, in order. Empty runs all of them.
	Sections []string

	// DelegateOptions are passed to every delegate the demo builds
	DelegateOptions []delegate.Option

	// Output receives the lines printed by targets as they fire. May be nil.
	Output io.Writer
}

type section struct {
	name string
	run  func(r *runner)
}

// Sections returns the names of all sections in their default order
func Sections() []string {
	names := make([]string, len(allSections))
	for i, s := range allSections {
		names[i] = s.name
	}
	return names
}

var allSections = []section{
	{"register", (*runner).register},
	{"invoke", (*runner).invoke},
	{"remove", (*runner).remove},
	{"signal", (*runner).signal},
	{"reentrancy", (*runner).reentrancy},
	{"failures", (*runner).failures},
}

type runner struct {
	opts    []delegate.Option
	log     *transcript
	section string
	checks  []types.Check
}

// Run executes the selected sections. The report is returned even when a
// check fails; the error then carries ErrDemoCheck.
func Run(opts Options) (*types.DemoReport, error) {
	logger := logging.GetLogger("demo")
	done := logging.LogOperationStart(logger, "demo")
	defer done()

	names := opts.Sections
	if len(names) == 0 {
		names = Sections()
	}

	selected := make([]section, 0, len(names))
	for _, name := range names {
		s, ok := lookup(name)
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, "unknown demo section: %s", name).
				WithDetail("known", Sections())
		}
		selected = append(selected, s)
	}

	runMu.Lock()
	defer runMu.Unlock()

	r := &runner{
		opts: opts.DelegateOptions,
		log:  &transcript{w: opts.Output},
	}
	current = r.log
	defer func() { current = nil }()

	start := time.Now()
	for _, s := range selected {
		r.section = s.name
		if opts.Output != nil {
			_, _ = fmt.Fprintf(opts.Output, "%s:\n", s.name)
		}
		logger.Debug().Str("section", s.name).Msg("Running demo section")
		s.run(r)
	}

	report := &types.DemoReport{
		Sections: names,
		Output:   r.log.lines,
		Checks:   r.checks,
		Duration: time.Since(start),
	}

	if failed := report.Failed(); len(failed) > 0 {
		for _, c := range failed {
			logger.Warn().
				Str("section", c.Section).
				Str("check", c.Name).
				Str("expected", c.Expected).
				Str("got", c.Got).
				Msg("Demo check failed")
		}
		return report, errors.Newf(errors.ErrDemoCheck, "%d of %d demo checks failed", len(failed), len(report.Checks)).
			WithDetail("failed", len(failed))
	}

	return report, nil
}

func lookup(name string) (section, bool) {
	for _, s := range allSections {
		if s.name == name {
			return s, true
		}
	}
	return section{}, false
}

// expect records one check. Values are compared by their printed form.
func (r *runner) expect(name string, expected, got interface{}) {
	e, g := fmt.Sprint(expected), fmt.Sprint(got)
	r.checks = append(r.checks, types.Check{
		Section:  r.section,
		Name:     name,
		Expected: e,
		Got:      g,
		Passed:   e == g,
	})
}
