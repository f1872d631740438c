// Package types holds the result types shared by the drivers and the
// renderers.
package types

import (
	"time"

	"github.com/arthur-debert/delegate/pkg/errors"
)

// Check is one expectation verified by the demo driver
type Check struct {
	Section  string `json:"section" yaml:"section" toml:"section"`
	Name     string `json:"name" yaml:"name" toml:"name"`
	Expected string `json:"expected" yaml:"expected" toml:"expected"`
	Got      string `json:"got" yaml:"got" toml:"got"`
	Passed   bool   `json:"passed" yaml:"passed" toml:"passed"`
}

// DemoReport is the outcome of a demo run
type DemoReport struct {
	Sections []string      `json:"sections" yaml:"sections" toml:"sections"`
	Output   []string      `json:"output" yaml:"output" toml:"output"`
	Checks   []Check       `json:"checks" yaml:"checks" toml:"checks"`
	Duration time.Duration `json:"duration" yaml:"duration" toml:"duration"`
}

// Failed returns the checks that did not pass
func (r *DemoReport) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// OK reports whether every check passed
func (r *DemoReport) OK() bool {
	return len(r.Failed()) == 0
}

// BenchRun is one timed loop of the benchmark driver
type BenchRun struct {
	Name       string        `json:"name" yaml:"name" toml:"name"`
	Targets    int           `json:"targets" yaml:"targets" toml:"targets"`
	Iterations int           `json:"iterations" yaml:"iterations" toml:"iterations"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed" toml:"elapsed"`
	NsPerOp    float64       `json:"nsPerOp" yaml:"nsPerOp" toml:"ns_per_op"`
	Value      int           `json:"value" yaml:"value" toml:"value"`
	Expected   int           `json:"expected" yaml:"expected" toml:"expected"`
}

// Verified reports whether the run produced the expected value
func (r BenchRun) Verified() bool {
	return r.Value == r.Expected
}

// BenchReport is the outcome of a benchmark run
type BenchReport struct {
	Iterations int        `json:"iterations" yaml:"iterations" toml:"iterations"`
	Warmup     int        `json:"warmup" yaml:"warmup" toml:"warmup"`
	IDScope    string     `json:"idScope" yaml:"idScope" toml:"id_scope"`
	Runs       []BenchRun `json:"runs" yaml:"runs" toml:"runs"`
}

// Ratio returns how many times slower run name is than the baseline run.
// It returns 0 when either run is missing or the baseline took no time.
func (r *BenchReport) Ratio(name, baseline string) float64 {
	var target, base *BenchRun
	for i := range r.Runs {
		switch r.Runs[i].Name {
		case name:
			target = &r.Runs[i]
		case baseline:
			base = &r.Runs[i]
		}
	}
	if target == nil || base == nil || base.NsPerOp == 0 {
		return 0
	}
	return target.NsPerOp / base.NsPerOp
}

// ErrorReport is a failed run as the structured formats render it
type ErrorReport struct {
	Code    string                 `json:"code" yaml:"code" toml:"code"`
	Error   string                 `json:"error" yaml:"error" toml:"error"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
}

// NewErrorReport captures err's code, text and details
func NewErrorReport(err error) *ErrorReport {
	return &ErrorReport{
		Code:    string(errors.GetErrorCode(err)),
		Error:   err.Error(),
		Details: errors.GetErrorDetails(err),
	}
}

// MessageReport is a status line as the structured formats render it
type MessageReport struct {
	Message string `json:"message" yaml:"message" toml:"message"`
}
