// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/arthur-debert/delegate/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.DemoReport:
		return r.renderDemo(v)
	case *types.BenchReport:
		return r.renderBench(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", v)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.output, "Error: %s\n", err)
	return writeErr
}

// RenderMessage renders a simple message as plain text
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) renderDemo(report *types.DemoReport) error {
	for _, line := range report.Output {
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}

	for _, c := range report.Checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		if _, err := fmt.Fprintf(r.output, "%s [%s] %s: expected %s, got %s\n",
			status, c.Section, c.Name, c.Expected, c.Got); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(r.output, "%d checks, %d failed\n", len(report.Checks), len(report.Failed()))
	return err
}

func (r *Renderer) renderBench(report *types.BenchReport) error {
	if _, err := fmt.Fprintf(r.output, "iterations=%d warmup=%d ids=%s\n",
		report.Iterations, report.Warmup, report.IDScope); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tTARGETS\tELAPSED\tNS/OP\tVALUE\tOK")
	for _, run := range report.Runs {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.2f\t%d\t%t\n",
			run.Name, run.Targets, run.Elapsed, run.NsPerOp, run.Value, run.Verified())
	}
	return tw.Flush()
}
