// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/delegate/pkg/types"
	"github.com/arthur-debert/delegate/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss styles and pterm tables
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
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

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintln(r.output, styles.GetStyle("Fail").Render("Error: ")+err.Error())
	return writeErr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) renderDemo(report *types.DemoReport) error {
	var b strings.Builder

	b.WriteString(styles.GetStyle("Title").Render("Delegate demo"))
	b.WriteString("\n")

	section := ""
	for _, c := range report.Checks {
		if c.Section != section {
			section = c.Section
			b.WriteString(styles.GetStyle("Section").Render(section))
			b.WriteString("\n")
		}
		if c.Passed {
			fmt.Fprintf(&b, "  %s %s\n", styles.GetStyle("Pass").Render("✓"), c.Name)
			continue
		}
		fmt.Fprintf(&b, "  %s %s %s\n",
			styles.GetStyle("Fail").Render("✗"),
			c.Name,
			styles.GetStyle("Muted").Render(fmt.Sprintf("(expected %s, got %s)", c.Expected, c.Got)))
	}

	if len(report.Output) > 0 {
		b.WriteString(styles.GetStyle("Section").Render("Callback output"))
		b.WriteString("\n")
		for _, line := range report.Output {
			b.WriteString(styles.GetStyle("Output").Render(line))
			b.WriteString("\n")
		}
	}

	failed := len(report.Failed())
	summary := fmt.Sprintf("%d checks, %d failed in %s", len(report.Checks), failed, report.Duration)
	if failed == 0 {
		b.WriteString(styles.GetStyle("Summary").Inherit(styles.GetStyle("Pass")).Render(summary))
	} else {
		b.WriteString(styles.GetStyle("Summary").Inherit(styles.GetStyle("Fail")).Render(summary))
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderBench(report *types.BenchReport) error {
	title := styles.GetStyle("Title").Render(
		fmt.Sprintf("Benchmark: %d iterations (%d warmup, %s ids)", report.Iterations, report.Warmup, report.IDScope))
	if _, err := fmt.Fprintln(r.output, title); err != nil {
		return err
	}

	data := pterm.TableData{{"Run", "Targets", "Elapsed", "ns/op", "Value"}}
	for _, run := range report.Runs {
		value := styles.GetStyle("Pass").Render(fmt.Sprintf("%d", run.Value))
		if !run.Verified() {
			value = styles.GetStyle("Fail").Render(fmt.Sprintf("%d != %d", run.Value, run.Expected))
		}
		data = append(data, []string{
			run.Name,
			fmt.Sprintf("%d", run.Targets),
			run.Elapsed.String(),
			fmt.Sprintf("%.2f", run.NsPerOp),
			value,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}
