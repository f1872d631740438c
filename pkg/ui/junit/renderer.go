// Package junit renders driver reports as JUnit XML so CI systems can pick
// up demo checks and benchmark verifications as test cases.
package junit

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/delegate/pkg/types"
	"github.com/beevik/etree"
)

// Renderer writes JUnit XML documents
type Renderer struct {
	output io.Writer
}

// New creates a new JUnit renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders a demo or bench report as a testsuites document
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.DemoReport:
		return r.write(demoDocument(v))
	case *types.BenchReport:
		return r.write(benchDocument(v))
	default:
		return fmt.Errorf("junit output does not support %T", result)
	}
}

// RenderError renders an error as a suite with one errored case. The error
// code becomes the error type and its details become suite properties.
func (r *Renderer) RenderError(err error) error {
	report := types.NewErrorReport(err)

	doc, suites := newDocument()
	suite := addSuite(suites, "delegate", 1, 0)
	suite.CreateAttr("errors", "1")

	if len(report.Details) > 0 {
		keys := make([]string, 0, len(report.Details))
		for k := range report.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		props := suite.CreateElement("properties")
		for _, k := range keys {
			p := props.CreateElement("property")
			p.CreateAttr("name", k)
			p.CreateAttr("value", fmt.Sprint(report.Details[k]))
		}
	}

	tc := suite.CreateElement("testcase")
	tc.CreateAttr("name", "run")
	tc.CreateAttr("classname", "delegate")
	e := tc.CreateElement("error")
	e.CreateAttr("type", report.Code)
	e.CreateAttr("message", report.Error)
	return r.write(doc)
}

// RenderMessage renders a message as an XML comment
func (r *Renderer) RenderMessage(msg string) error {
	doc := etree.NewDocument()
	doc.CreateComment(" " + msg + " ")
	return r.write(doc)
}

func (r *Renderer) write(doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(r.output)
	return err
}

func newDocument() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc, doc.CreateElement("testsuites")
}

func addSuite(parent *etree.Element, name string, tests, failures int) *etree.Element {
	suite := parent.CreateElement("testsuite")
	suite.CreateAttr("name", name)
	suite.CreateAttr("tests", fmt.Sprintf("%d", tests))
	suite.CreateAttr("failures", fmt.Sprintf("%d", failures))
	return suite
}

func demoDocument(report *types.DemoReport) *etree.Document {
	doc, suites := newDocument()
	suites.CreateAttr("name", "delegate demo")
	suites.CreateAttr("time", seconds(report.Duration.Seconds()))

	// One suite per section, in the order the checks were made
	var order []string
	bySection := map[string][]types.Check{}
	for _, c := range report.Checks {
		if _, seen := bySection[c.Section]; !seen {
			order = append(order, c.Section)
		}
		bySection[c.Section] = append(bySection[c.Section], c)
	}

	for _, section := range order {
		checks := bySection[section]
		failures := 0
		for _, c := range checks {
			if !c.Passed {
				failures++
			}
		}

		suite := addSuite(suites, section, len(checks), failures)
		for _, c := range checks {
			tc := suite.CreateElement("testcase")
			tc.CreateAttr("name", c.Name)
			tc.CreateAttr("classname", "demo."+section)
			if !c.Passed {
				f := tc.CreateElement("failure")
				f.CreateAttr("message", fmt.Sprintf("expected %s, got %s", c.Expected, c.Got))
			}
		}
	}

	if len(report.Output) > 0 {
		out := suites.CreateElement("system-out")
		out.SetText(strings.Join(report.Output, "\n") + "\n")
	}

	return doc
}

func benchDocument(report *types.BenchReport) *etree.Document {
	doc, suites := newDocument()

	failures := 0
	for _, run := range report.Runs {
		if !run.Verified() {
			failures++
		}
	}

	suite := addSuite(suites, "bench", len(report.Runs), failures)
	props := suite.CreateElement("properties")
	for _, kv := range [][2]string{
		{"iterations", fmt.Sprintf("%d", report.Iterations)},
		{"warmup", fmt.Sprintf("%d", report.Warmup)},
		{"id_scope", report.IDScope},
	} {
		p := props.CreateElement("property")
		p.CreateAttr("name", kv[0])
		p.CreateAttr("value", kv[1])
	}

	for _, run := range report.Runs {
		tc := suite.CreateElement("testcase")
		tc.CreateAttr("name", run.Name)
		tc.CreateAttr("classname", "bench")
		tc.CreateAttr("time", seconds(run.Elapsed.Seconds()))
		if !run.Verified() {
			f := tc.CreateElement("failure")
			f.CreateAttr("message", fmt.Sprintf("value %d, expected %d", run.Value, run.Expected))
		}
	}

	return doc
}

func seconds(s float64) string {
	return fmt.Sprintf("%.6f", s)
}
