// Package ui provides a unified interface for rendering driver reports in
// different formats: terminal (rich), text (plain), JSON, YAML, TOML and
// JUnit XML.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/arthur-debert/delegate/pkg/ui/json"
	"github.com/arthur-debert/delegate/pkg/ui/junit"
	"github.com/arthur-debert/delegate/pkg/ui/terminal"
	"github.com/arthur-debert/delegate/pkg/ui/text"
	"github.com/arthur-debert/delegate/pkg/ui/toml"
	"github.com/arthur-debert/delegate/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
// It provides methods for rendering different types of data and messages.
type Renderer interface {
	// RenderResult renders a report (*types.DemoReport, *types.BenchReport)
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		// Detect terminal capabilities and choose appropriate format
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		// Buffers and pipes get plain text
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return yaml.New(output)
	case FormatTOML:
		return toml.New(output)
	case FormatJUnit:
		return junit.New(output)
	default:
		return nil, errors.Newf(errors.ErrOutputFormat, "unknown format: %v", format)
	}
}
