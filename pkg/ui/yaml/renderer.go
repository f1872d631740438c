// Package yaml provides YAML output
package yaml

import (
	"io"

	"github.com/arthur-debert/delegate/pkg/types"
	"gopkg.in/yaml.v3"
)

// Renderer writes each value as a YAML document
type Renderer struct {
	output io.Writer
}

// New creates a new YAML renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as YAML
func (r *Renderer) RenderResult(result interface{}) error {
	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return err
	}
	return encoder.Close()
}

// RenderError renders err with its code and details
func (r *Renderer) RenderError(err error) error {
	return r.RenderResult(types.NewErrorReport(err))
}

// RenderMessage renders msg under a message key
func (r *Renderer) RenderMessage(msg string) error {
	return r.RenderResult(types.MessageReport{Message: msg})
}
