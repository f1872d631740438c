// Package toml provides TOML output
package toml

import (
	"io"

	"github.com/arthur-debert/delegate/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// Renderer writes each value as a TOML document
type Renderer struct {
	output io.Writer
}

// New creates a new TOML renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as TOML. The value must encode to a
// table: a struct, a pointer to one or a map.
func (r *Renderer) RenderResult(result interface{}) error {
	encoder := toml.NewEncoder(r.output)
	encoder.SetIndentTables(true)
	return encoder.Encode(result)
}

// RenderError renders err with its code and details
func (r *Renderer) RenderError(err error) error {
	return r.RenderResult(types.NewErrorReport(err))
}

// RenderMessage renders msg under a message key
func (r *Renderer) RenderMessage(msg string) error {
	return r.RenderResult(types.MessageReport{Message: msg})
}
