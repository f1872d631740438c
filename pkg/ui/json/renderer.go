// Package json writes driver reports as indented JSON, one document per call
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/delegate/pkg/types"
)

// Renderer encodes reports, errors and messages as JSON
type Renderer struct {
	encoder *json.Encoder
}

// New creates a JSON renderer writing to output
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return &Renderer{encoder: encoder}, nil
}

// RenderResult encodes a report as is
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// RenderError encodes err with its code and details
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(types.NewErrorReport(err))
}

// RenderMessage encodes msg as {"message": msg}
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(types.MessageReport{Message: msg})
}
