// Package surface renders medcalc results for different output targets:
// terminal, JSON, YAML and Markdown notes.
package surface

import (
	"fmt"
	"io"

	"github.com/medcalc/medcalc/pkg/infusion"
	"github.com/medcalc/medcalc/pkg/scoring"
)

// Renderer produces formatted output from engine results.
type Renderer interface {
	// RenderResult writes one score result.
	RenderResult(w io.Writer, result *scoring.Result) error
	// RenderInfusion writes an infusion rate with the parameters it came from.
	RenderInfusion(w io.Writer, params infusion.Params, result *infusion.Result) error
	// RenderCatalog writes a summary of the given protocols.
	RenderCatalog(w io.Writer, defs []scoring.Definition) error
	// RenderDefinition writes the full field schema of one protocol.
	RenderDefinition(w io.Writer, def scoring.Definition) error
}

var (
	_ Renderer = (*TerminalRenderer)(nil)
	_ Renderer = (*JSONRenderer)(nil)
	_ Renderer = (*YAMLRenderer)(nil)
	_ Renderer = (*MarkdownRenderer)(nil)
)

// ForFormat returns the renderer for an output format name. Color only
// affects the terminal renderer.
func ForFormat(format string, color bool) (Renderer, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return &JSONRenderer{}, nil
	case "yaml":
		return &YAMLRenderer{}, nil
	case "markdown":
		return &MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json, yaml or markdown)", format)
	}
}
