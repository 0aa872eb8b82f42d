package surface

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/medcalc/medcalc/pkg/infusion"
	"github.com/medcalc/medcalc/pkg/scoring"
)

// infusionOutput is the serialized form of an infusion calculation.
type infusionOutput struct {
	Params infusion.Params  `json:"params" yaml:"params"`
	Result *infusion.Result `json:"result" yaml:"result"`
}

// JSONRenderer marshals results to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) RenderResult(w io.Writer, result *scoring.Result) error {
	return encodeJSON(w, result)
}

func (r *JSONRenderer) RenderInfusion(w io.Writer, params infusion.Params, result *infusion.Result) error {
	return encodeJSON(w, infusionOutput{Params: params, Result: result})
}

func (r *JSONRenderer) RenderCatalog(w io.Writer, defs []scoring.Definition) error {
	return encodeJSON(w, defs)
}

func (r *JSONRenderer) RenderDefinition(w io.Writer, def scoring.Definition) error {
	return encodeJSON(w, def)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAMLRenderer marshals results to YAML.
type YAMLRenderer struct{}

func (r *YAMLRenderer) RenderResult(w io.Writer, result *scoring.Result) error {
	return encodeYAML(w, result)
}

func (r *YAMLRenderer) RenderInfusion(w io.Writer, params infusion.Params, result *infusion.Result) error {
	return encodeYAML(w, infusionOutput{Params: params, Result: result})
}

func (r *YAMLRenderer) RenderCatalog(w io.Writer, defs []scoring.Definition) error {
	return encodeYAML(w, defs)
}

func (r *YAMLRenderer) RenderDefinition(w io.Writer, def scoring.Definition) error {
	return encodeYAML(w, def)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
