package surface_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/medcalc/medcalc/pkg/infusion"
	"github.com/medcalc/medcalc/pkg/scoring"
	"github.com/medcalc/medcalc/pkg/surface"
)

func sampleResult(t *testing.T) *scoring.Result {
	t.Helper()
	r, err := scoring.Evaluate("meld", scoring.Values{"bilirubin": 2, "inr": 1.5, "creatinine": 1.5})
	require.NoError(t, err)
	return r
}

func sampleInfusion(t *testing.T) (infusion.Params, *infusion.Result) {
	t.Helper()
	p := infusion.Params{WeightKg: 70, DoseValue: 5, DoseUnit: infusion.McgPerKgPerMin, ConcentrationValue: 4, ConcentrationUnit: infusion.MgPerMl}
	r, err := infusion.Calculate(p)
	require.NoError(t, err)
	return p, r
}

func TestTerminalRenderer_Result(t *testing.T) {
	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	require.NoError(t, r.RenderResult(&buf, sampleResult(t)))

	output := buf.String()
	assert.Contains(t, output, "meld  17  [10-19, medium]")
	assert.Contains(t, output, "3-month mortality")
	assert.Contains(t, output, "Total bilirubin")
	assert.Contains(t, output, "+2.62")
	assert.NotContains(t, output, "\033[")
}

func TestTerminalRenderer_Pending(t *testing.T) {
	result, err := scoring.Evaluate("grace", scoring.Values{"age": 70})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&surface.TerminalRenderer{}).RenderResult(&buf, result))

	output := buf.String()
	assert.Contains(t, output, "[pending]")
	assert.Contains(t, output, "missing: heart_rate, systolic_bp, creatinine")
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&surface.TerminalRenderer{Color: true}).RenderResult(&buf, sampleResult(t)))
	assert.Contains(t, buf.String(), "\033[")
}

func TestNewTerminal_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, surface.NewTerminal(true).Color)
}

func TestTerminalRenderer_Infusion(t *testing.T) {
	p, res := sampleInfusion(t)
	var buf bytes.Buffer
	require.NoError(t, (&surface.TerminalRenderer{}).RenderInfusion(&buf, p, res))

	output := buf.String()
	assert.Contains(t, output, "Rate: 5.3 ml/h")
	assert.Contains(t, output, "Target dose: 21 mg/h")
	assert.Contains(t, output, "70 kg × 5 mcg/kg/min at 4 mg/ml")
}

func TestTerminalRenderer_Catalog(t *testing.T) {
	var buf bytes.Buffer
	r := &surface.TerminalRenderer{}
	require.NoError(t, r.RenderCatalog(&buf, scoring.ListProtocols()))

	output := buf.String()
	for _, id := range []string{"glasgow", "meld", "kdigo", "phoenix"} {
		assert.Contains(t, output, id)
	}

	def, err := scoring.Default().Definition("glasgow")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, r.RenderDefinition(&buf, def))
	assert.Contains(t, buf.String(), "nt=1")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&surface.JSONRenderer{}).RenderResult(&buf, sampleResult(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "meld", decoded["protocol"])
	assert.Equal(t, 17.0, decoded["value"])
	assert.Equal(t, "medium", decoded["tier"])

	buf.Reset()
	p, res := sampleInfusion(t)
	require.NoError(t, (&surface.JSONRenderer{}).RenderInfusion(&buf, p, res))
	assert.Contains(t, buf.String(), `"rate": "5.3 ml/h"`)
}

func TestYAMLRenderer(t *testing.T) {
	result, err := scoring.Evaluate("kdigo", scoring.Values{"gfr": 50, "albuminuria": "A2"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&surface.YAMLRenderer{}).RenderResult(&buf, result))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "G3a/A2", decoded["value"])
	assert.Equal(t, "high risk", decoded["category"])
}

func TestMarkdownRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&surface.MarkdownRenderer{}).RenderResult(&buf, sampleResult(t)))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "## meld: 17 (:orange_circle: 10-19, MEDIUM)"), output)
	assert.Contains(t, output, "| Total bilirubin | +2.62 | 2 mg/dL |")
}

func TestForFormat(t *testing.T) {
	for format, want := range map[string]any{
		"":         &surface.TerminalRenderer{},
		"text":     &surface.TerminalRenderer{},
		"json":     &surface.JSONRenderer{},
		"yaml":     &surface.YAMLRenderer{},
		"markdown": &surface.MarkdownRenderer{},
	} {
		r, err := surface.ForFormat(format, false)
		require.NoError(t, err, format)
		assert.IsType(t, want, r, format)
	}

	for _, format := range []string{"xml", "md"} {
		_, err := surface.ForFormat(format, false)
		assert.Error(t, err, format)
	}
}
