package scoring

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBand(t *testing.T) {
	cuts := []cut{below(2, 1), atMost(3, 2)}
	assert.Equal(t, 1.0, band(1.99, cuts, 3))
	assert.Equal(t, 2.0, band(2, cuts, 3))
	assert.Equal(t, 2.0, band(3, cuts, 3))
	assert.Equal(t, 3.0, band(3.01, cuts, 3))

	desc := []cut{above(3.5, 1), atLeast(2.8, 2)}
	assert.Equal(t, 2.0, band(3.5, desc, 3))
	assert.Equal(t, 2.0, band(2.8, desc, 3))
	assert.Equal(t, 3.0, band(2.79, desc, 3))
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		want     float64
		answered bool
		wantErr  bool
	}{
		{"nil", nil, 0, false, false},
		{"blank", "  ", 0, false, false},
		{"int", 7, 7, true, false},
		{"uint8", uint8(3), 3, true, false},
		{"float32", float32(1.5), 1.5, true, false},
		{"decimal point", "1.25", 1.25, true, false},
		{"decimal comma", " 1,25 ", 1.25, true, false},
		{"json number", json.Number("42"), 42, true, false},
		{"words", "high", 0, false, true},
		{"nan", math.NaN(), 0, false, true},
		{"inf", math.Inf(1), 0, false, true},
		{"bool", true, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := toNumber(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.answered, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestToBool(t *testing.T) {
	for _, raw := range []any{nil, false, "", "no", "N", "0", "off", 0} {
		b, err := toBool(raw)
		require.NoError(t, err, "%v", raw)
		assert.False(t, b, "%v", raw)
	}
	for _, raw := range []any{true, "yes", "TRUE", "y", "1", "on", 1, 1.0} {
		b, err := toBool(raw)
		require.NoError(t, err, "%v", raw)
		assert.True(t, b, "%v", raw)
	}
	for _, raw := range []any{"maybe", 2, []string{"x"}} {
		_, err := toBool(raw)
		assert.Error(t, err, "%v", raw)
	}
}

func TestResolveDefaults(t *testing.T) {
	def := (&ChildPughProtocol{}).Definition()
	in, err := Resolve(def, Values{"bilirubin": "2,5", "ascites": "MILD"})
	require.NoError(t, err)

	v, ok := in.Number("bilirubin")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	_, ok = in.Number("albumin")
	assert.False(t, ok)
	assert.Equal(t, []string{"albumin", "inr"}, in.Missing("bilirubin", "albumin", "inr"))

	assert.Equal(t, "mild", in.Option("ascites").Value)
	assert.Equal(t, "none", in.Option("encephalopathy").Value, "unanswered select takes the first option")
}

func TestResolveRange(t *testing.T) {
	def := (&KDIGOProtocol{}).Definition()

	_, err := Resolve(def, Values{"gfr": 0})
	assert.NoError(t, err, "lower bound is inclusive")
	_, err = Resolve(def, Values{"gfr": 200})
	assert.NoError(t, err, "upper bound is inclusive")

	_, err = Resolve(def, Values{"gfr": 200.5})
	var ie *InputValidationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "gfr", ie.Field)
	assert.Equal(t, "outside valid range [0, 200]", ie.Reason)
}

func TestScoreFormatting(t *testing.T) {
	assert.Equal(t, "1.5", Number(1.5).String())
	assert.Equal(t, "17", Number(17).String())
	assert.Equal(t, "0.33", Number(1.0/3).String())
	assert.Equal(t, "G3a/A2", Text("G3a/A2").String())
	assert.Equal(t, "10T", Annotated(10, "10T").String())

	b, err := json.Marshal(Number(6.5))
	require.NoError(t, err)
	assert.JSONEq(t, `6.5`, string(b))

	b, err = json.Marshal(Text("-"))
	require.NoError(t, err)
	assert.JSONEq(t, `"-"`, string(b))
}
