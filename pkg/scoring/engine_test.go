package scoring_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcalc/medcalc/pkg/scoring"
)

func evaluate(t *testing.T, id string, values scoring.Values) *scoring.Result {
	t.Helper()
	result, err := scoring.Evaluate(id, values)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func number(t *testing.T, r *scoring.Result) float64 {
	t.Helper()
	v, ok := r.Value.Float()
	require.True(t, ok, "expected numeric value, got %q", r.Value.String())
	return v
}

func TestEvaluateUnknownProtocol(t *testing.T) {
	_, err := scoring.Evaluate("apache9", nil)
	require.Error(t, err)
	assert.True(t, scoring.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "apache9")
}

func TestEvaluateRejectsNonNumericValue(t *testing.T) {
	_, err := scoring.Evaluate("meld", scoring.Values{"bilirubin": "high"})
	require.Error(t, err)

	var ie *scoring.InputValidationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "meld", ie.Protocol)
	assert.Equal(t, "bilirubin", ie.Field)
}

func TestEvaluateRejectsOutOfRangeValue(t *testing.T) {
	_, err := scoring.Evaluate("grace", scoring.Values{"age": -3})
	require.Error(t, err)
	assert.True(t, scoring.IsInputValidationError(err))
	assert.Contains(t, err.Error(), "outside valid range")
}

func TestEvaluateRejectsUnknownField(t *testing.T) {
	_, err := scoring.Evaluate("curb65", scoring.Values{"lactate": 3})
	require.Error(t, err)
	assert.True(t, scoring.IsInputValidationError(err))
}

func TestEvaluateUnknownFieldErrorIsStable(t *testing.T) {
	values := scoring.Values{"f6": 1, "c3": 1, "a1": 1, "e5": 1, "b2": 1, "d4": 1}
	_, first := scoring.Evaluate("curb65", values)
	require.Error(t, first)

	var ie *scoring.InputValidationError
	require.ErrorAs(t, first, &ie)
	assert.Equal(t, "a1", ie.Field)

	for i := 0; i < 50; i++ {
		_, err := scoring.Evaluate("curb65", values)
		assert.Equal(t, first.Error(), err.Error())
	}
}

func TestEvaluateRejectsUnknownOption(t *testing.T) {
	_, err := scoring.Evaluate("glasgow", scoring.Values{"eye": 7})
	require.Error(t, err)
	assert.True(t, scoring.IsInputValidationError(err))
}

func TestEvaluateEmptyInputIsAlwaysDefined(t *testing.T) {
	for _, def := range scoring.ListProtocols() {
		t.Run(def.ID, func(t *testing.T) {
			result := evaluate(t, def.ID, nil)
			assert.Equal(t, def.ID, result.Protocol)
			assert.NotEmpty(t, result.Tier)
			assert.NotEmpty(t, result.Interpretation)
			if v, ok := result.Value.Float(); ok {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "value %v", v)
			} else {
				assert.NotEmpty(t, result.Value.String())
			}
		})
	}
}

func TestEvaluatePendingNamesMissingFields(t *testing.T) {
	result := evaluate(t, "meld", scoring.Values{"bilirubin": 1.5})
	assert.Equal(t, scoring.TierPending, result.Tier)
	assert.Equal(t, "-", result.Value.String())
	assert.Equal(t, []string{"inr", "creatinine"}, result.Missing)
	assert.Equal(t, "Select required fields: INR, Creatinine", result.Interpretation)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	inputs := map[string]scoring.Values{
		"glasgow":  {"eye": 3, "verbal": 4, "motor": 5},
		"meld":     {"bilirubin": 2.1, "inr": 1.4, "creatinine": 1.9},
		"grace":    {"age": 72, "heart_rate": 104, "systolic_bp": 118, "creatinine": 1.3, "killip": "II", "st_deviation": true},
		"kdigo":    {"gfr": 52, "albuminuria": "A2"},
		"sofa2":    {"pf_ratio": 180, "platelets": 90, "gcs": 13},
		"phoenix":  {"sf_ratio": 200, "imv": true, "vasoactive": 1},
		"wells_pe": {"heart_rate": true, "hemoptysis": true},
	}
	engine := scoring.NewEngine(scoring.Default())
	for id, values := range inputs {
		t.Run(id, func(t *testing.T) {
			first, err := engine.Evaluate(id, values)
			require.NoError(t, err)
			second, err := engine.Evaluate(id, values)
			require.NoError(t, err)
			if diff := cmp.Diff(first, second, cmp.AllowUnexported(scoring.Score{})); diff != "" {
				t.Errorf("repeated evaluation differs (-first +second):\n%s", diff)
			}
		})
	}
}

// Additive protocols never lose points when a boolean flag turns true.
func TestAdditiveProtocolsAreMonotone(t *testing.T) {
	bases := map[string]scoring.Values{
		"glasgow":     {},
		"curb65":      {},
		"qsofa":       {},
		"cha2ds2vasc": {},
		"heart":       {},
		"has_bled":    {},
		"wells_pe":    {},
		"grace":       {"age": 55, "heart_rate": 88, "systolic_bp": 132, "creatinine": 1.1},
	}
	for id, base := range bases {
		def, err := scoring.Default().Definition(id)
		require.NoError(t, err)
		t.Run(id, func(t *testing.T) {
			before := number(t, evaluate(t, id, base))
			for _, f := range def.Fields {
				if f.Kind != scoring.KindBoolean {
					continue
				}
				flipped := base.Clone()
				flipped[f.ID] = true
				after := number(t, evaluate(t, id, flipped))
				assert.GreaterOrEqual(t, after, before, "flag %s lowered the score", f.ID)
			}
		})
	}
}

func TestWellsDVTIsNotMonotone(t *testing.T) {
	before := number(t, evaluate(t, "wells_dvt", scoring.Values{"cancer": true}))
	after := number(t, evaluate(t, "wells_dvt", scoring.Values{"cancer": true, "alternative_diagnosis": true}))
	assert.Less(t, after, before)
}

func TestRegistryLookupAndList(t *testing.T) {
	r := scoring.Default()
	defs := r.List()
	require.Equal(t, r.Len(), len(defs))
	assert.Equal(t, "glasgow", defs[0].ID)

	for _, id := range []string{"glasgow", "curb65", "meld", "wells_dvt", "grace", "kdigo", "sofa2", "phoenix", "cha2ds2vasc", "heart"} {
		p, err := r.Lookup(id)
		require.NoError(t, err, id)
		assert.Equal(t, id, p.Definition().ID)
	}

	_, err := r.Lookup("nope")
	assert.True(t, scoring.IsConfigurationError(err))
}

func TestRegistrySubset(t *testing.T) {
	sub, err := scoring.Default().Subset([]string{"meld", "glasgow"})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, "meld", sub.List()[0].ID)

	_, err = scoring.Default().Subset([]string{"meld", "unknown"})
	assert.True(t, scoring.IsConfigurationError(err))

	same, err := scoring.Default().Subset(nil)
	require.NoError(t, err)
	assert.Same(t, scoring.Default(), same)
}

type stubProtocol struct{ def scoring.Definition }

func (s stubProtocol) Definition() scoring.Definition { return s.def }
func (s stubProtocol) Evaluate(scoring.Inputs) scoring.Result {
	return scoring.Result{Value: scoring.Number(0), Tier: scoring.TierLow}
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name      string
		protocols []scoring.Protocol
	}{
		{
			name: "duplicate protocol id",
			protocols: []scoring.Protocol{
				stubProtocol{scoring.Definition{ID: "a"}},
				stubProtocol{scoring.Definition{ID: "a"}},
			},
		},
		{
			name:      "empty protocol id",
			protocols: []scoring.Protocol{stubProtocol{scoring.Definition{Name: "nameless"}}},
		},
		{
			name: "duplicate field id",
			protocols: []scoring.Protocol{stubProtocol{scoring.Definition{ID: "a", Fields: []scoring.FieldSpec{
				{ID: "x", Kind: scoring.KindBoolean},
				{ID: "x", Kind: scoring.KindNumeric},
			}}}},
		},
		{
			name: "select without options",
			protocols: []scoring.Protocol{stubProtocol{scoring.Definition{ID: "a", Fields: []scoring.FieldSpec{
				{ID: "x", Kind: scoring.KindSelect},
			}}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scoring.NewRegistry(tt.protocols...)
			assert.Error(t, err)
		})
	}
}

func TestBuiltInCatalogIsValid(t *testing.T) {
	r, err := scoring.NewRegistry(scoring.DefaultProtocols()...)
	require.NoError(t, err)
	assert.Equal(t, len(scoring.DefaultProtocols()), r.Len())
}
