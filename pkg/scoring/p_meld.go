package scoring

import (
	"fmt"
	"math"
)

// dialysisCreatinine is the creatinine (mg/dL) used when the patient had
// dialysis twice in the past week; it is also the creatinine ceiling.
const dialysisCreatinine = 4.0

// MELDProtocol is the original MELD logarithmic regression for end-stage
// liver disease. Every lab value is floored at 1; creatinine is capped at 4.
type MELDProtocol struct{}

func (p *MELDProtocol) Definition() Definition {
	return Definition{
		ID:          "meld",
		Name:        "MELD",
		Description: "Model for End-stage Liver Disease: 3-month mortality.",
		Fields: []FieldSpec{
			numeric("bilirubin", "Total bilirubin", "mg/dL", 0, 100),
			numeric("inr", "INR", "", 0, 20),
			numeric("creatinine", "Creatinine", "mg/dL", 0, 30),
			flag("dialysis", "Dialysis ≥ 2x in the past week", 0),
		},
	}
}

func (p *MELDProtocol) Evaluate(in Inputs) Result {
	if missing := in.Missing("bilirubin", "inr", "creatinine"); len(missing) > 0 {
		return pending(in, missing)
	}
	terms, raw := meldTerms(in)
	return meldResult(math.Round(raw), terms)
}

// meldTerms returns the rounded per-term contributions and the unrounded sum.
func meldTerms(in Inputs) ([]Contribution, float64) {
	bilirubin, _ := in.Number("bilirubin")
	inr, _ := in.Number("inr")
	creatinine, _ := in.Number("creatinine")

	bilirubin = math.Max(bilirubin, 1)
	inr = math.Max(inr, 1)
	creatinine = math.Min(math.Max(creatinine, 1), dialysisCreatinine)
	creatDetail := fmt.Sprintf("%s mg/dL", FormatNumber(creatinine))
	if in.Bool("dialysis") {
		creatinine = dialysisCreatinine
		creatDetail = "set to 4 mg/dL (dialysis)"
	}

	terms := []Contribution{
		{Key: "bilirubin", Label: in.label("bilirubin"), Points: 3.78 * math.Log(bilirubin), Detail: fmt.Sprintf("%s mg/dL", FormatNumber(bilirubin))},
		{Key: "inr", Label: in.label("inr"), Points: 11.2 * math.Log(inr), Detail: FormatNumber(inr)},
		{Key: "creatinine", Label: in.label("creatinine"), Points: 9.57 * math.Log(creatinine), Detail: creatDetail},
		{Key: "constant", Label: "Constant", Points: 6.43},
	}
	var raw float64
	for i := range terms {
		raw += terms[i].Points
		terms[i].Points = roundTo(terms[i].Points, 2)
	}
	return terms, raw
}

func meldResult(score float64, terms []Contribution) Result {
	r := Result{Value: Number(score), Breakdown: terms}
	switch {
	case score < 10:
		r.Tier, r.Category, r.Interpretation = TierLow, "< 10", "3-month mortality ≈1.9%."
	case score < 20:
		r.Tier, r.Category, r.Interpretation = TierMedium, "10-19", "3-month mortality ≈6.0%."
	case score < 30:
		r.Tier, r.Category, r.Interpretation = TierHigh, "20-29", "3-month mortality ≈19.6%."
	default:
		r.Tier, r.Category, r.Interpretation = TierHigh, "≥ 30", "3-month mortality ≈52.6%."
	}
	return r
}

// Serum sodium is clamped to [sodiumFloor, sodiumCeiling] mmol/L before the
// correction, which only applies above meldNaThreshold.
const (
	sodiumFloor     = 125.0
	sodiumCeiling   = 137.0
	meldNaThreshold = 11.0
)

// MELDNaProtocol adds the hyponatremia correction to MELD.
type MELDNaProtocol struct{}

func (p *MELDNaProtocol) Definition() Definition {
	return Definition{
		ID:          "meld_na",
		Name:        "MELD-Na",
		Description: "MELD with serum sodium correction: 3-month mortality.",
		Fields: []FieldSpec{
			numeric("bilirubin", "Total bilirubin", "mg/dL", 0, 100),
			numeric("inr", "INR", "", 0, 20),
			numeric("creatinine", "Creatinine", "mg/dL", 0, 30),
			numeric("sodium", "Sodium", "mmol/L", 100, 180),
			flag("dialysis", "Dialysis ≥ 2x in the past week", 0),
		},
	}
}

func (p *MELDNaProtocol) Evaluate(in Inputs) Result {
	if missing := in.Missing("bilirubin", "inr", "creatinine", "sodium"); len(missing) > 0 {
		return pending(in, missing)
	}
	terms, raw := meldTerms(in)
	meld := roundTo(raw, 1)

	sodium, _ := in.Number("sodium")
	sodium = math.Min(math.Max(sodium, sodiumFloor), sodiumCeiling)
	score := meld
	if meld > meldNaThreshold {
		deficit := sodiumCeiling - sodium
		score = meld + 1.32*deficit - 0.033*meld*deficit
	}
	terms = append(terms, Contribution{
		Key:    "sodium",
		Label:  in.label("sodium"),
		Points: roundTo(score-meld, 2),
		Detail: fmt.Sprintf("%s mmol/L", FormatNumber(sodium)),
	})
	return meldResult(math.Round(score), terms)
}
