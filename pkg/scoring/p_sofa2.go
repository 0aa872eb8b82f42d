package scoring

import (
	"fmt"
	"strings"
)

var (
	sofaPlatelets = []cut{atMost(50, 4), atMost(80, 3), atMost(100, 2), atMost(150, 1)}
	sofaBilirubin = []cut{atMost(1.2, 0), atMost(3.0, 1), atMost(6.0, 2), atMost(12.0, 3)}
	sofaGlasgow   = []cut{atLeast(15, 0), atLeast(13, 1), atLeast(9, 2), atLeast(6, 3)}
	sofaKidney    = []cut{atMost(1.2, 0), atMost(2.0, 1), atMost(3.5, 2)}
)

const (
	sofaMAPThreshold     = 70.0 // mmHg
	sofaLactateThreshold = 2.0  // mmol/L
)

// SOFA2Protocol is the SOFA-2 organ dysfunction score: six independent organ
// sub-scores (0-4 each) plus one point for hyperlactatemia. An organ whose
// inputs are all null is reported as not assessed and contributes nothing.
type SOFA2Protocol struct{}

func (p *SOFA2Protocol) Definition() Definition {
	return Definition{
		ID:          "sofa2",
		Name:        "SOFA-2",
		Description: "Sequential organ failure assessment (2025 update) with lactate.",
		Fields: []FieldSpec{
			numeric("pf_ratio", "PaO2/FiO2", "mmHg", 0, 800),
			flag("advanced_support", "Advanced ventilatory support (HFNC, NIV, IMV or ECMO)", 0),
			numeric("platelets", "Platelets", "10³/µL", 0, 2000),
			numeric("bilirubin", "Total bilirubin", "mg/dL", 0, 100),
			numeric("map", "Mean arterial pressure", "mmHg", 0, 250),
			choice("vasoactive", "Norepinephrine + epinephrine",
				opt("none", "None", 0),
				opt("low", "≤ 0.2 µg/kg/min", 2),
				opt("medium", "> 0.2 to 0.4 µg/kg/min", 3),
				opt("high", "> 0.4 µg/kg/min", 4),
			),
			numeric("gcs", "Glasgow Coma Scale", "", 3, 15),
			numeric("creatinine", "Creatinine", "mg/dL", 0, 30),
			flag("rrt", "Renal replacement therapy", 0),
			numeric("lactate", "Lactate", "mmol/L", 0, 40),
		},
	}
}

func (p *SOFA2Protocol) Evaluate(in Inputs) Result {
	t := newTally(in)
	var unassessed []string

	if pf, ok := in.Number("pf_ratio"); ok {
		support := in.Bool("advanced_support")
		var pts float64
		switch {
		case pf <= 75 && support:
			pts = 4
		case pf <= 150 && support:
			pts = 3
		case pf <= 225:
			pts = 2
		case pf <= 300:
			pts = 1
		}
		detail := FormatNumber(pf)
		if support {
			detail += " with advanced support"
		}
		t.add("respiratory", "Respiratory", pts, detail)
	} else {
		unassessed = append(unassessed, "respiratory")
	}

	if v, ok := in.Number("platelets"); ok {
		t.add("hemostasis", "Hemostasis", band(v, sofaPlatelets, 0), fmt.Sprintf("platelets %s", FormatNumber(v)))
	} else {
		unassessed = append(unassessed, "hemostasis")
	}

	if v, ok := in.Number("bilirubin"); ok {
		t.add("liver", "Liver", band(v, sofaBilirubin, 4), fmt.Sprintf("bilirubin %s mg/dL", FormatNumber(v)))
	} else {
		unassessed = append(unassessed, "liver")
	}

	vaso := in.Option("vasoactive")
	mapValue, mapOK := in.Number("map")
	switch {
	case vaso.Points > 0:
		t.add("cardiovascular", "Cardiovascular", vaso.Points, "vasoactive "+vaso.Label)
	case mapOK && mapValue < sofaMAPThreshold:
		t.add("cardiovascular", "Cardiovascular", 1, fmt.Sprintf("MAP %s mmHg", FormatNumber(mapValue)))
	case mapOK:
		t.add("cardiovascular", "Cardiovascular", 0, fmt.Sprintf("MAP %s mmHg", FormatNumber(mapValue)))
	default:
		unassessed = append(unassessed, "cardiovascular")
	}

	if v, ok := in.Number("gcs"); ok {
		t.add("brain", "Brain", band(v, sofaGlasgow, 4), fmt.Sprintf("GCS %s", FormatNumber(v)))
	} else {
		unassessed = append(unassessed, "brain")
	}

	creatinine, creatOK := in.Number("creatinine")
	switch {
	case in.Bool("rrt"):
		t.add("kidney", "Kidney", 4, "renal replacement therapy")
	case creatOK:
		t.add("kidney", "Kidney", band(creatinine, sofaKidney, 3), fmt.Sprintf("creatinine %s mg/dL", FormatNumber(creatinine)))
	default:
		unassessed = append(unassessed, "kidney")
	}

	if len(unassessed) == 6 {
		return pending(in, in.Missing("pf_ratio", "platelets", "bilirubin", "map", "gcs", "creatinine"))
	}

	if v, ok := in.Number("lactate"); ok && v > sofaLactateThreshold {
		t.add("lactate", "Lactate", 1, fmt.Sprintf("%s mmol/L", FormatNumber(v)))
	}

	var r Result
	switch {
	case t.total <= 6:
		r = t.result(TierLow, "low", "Predicted mortality < 10%.")
	case t.total <= 11:
		r = t.result(TierMedium, "moderate", "Predicted mortality 15-50%.")
	default:
		r = t.result(TierHigh, "high", "Predicted mortality > 50%.")
	}
	if len(unassessed) > 0 {
		r.Interpretation += " Not assessed: " + strings.Join(unassessed, ", ") + "."
	}
	return r
}
