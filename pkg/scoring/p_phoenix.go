package scoring

import (
	"fmt"
	"math"
)

// phoenixMAP holds the age-banded mean arterial pressure limits: below
// severe scores 2, at or below moderate scores 1.
type phoenixMAP struct {
	severe   float64
	moderate float64
}

var phoenixMAPByAge = map[string]phoenixMAP{
	"0m":  {severe: 17, moderate: 30},
	"1m":  {severe: 25, moderate: 38},
	"1y":  {severe: 31, moderate: 43},
	"2y":  {severe: 32, moderate: 44},
	"5y":  {severe: 36, moderate: 48},
	"12y": {severe: 38, moderate: 51},
}

var phoenixLactate = []cut{below(5, 0), below(11, 1)}

const phoenixCoagulationMax = 2

// PhoenixProtocol is the Phoenix pediatric sepsis score: respiratory (0-3),
// cardiovascular (0-6), coagulation (0-2) and neurologic (0-2) sub-scores.
type PhoenixProtocol struct{}

func (p *PhoenixProtocol) Definition() Definition {
	return Definition{
		ID:          "phoenix",
		Name:        "Phoenix Sepsis Score",
		Description: "Pediatric sepsis and septic shock criteria (suspected infection).",
		Fields: []FieldSpec{
			numeric("pf_ratio", "PaO2/FiO2", "mmHg", 0, 800),
			numeric("sf_ratio", "SpO2/FiO2", "", 0, 500),
			flag("respiratory_support", "Any respiratory support", 0),
			flag("imv", "Invasive mechanical ventilation", 0),
			choice("vasoactive", "Vasoactive medications",
				opt("0", "None", 0),
				opt("1", "One medication", 1),
				opt("2", "Two or more medications", 2),
			),
			numeric("lactate", "Lactate", "mmol/L", 0, 40),
			choice("age_group", "Age group",
				opt("0m", "< 1 month", 0),
				opt("1m", "1 to 11 months", 0),
				opt("1y", "1 to < 2 years", 0),
				opt("2y", "2 to < 5 years", 0),
				opt("5y", "5 to < 12 years", 0),
				opt("12y", "12 to 17 years", 0),
			),
			numeric("map", "Mean arterial pressure", "mmHg", 0, 250),
			numeric("platelets", "Platelets", "10³/µL", 0, 2000),
			numeric("inr", "INR", "", 0, 20),
			numeric("d_dimer", "D-dimer", "mg/L FEU", 0, 100),
			numeric("fibrinogen", "Fibrinogen", "mg/dL", 0, 2000),
			numeric("gcs", "Glasgow Coma Scale", "", 3, 15),
			flag("fixed_pupils", "Bilaterally fixed pupils", 0),
		},
	}
}

func (p *PhoenixProtocol) Evaluate(in Inputs) Result {
	numerics := []string{"pf_ratio", "sf_ratio", "lactate", "map", "platelets", "inr", "d_dimer", "fibrinogen", "gcs"}
	missing := in.Missing(numerics...)
	if len(missing) == len(numerics) && in.Option("vasoactive").Points == 0 && !in.Bool("fixed_pupils") {
		return pending(in, missing)
	}

	t := newTally(in)

	resp := phoenixRespiratory(in)
	t.add("respiratory", "Respiratory", resp, "")

	cv := in.Option("vasoactive").Points
	if v, ok := in.Number("lactate"); ok {
		cv += band(v, phoenixLactate, 2)
	}
	if v, ok := in.Number("map"); ok {
		limits := phoenixMAPByAge[in.Option("age_group").Value]
		switch {
		case v < limits.severe:
			cv += 2
		case v <= limits.moderate:
			cv++
		}
	}
	t.add("cardiovascular", "Cardiovascular", cv, "")

	var coag float64
	if v, ok := in.Number("platelets"); ok && v < 100 {
		coag++
	}
	if v, ok := in.Number("inr"); ok && v > 1.3 {
		coag++
	}
	if v, ok := in.Number("d_dimer"); ok && v > 2 {
		coag++
	}
	if v, ok := in.Number("fibrinogen"); ok && v < 100 {
		coag++
	}
	t.add("coagulation", "Coagulation", math.Min(coag, phoenixCoagulationMax), "")

	var neuro float64
	if in.Bool("fixed_pupils") {
		neuro = 2
	} else if v, ok := in.Number("gcs"); ok && v <= 10 {
		neuro = 1
	}
	t.add("neurologic", "Neurologic", neuro, "")

	switch {
	case t.total >= 2 && cv >= 1:
		return t.result(TierHigh, "septic shock", fmt.Sprintf("Septic shock: Phoenix ≥ 2 with %s cardiovascular point(s).", FormatNumber(cv)))
	case t.total >= 2:
		return t.result(TierMedium, "sepsis", "Sepsis: Phoenix ≥ 2 in suspected infection.")
	default:
		return t.result(TierLow, "no sepsis", "Phoenix criteria for sepsis not met.")
	}
}

func phoenixRespiratory(in Inputs) float64 {
	pf, pfOK := in.Number("pf_ratio")
	sf, sfOK := in.Number("sf_ratio")
	if !pfOK && !sfOK {
		return 0
	}
	imv := in.Bool("imv")
	support := imv || in.Bool("respiratory_support")

	switch {
	case imv && ((pfOK && pf < 100) || (sfOK && sf < 148)):
		return 3
	case imv && ((pfOK && pf <= 200) || (sfOK && sf <= 220)):
		return 2
	case support && ((pfOK && pf < 400) || (sfOK && sf < 292)):
		return 1
	}
	return 0
}
