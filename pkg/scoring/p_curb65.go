package scoring

// CURB65Protocol scores community-acquired pneumonia severity from five
// one-point flags.
type CURB65Protocol struct{}

func (p *CURB65Protocol) Definition() Definition {
	return Definition{
		ID:          "curb65",
		Name:        "CURB-65",
		Description: "Community-acquired pneumonia severity and site-of-care decision.",
		Fields: []FieldSpec{
			flag("confusion", "Confusion", 1),
			flag("urea", "Urea > 43 mg/dL (BUN > 19 mg/dL)", 1),
			flag("respiratory_rate", "Respiratory rate ≥ 30/min", 1),
			flag("blood_pressure", "SBP < 90 mmHg or DBP ≤ 60 mmHg", 1),
			flag("age_65", "Age ≥ 65 years", 1),
		},
	}
}

func (p *CURB65Protocol) Evaluate(in Inputs) Result {
	t := newTally(in)
	t.flags("confusion", "urea", "respiratory_rate", "blood_pressure", "age_65")

	switch {
	case t.total <= 1:
		return t.result(TierLow, "low", "Low 30-day mortality (≈1.5%): consider outpatient treatment.")
	case t.total == 2:
		return t.result(TierMedium, "moderate", "Intermediate mortality (≈9.2%): consider short admission or supervised outpatient care.")
	default:
		return t.result(TierHigh, "high", "High mortality (≈22%): hospitalize; assess for ICU when score is 4-5.")
	}
}
