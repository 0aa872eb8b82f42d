package scoring

// WellsDVTProtocol estimates the pre-test probability of deep vein thrombosis.
// One criterion subtracts two points, so the score is not monotone in its
// flags.
type WellsDVTProtocol struct{}

func (p *WellsDVTProtocol) Definition() Definition {
	return Definition{
		ID:          "wells_dvt",
		Name:        "Wells DVT",
		Description: "Pre-test probability of deep vein thrombosis.",
		Fields: []FieldSpec{
			flag("cancer", "Active cancer", 1),
			flag("paralysis", "Paralysis, paresis or recent leg cast", 1),
			flag("bedridden", "Bedridden > 3 days or major surgery within 12 weeks", 1),
			flag("tenderness", "Localized tenderness along the deep veins", 1),
			flag("leg_swollen", "Entire leg swollen", 1),
			flag("calf_swelling", "Calf swelling > 3 cm versus the other leg", 1),
			flag("pitting_edema", "Pitting edema confined to the symptomatic leg", 1),
			flag("collateral_veins", "Collateral superficial veins (non-varicose)", 1),
			flag("previous_dvt", "Previously documented DVT", 1),
			flag("alternative_diagnosis", "Alternative diagnosis at least as likely", -2),
		},
	}
}

func (p *WellsDVTProtocol) Evaluate(in Inputs) Result {
	t := newTally(in)
	t.flags("cancer", "paralysis", "bedridden", "tenderness", "leg_swollen",
		"calf_swelling", "pitting_edema", "collateral_veins", "previous_dvt",
		"alternative_diagnosis")

	switch {
	case t.total <= 0:
		return t.result(TierLow, "low", "Low probability (≈5%): D-dimer to exclude DVT.")
	case t.total <= 2:
		return t.result(TierMedium, "moderate", "Moderate probability (≈17%): D-dimer or ultrasound.")
	default:
		return t.result(TierHigh, "high", "High probability (≈53%): compression ultrasound.")
	}
}

// WellsPEProtocol estimates the pre-test probability of pulmonary embolism.
type WellsPEProtocol struct{}

func (p *WellsPEProtocol) Definition() Definition {
	return Definition{
		ID:          "wells_pe",
		Name:        "Wells PE",
		Description: "Pre-test probability of pulmonary embolism.",
		Fields: []FieldSpec{
			flag("dvt_signs", "Clinical signs of DVT", 3),
			flag("pe_likely", "PE is the most likely diagnosis", 3),
			flag("heart_rate", "Heart rate > 100 bpm", 1.5),
			flag("immobilization", "Immobilization ≥ 3 days or surgery in the past 4 weeks", 1.5),
			flag("previous_vte", "Previous DVT or PE", 1.5),
			flag("hemoptysis", "Hemoptysis", 1),
			flag("malignancy", "Malignancy under treatment or palliative", 1),
		},
	}
}

func (p *WellsPEProtocol) Evaluate(in Inputs) Result {
	t := newTally(in)
	t.flags("dvt_signs", "pe_likely", "heart_rate", "immobilization",
		"previous_vte", "hemoptysis", "malignancy")

	switch {
	case t.total < 2:
		return t.result(TierLow, "low", "Low probability (≈1.3%): consider D-dimer or PERC.")
	case t.total <= 6:
		return t.result(TierMedium, "moderate", "Moderate probability (≈16%): D-dimer; imaging if positive.")
	default:
		return t.result(TierHigh, "high", "High probability (≈38%): CT pulmonary angiography.")
	}
}
