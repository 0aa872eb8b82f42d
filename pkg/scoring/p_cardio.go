package scoring

// CHA2DS2VAScProtocol estimates stroke risk in atrial fibrillation.
// The sex category point alone does not raise the tier.
type CHA2DS2VAScProtocol struct{}

func (p *CHA2DS2VAScProtocol) Definition() Definition {
	return Definition{
		ID:          "cha2ds2vasc",
		Name:        "CHA₂DS₂-VASc",
		Description: "Stroke risk in non-valvular atrial fibrillation.",
		Fields: []FieldSpec{
			flag("chf", "Congestive heart failure", 1),
			flag("hypertension", "Hypertension", 1),
			choice("age", "Age",
				opt("<65", "< 65 years", 0),
				opt("65-74", "65-74 years", 1),
				opt(">=75", "≥ 75 years", 2),
			),
			flag("diabetes", "Diabetes mellitus", 1),
			flag("stroke", "Prior stroke, TIA or thromboembolism", 2),
			flag("vascular", "Vascular disease (MI, PAD, aortic plaque)", 1),
			flag("female", "Female sex", 1),
		},
	}
}

func (p *CHA2DS2VAScProtocol) Evaluate(in Inputs) Result {
	t := newTally(in)
	t.flags("chf", "hypertension")
	t.choices("age")
	t.flags("diabetes", "stroke", "vascular", "female")

	risk := t.total
	if in.Bool("female") {
		risk -= in.points("female")
	}

	switch {
	case risk <= 0:
		return t.result(TierLow, "low", "Anticoagulation not indicated.")
	case risk == 1:
		return t.result(TierMedium, "moderate", "Consider oral anticoagulation.")
	default:
		return t.result(TierHigh, "high", "Oral anticoagulation recommended.")
	}
}

// HEARTProtocol stratifies chest pain for major adverse cardiac events.
type HEARTProtocol struct{}

func (p *HEARTProtocol) Definition() Definition {
	return Definition{
		ID:          "heart",
		Name:        "HEART",
		Description: "Six-week MACE risk in emergency chest pain.",
		Fields: []FieldSpec{
			choice("history", "History",
				opt("0", "Slightly suspicious", 0),
				opt("1", "Moderately suspicious", 1),
				opt("2", "Highly suspicious", 2),
			),
			choice("ecg", "ECG",
				opt("0", "Normal", 0),
				opt("1", "Non-specific repolarization disturbance", 1),
				opt("2", "Significant ST deviation", 2),
			),
			choice("age", "Age",
				opt("0", "< 45 years", 0),
				opt("1", "45-64 years", 1),
				opt("2", "≥ 65 years", 2),
			),
			choice("risk_factors", "Risk factors",
				opt("0", "No known risk factors", 0),
				opt("1", "1-2 risk factors", 1),
				opt("2", "≥ 3 risk factors or known atherosclerosis", 2),
			),
			choice("troponin", "Troponin",
				opt("0", "≤ normal limit", 0),
				opt("1", "1-3x normal limit", 1),
				opt("2", "> 3x normal limit", 2),
			),
		},
	}
}

func (p *HEARTProtocol) Evaluate(in Inputs) Result {
	t := newTally(in)
	t.choices("history", "ecg", "age", "risk_factors", "troponin")

	switch {
	case t.total <= 3:
		return t.result(TierLow, "low", "MACE 0.9-1.7%: candidate for early discharge.")
	case t.total <= 6:
		return t.result(TierMedium, "moderate", "MACE 12-16.6%: admit for observation.")
	default:
		return t.result(TierHigh, "high", "MACE 50-65%: early invasive strategy.")
	}
}

// HASBLEDProtocol estimates major bleeding risk on anticoagulation.
type HASBLEDProtocol struct{}

func (p *HASBLEDProtocol) Definition() Definition {
	return Definition{
		ID:          "has_bled",
		Name:        "HAS-BLED",
		Description: "One-year major bleeding risk on anticoagulation.",
		Fields: []FieldSpec{
			flag("hypertension", "Uncontrolled hypertension (SBP > 160 mmHg)", 1),
			flag("renal", "Abnormal renal function", 1),
			flag("liver", "Abnormal liver function", 1),
			flag("stroke", "Stroke history", 1),
			flag("bleeding", "Prior major bleeding or predisposition", 1),
			flag("labile_inr", "Labile INR", 1),
			flag("elderly", "Age > 65 years", 1),
			flag("drugs", "Antiplatelets or NSAIDs", 1),
			flag("alcohol", "Alcohol ≥ 8 drinks/week", 1),
		},
	}
}

func (p *HASBLEDProtocol) Evaluate(in Inputs) Result {
	t := newTally(in)
	t.flags("hypertension", "renal", "liver", "stroke", "bleeding",
		"labile_inr", "elderly", "drugs", "alcohol")

	switch {
	case t.total == 0:
		return t.result(TierLow, "low", "≈1.1 major bleeds per 100 patient-years.")
	case t.total <= 2:
		return t.result(TierMedium, "moderate", "1.9-3.7 major bleeds per 100 patient-years.")
	default:
		return t.result(TierHigh, "high", "High bleeding risk: address modifiable factors, review closely.")
	}
}
