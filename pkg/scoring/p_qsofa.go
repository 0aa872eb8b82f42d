package scoring

// QSOFAProtocol is the quick SOFA bedside sepsis screen.
type QSOFAProtocol struct{}

func (p *QSOFAProtocol) Definition() Definition {
	return Definition{
		ID:          "qsofa",
		Name:        "qSOFA",
		Description: "Bedside screen for poor outcome in suspected infection.",
		Fields: []FieldSpec{
			flag("respiratory_rate", "Respiratory rate ≥ 22/min", 1),
			flag("mentation", "Altered mentation", 1),
			flag("systolic_bp", "Systolic BP ≤ 100 mmHg", 1),
		},
	}
}

func (p *QSOFAProtocol) Evaluate(in Inputs) Result {
	t := newTally(in)
	t.flags("respiratory_rate", "mentation", "systolic_bp")

	switch {
	case t.total >= 2:
		return t.result(TierHigh, "positive", "High risk of poor outcome: assess organ dysfunction with SOFA.")
	case t.total == 1:
		return t.result(TierMedium, "borderline", "One criterion present: reassess and monitor.")
	default:
		return t.result(TierLow, "negative", "Low risk by qSOFA; does not exclude sepsis.")
	}
}
