package scoring

import "fmt"

// verbalNotTestable marks a verbal response that cannot be assessed
// (intubation, tracheostomy). It scores the floor of 1 and the total is
// reported with a "T" suffix.
const verbalNotTestable = "nt"

// GlasgowProtocol is the Glasgow Coma Scale: eye + verbal + motor responses.
// Options are listed best response first, so an unanswered scale reads as 15.
type GlasgowProtocol struct{}

func (p *GlasgowProtocol) Definition() Definition {
	return Definition{
		ID:          "glasgow",
		Name:        "Glasgow Coma Scale",
		Description: "Level of consciousness from eye, verbal and motor responses (3-15).",
		Fields: []FieldSpec{
			choice("eye", "Eye opening",
				opt("4", "Spontaneous", 4),
				opt("3", "To sound", 3),
				opt("2", "To pressure", 2),
				opt("1", "None", 1),
			),
			choice("verbal", "Verbal response",
				opt("5", "Oriented", 5),
				opt("4", "Confused", 4),
				opt("3", "Inappropriate words", 3),
				opt("2", "Incomprehensible sounds", 2),
				opt("1", "None", 1),
				opt(verbalNotTestable, "Not testable (intubated)", 1),
			),
			choice("motor", "Motor response",
				opt("6", "Obeys commands", 6),
				opt("5", "Localizes pain", 5),
				opt("4", "Normal flexion (withdrawal)", 4),
				opt("3", "Abnormal flexion (decorticate)", 3),
				opt("2", "Extension (decerebrate)", 2),
				opt("1", "None", 1),
			),
		},
	}
}

func (p *GlasgowProtocol) Evaluate(in Inputs) Result {
	t := newTally(in)
	t.choices("eye", "verbal", "motor")

	var r Result
	switch {
	case t.total <= 8:
		r = t.result(TierHigh, "severe", "Severe brain injury (GCS ≤ 8): secure the airway, consider intubation.")
	case t.total <= 12:
		r = t.result(TierMedium, "moderate", "Moderate brain injury (GCS 9-12): close neurological monitoring.")
	default:
		r = t.result(TierLow, "mild", "Mild brain injury (GCS 13-15).")
	}

	if in.Option("verbal").Value == verbalNotTestable {
		r.Value = Annotated(t.total, fmt.Sprintf("%sT", FormatNumber(t.total)))
		r.Interpretation += " Verbal response not testable: scored at the floor of 1."
	}
	return r
}
