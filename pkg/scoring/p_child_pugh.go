package scoring

import "fmt"

var (
	childPughBilirubin = []cut{below(2, 1), atMost(3, 2)}
	childPughAlbumin   = []cut{above(3.5, 1), atLeast(2.8, 2)}
	childPughINR       = []cut{below(1.7, 1), atMost(2.3, 2)}
)

// ChildPughProtocol grades cirrhosis severity into classes A-C.
type ChildPughProtocol struct{}

func (p *ChildPughProtocol) Definition() Definition {
	return Definition{
		ID:          "child_pugh",
		Name:        "Child-Pugh",
		Description: "Cirrhosis severity and prognosis (class A-C).",
		Fields: []FieldSpec{
			numeric("bilirubin", "Total bilirubin", "mg/dL", 0, 100),
			numeric("albumin", "Albumin", "g/dL", 0, 10),
			numeric("inr", "INR", "", 0, 20),
			choice("ascites", "Ascites",
				opt("none", "Absent", 1),
				opt("mild", "Slight", 2),
				opt("moderate", "Moderate to severe", 3),
			),
			choice("encephalopathy", "Encephalopathy",
				opt("none", "None", 1),
				opt("mild", "Grade I-II", 2),
				opt("severe", "Grade III-IV", 3),
			),
		},
	}
}

func (p *ChildPughProtocol) Evaluate(in Inputs) Result {
	if missing := in.Missing("bilirubin", "albumin", "inr"); len(missing) > 0 {
		return pending(in, missing)
	}

	t := newTally(in)
	bilirubin, _ := in.Number("bilirubin")
	albumin, _ := in.Number("albumin")
	inr, _ := in.Number("inr")
	t.add("bilirubin", in.label("bilirubin"), band(bilirubin, childPughBilirubin, 3), fmt.Sprintf("%s mg/dL", FormatNumber(bilirubin)))
	t.add("albumin", in.label("albumin"), band(albumin, childPughAlbumin, 3), fmt.Sprintf("%s g/dL", FormatNumber(albumin)))
	t.add("inr", in.label("inr"), band(inr, childPughINR, 3), FormatNumber(inr))
	t.choices("ascites", "encephalopathy")

	switch {
	case t.total <= 6:
		return t.result(TierLow, "class A", "Well-compensated disease: 1-year survival ≈100%.")
	case t.total <= 9:
		return t.result(TierMedium, "class B", "Significant functional compromise: 1-year survival ≈80%.")
	default:
		return t.result(TierHigh, "class C", "Decompensated disease: 1-year survival ≈45%.")
	}
}
