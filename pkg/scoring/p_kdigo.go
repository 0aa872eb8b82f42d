package scoring

import "fmt"

type ckdRisk struct {
	tier     Tier
	category string
}

var (
	ckdLow      = ckdRisk{TierLow, "low risk"}
	ckdModerate = ckdRisk{TierMedium, "moderately increased risk"}
	ckdHigh     = ckdRisk{TierHigh, "high risk"}
	ckdVeryHigh = ckdRisk{TierHigh, "very high risk"}
)

// kdigoMatrix is the KDIGO 2012 heat map: GFR stage × albuminuria stage.
var kdigoMatrix = map[string]map[string]ckdRisk{
	"G1":  {"A1": ckdLow, "A2": ckdModerate, "A3": ckdHigh},
	"G2":  {"A1": ckdLow, "A2": ckdModerate, "A3": ckdHigh},
	"G3a": {"A1": ckdModerate, "A2": ckdHigh, "A3": ckdVeryHigh},
	"G3b": {"A1": ckdHigh, "A2": ckdVeryHigh, "A3": ckdVeryHigh},
	"G4":  {"A1": ckdVeryHigh, "A2": ckdVeryHigh, "A3": ckdVeryHigh},
	"G5":  {"A1": ckdVeryHigh, "A2": ckdVeryHigh, "A3": ckdVeryHigh},
}

// KDIGOProtocol classifies chronic kidney disease prognosis by matrix lookup.
// It is not additive.
type KDIGOProtocol struct{}

func (p *KDIGOProtocol) Definition() Definition {
	return Definition{
		ID:          "kdigo",
		Name:        "KDIGO CKD risk",
		Description: "CKD prognosis from GFR category and albuminuria category.",
		Fields: []FieldSpec{
			numeric("gfr", "eGFR", "mL/min/1.73m²", 0, 200),
			choice("albuminuria", "Albuminuria (ACR)",
				opt("A1", "A1: < 30 mg/g", 0),
				opt("A2", "A2: 30-300 mg/g", 0),
				opt("A3", "A3: > 300 mg/g", 0),
			),
		},
	}
}

// gfrStage maps an eGFR to its KDIGO G category.
func gfrStage(gfr float64) string {
	switch {
	case gfr >= 90:
		return "G1"
	case gfr >= 60:
		return "G2"
	case gfr >= 45:
		return "G3a"
	case gfr >= 30:
		return "G3b"
	case gfr >= 15:
		return "G4"
	default:
		return "G5"
	}
}

func (p *KDIGOProtocol) Evaluate(in Inputs) Result {
	gfr, ok := in.Number("gfr")
	if !ok {
		return pending(in, []string{"gfr"})
	}
	g := gfrStage(gfr)
	a := in.Option("albuminuria").Value
	risk := kdigoMatrix[g][a]

	return Result{
		Value:          Text(g + "/" + a),
		Tier:           risk.tier,
		Category:       risk.category,
		Interpretation: fmt.Sprintf("CKD %s %s: %s.", g, a, risk.category),
		Breakdown: []Contribution{
			{Key: "gfr", Label: in.label("gfr"), Detail: fmt.Sprintf("%s mL/min/1.73m² (%s)", FormatNumber(gfr), g)},
			{Key: "albuminuria", Label: in.label("albuminuria"), Detail: in.Option("albuminuria").Label},
		},
	}
}
