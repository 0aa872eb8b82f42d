package scoring

import "fmt"

// GRACE in-hospital mortality point tables (NSTE-ACS). Buckets are closed
// on the left: age 30-39 means 30 <= age < 40.
var (
	graceAge = []cut{
		below(30, 0), below(40, 8), below(50, 25), below(60, 41),
		below(70, 58), below(80, 75), below(90, 91),
	}
	graceHeartRate = []cut{
		below(50, 0), below(70, 3), below(90, 9), below(110, 15),
		below(150, 24), below(200, 38),
	}
	graceSystolic = []cut{
		below(80, 58), below(100, 53), below(120, 43), below(140, 34),
		below(160, 24), below(200, 10),
	}
	graceCreatinine = []cut{
		below(0.40, 1), below(0.80, 4), below(1.20, 7), below(1.60, 10),
		below(2.00, 13), below(4.00, 21),
	}
)

const (
	graceAgeMax        = 100
	graceHeartRateMax  = 46
	graceSystolicMax   = 0
	graceCreatinineMax = 28
)

// GRACEProtocol sums range-table points for age, heart rate, systolic BP and
// creatinine with a Killip class lookup and three event flags.
type GRACEProtocol struct{}

func (p *GRACEProtocol) Definition() Definition {
	return Definition{
		ID:          "grace",
		Name:        "GRACE",
		Description: "In-hospital mortality risk in acute coronary syndrome.",
		Fields: []FieldSpec{
			numeric("age", "Age", "years", 0, 130),
			numeric("heart_rate", "Heart rate", "bpm", 0, 350),
			numeric("systolic_bp", "Systolic BP", "mmHg", 0, 350),
			numeric("creatinine", "Creatinine", "mg/dL", 0, 30),
			choice("killip", "Killip class",
				opt("I", "I: no heart failure", 0),
				opt("II", "II: rales or S3", 20),
				opt("III", "III: pulmonary edema", 39),
				opt("IV", "IV: cardiogenic shock", 59),
			),
			flag("cardiac_arrest", "Cardiac arrest at admission", 39),
			flag("st_deviation", "ST-segment deviation", 28),
			flag("elevated_enzymes", "Elevated cardiac enzymes", 14),
		},
	}
}

func (p *GRACEProtocol) Evaluate(in Inputs) Result {
	if missing := in.Missing("age", "heart_rate", "systolic_bp", "creatinine"); len(missing) > 0 {
		return pending(in, missing)
	}

	t := newTally(in)
	for _, row := range []struct {
		id       string
		unit     string
		cuts     []cut
		fallback float64
	}{
		{"age", "years", graceAge, graceAgeMax},
		{"heart_rate", "bpm", graceHeartRate, graceHeartRateMax},
		{"systolic_bp", "mmHg", graceSystolic, graceSystolicMax},
		{"creatinine", "mg/dL", graceCreatinine, graceCreatinineMax},
	} {
		v, _ := in.Number(row.id)
		t.add(row.id, in.label(row.id), band(v, row.cuts, row.fallback), fmt.Sprintf("%s %s", FormatNumber(v), row.unit))
	}
	t.choices("killip")
	t.flags("cardiac_arrest", "st_deviation", "elevated_enzymes")

	switch {
	case t.total <= 108:
		return t.result(TierLow, "low", "In-hospital mortality < 1%.")
	case t.total <= 140:
		return t.result(TierMedium, "intermediate", "In-hospital mortality 1-3%.")
	default:
		return t.result(TierHigh, "high", "In-hospital mortality > 3%: early invasive strategy.")
	}
}
