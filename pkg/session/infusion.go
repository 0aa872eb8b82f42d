package session

import (
	"github.com/google/uuid"

	"github.com/medcalc/medcalc/pkg/infusion"
)

// InfusionSession is an open infusion calculator. Every edit is stored, even
// an invalid one, and the result reports the error until the inputs are valid
// again.
type InfusionSession struct {
	id     string
	params infusion.Params
	result *infusion.Result
	err    error
}

// NewInfusion opens a calculator with mcg/kg/min doses and mg/ml concentrations.
func NewInfusion() *InfusionSession {
	return NewInfusionWithUnits(infusion.McgPerKgPerMin, infusion.MgPerMl)
}

// NewInfusionWithUnits opens a calculator with the given default units.
func NewInfusionWithUnits(dose infusion.DoseUnit, conc infusion.ConcentrationUnit) *InfusionSession {
	s := &InfusionSession{
		id: uuid.NewString(),
		params: infusion.Params{
			DoseUnit:          dose,
			ConcentrationUnit: conc,
		},
	}
	s.recompute()
	return s
}

// ID returns the session id.
func (s *InfusionSession) ID() string { return s.id }

// Params returns the current parameters.
func (s *InfusionSession) Params() infusion.Params { return s.params }

// Result returns the outcome of the current parameters.
func (s *InfusionSession) Result() (*infusion.Result, error) { return s.result, s.err }

// SetWeight stores the patient weight in kilograms and recomputes.
func (s *InfusionSession) SetWeight(kg float64) (*infusion.Result, error) {
	s.params.WeightKg = kg
	return s.recompute()
}

// SetDose stores the dose and recomputes. An empty unit keeps the current one.
func (s *InfusionSession) SetDose(value float64, unit infusion.DoseUnit) (*infusion.Result, error) {
	s.params.DoseValue = value
	if unit != "" {
		s.params.DoseUnit = unit
	}
	return s.recompute()
}

// SetConcentration stores the solution concentration and recomputes. An empty
// unit keeps the current one.
func (s *InfusionSession) SetConcentration(value float64, unit infusion.ConcentrationUnit) (*infusion.Result, error) {
	s.params.ConcentrationValue = value
	if unit != "" {
		s.params.ConcentrationUnit = unit
	}
	return s.recompute()
}

func (s *InfusionSession) recompute() (*infusion.Result, error) {
	s.result, s.err = infusion.Calculate(s.params)
	return s.result, s.err
}
