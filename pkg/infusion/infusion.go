// Package infusion converts a weight-based drug dose and a solution
// concentration into a volumetric pump rate in ml/h.
package infusion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Params are the inputs of one rate calculation.
type Params struct {
	WeightKg           float64           `json:"weight_kg" yaml:"weight_kg"`
	DoseValue          float64           `json:"dose" yaml:"dose"`
	DoseUnit           DoseUnit          `json:"dose_unit" yaml:"dose_unit"`
	ConcentrationValue float64           `json:"concentration" yaml:"concentration"`
	ConcentrationUnit  ConcentrationUnit `json:"concentration_unit" yaml:"concentration_unit"`
}

// Result is the outcome of a successful calculation.
type Result struct {
	// HourlyDose is the total dose per hour in the concentration's mass unit.
	HourlyDose        float64 `json:"hourly_dose" yaml:"hourly_dose"`
	TargetDoseDisplay string  `json:"target_dose" yaml:"target_dose"`
	RateMlPerHour     float64 `json:"rate_ml_per_hour" yaml:"rate_ml_per_hour"`
	RateDisplay       string  `json:"rate" yaml:"rate"`
}

// Calculate converts p into a pump rate.
//
//	hourly = dose × weight (× 60 for per-minute units)
//	hourly is converted from the dose mass unit to the concentration mass unit
//	rate   = hourly / concentration
//
// Non-positive or non-finite weight, dose or concentration and unknown units
// yield an *InputValidationError.
func Calculate(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	hourly := p.DoseValue * p.WeightKg
	if p.DoseUnit.PerMinute() {
		hourly *= minutesPerHour
	}
	hourly = convertMass(hourly, p.DoseUnit.Mass(), p.ConcentrationUnit.Mass())

	rate := hourly / p.ConcentrationValue
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, &InputValidationError{Field: "rate", Value: rate, Reason: "rate is not a finite number"}
	}

	return &Result{
		HourlyDose:        hourly,
		TargetDoseDisplay: fmt.Sprintf("%s %s/h", formatAmount(hourly), p.ConcentrationUnit.Mass()),
		RateMlPerHour:     rate,
		RateDisplay:       FormatRate(rate),
	}, nil
}

// Validate checks every parameter of p.
func (p Params) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"weight", p.WeightKg},
		{"dose", p.DoseValue},
		{"concentration", p.ConcentrationValue},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InputValidationError{Field: f.name, Value: f.value, Reason: "must be a finite number"}
		}
		if f.value <= 0 {
			return &InputValidationError{Field: f.name, Value: f.value, Reason: "must be greater than zero"}
		}
	}
	if !p.DoseUnit.Valid() {
		return &InputValidationError{Field: "dose_unit", Value: string(p.DoseUnit), Reason: "unsupported dose unit"}
	}
	if !p.ConcentrationUnit.Valid() {
		return &InputValidationError{Field: "concentration_unit", Value: string(p.ConcentrationUnit), Reason: "unsupported concentration unit"}
	}
	return nil
}

func convertMass(v float64, from, to Mass) float64 {
	switch {
	case from == Microgram && to == Milligram:
		return v / mcgPerMg
	case from == Milligram && to == Microgram:
		return v * mcgPerMg
	}
	return v
}

// FormatRate renders a rate with two decimals below 1 ml/h and one decimal
// otherwise. Halves round away from zero: 5.25 renders as "5.3 ml/h". The
// threshold applies to the rounded value, so 0.996 renders as "1.0 ml/h".
func FormatRate(rate float64) string {
	if hundredths := math.Round(rate*100) / 100; hundredths < 1 {
		return fmt.Sprintf("%.2f ml/h", hundredths)
	}
	return fmt.Sprintf("%.1f ml/h", math.Round(rate*10)/10)
}

// formatAmount keeps two decimals, or four below 1 so micro doses stay visible.
func formatAmount(v float64) string {
	p := 100.0
	if v < 1 {
		p = 10000
	}
	return strconv.FormatFloat(math.Round(v*p)/p, 'f', -1, 64)
}

// ParseFloat parses a user-entered number, accepting a decimal comma.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, &InputValidationError{Value: s, Reason: "not a number"}
	}
	return v, nil
}
