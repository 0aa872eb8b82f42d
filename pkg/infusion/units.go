package infusion

import "strings"

// Mass is the mass unit shared by dose and concentration.
type Mass string

const (
	Milligram Mass = "mg"
	Microgram Mass = "mcg"
)

// DoseUnit is a per-kilogram, per-time dose unit.
type DoseUnit string

const (
	McgPerKgPerMin  DoseUnit = "mcg/kg/min"
	MgPerKgPerMin   DoseUnit = "mg/kg/min"
	McgPerKgPerHour DoseUnit = "mcg/kg/h"
	MgPerKgPerHour  DoseUnit = "mg/kg/h"
)

// ConcentrationUnit is a mass-per-volume solution concentration unit.
type ConcentrationUnit string

const (
	MgPerMl  ConcentrationUnit = "mg/ml"
	McgPerMl ConcentrationUnit = "mcg/ml"
)

const (
	minutesPerHour = 60.0
	mcgPerMg       = 1000.0
)

// DoseUnits lists the supported dose units in display order.
func DoseUnits() []DoseUnit {
	return []DoseUnit{McgPerKgPerMin, MgPerKgPerMin, McgPerKgPerHour, MgPerKgPerHour}
}

// ConcentrationUnits lists the supported concentration units in display order.
func ConcentrationUnits() []ConcentrationUnit {
	return []ConcentrationUnit{MgPerMl, McgPerMl}
}

// Mass returns the mass part of the dose unit.
func (u DoseUnit) Mass() Mass {
	switch u {
	case MgPerKgPerMin, MgPerKgPerHour:
		return Milligram
	default:
		return Microgram
	}
}

// PerMinute reports whether the dose is expressed per minute.
func (u DoseUnit) PerMinute() bool {
	return u == McgPerKgPerMin || u == MgPerKgPerMin
}

// Valid reports whether u is a supported dose unit.
func (u DoseUnit) Valid() bool {
	for _, v := range DoseUnits() {
		if u == v {
			return true
		}
	}
	return false
}

// Mass returns the mass part of the concentration unit.
func (u ConcentrationUnit) Mass() Mass {
	if u == McgPerMl {
		return Microgram
	}
	return Milligram
}

// Valid reports whether u is a supported concentration unit.
func (u ConcentrationUnit) Valid() bool {
	for _, v := range ConcentrationUnits() {
		if u == v {
			return true
		}
	}
	return false
}

// ParseDoseUnit accepts a dose unit case-insensitively, with "µg" or "ug" as
// spellings of mcg and "hr" for h.
func ParseDoseUnit(s string) (DoseUnit, error) {
	u := DoseUnit(normalizeUnit(s))
	if !u.Valid() {
		return "", &InputValidationError{Field: "dose_unit", Value: s, Reason: "unsupported dose unit"}
	}
	return u, nil
}

// ParseConcentrationUnit accepts a concentration unit case-insensitively.
func ParseConcentrationUnit(s string) (ConcentrationUnit, error) {
	u := ConcentrationUnit(normalizeUnit(s))
	if !u.Valid() {
		return "", &InputValidationError{Field: "concentration_unit", Value: s, Reason: "unsupported concentration unit"}
	}
	return u, nil
}

func normalizeUnit(s string) string {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	return strings.NewReplacer("µg", "mcg", "μg", "mcg", "ug", "mcg", "/hr", "/h").Replace(s)
}
