// Package scoring implements the medcalc clinical score engine.
// Protocols are self-contained definitions (field schema, formula and tier
// thresholds) registered under their id and evaluated against a snapshot of
// field inputs.
package scoring

import (
	"encoding/json"
	"strconv"
)

// Result is the complete output of evaluating a protocol.
// Immutable once computed.
type Result struct {
	Protocol       string         `json:"protocol" yaml:"protocol"`
	Value          Score          `json:"value" yaml:"value"`
	Tier           Tier           `json:"tier" yaml:"tier"`
	Category       string         `json:"category" yaml:"category"` // protocol wording: "mild", "very high risk"
	Interpretation string         `json:"interpretation" yaml:"interpretation"`
	Breakdown      []Contribution `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
	Missing        []string       `json:"missing,omitempty" yaml:"missing,omitempty"` // required field ids still unanswered
}

// Contribution is the share of the total attributed to one field or sub-score.
type Contribution struct {
	Key    string  `json:"key" yaml:"key"`
	Label  string  `json:"label" yaml:"label"`
	Points float64 `json:"points" yaml:"points"`
	Detail string  `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Tier is the ordered severity bucket a result falls in.
type Tier string

const (
	TierLow     Tier = "low"
	TierMedium  Tier = "medium"
	TierHigh    Tier = "high"
	TierPending Tier = "pending"
)

// Score is a result value. Additive and regression protocols produce a number;
// matrix lookups produce text. A numeric score may carry display text as well
// (for example a Glasgow total reported with an untestable component).
type Score struct {
	number  float64
	text    string
	numeric bool
}

// Number returns a numeric score.
func Number(v float64) Score { return Score{number: v, numeric: true} }

// Text returns a textual score.
func Text(s string) Score { return Score{text: s} }

// Annotated returns a numeric score rendered as s.
func Annotated(v float64, s string) Score { return Score{number: v, text: s, numeric: true} }

// Float returns the numeric value and whether the score is numeric.
func (s Score) Float() (float64, bool) { return s.number, s.numeric }

func (s Score) String() string {
	if s.text != "" {
		return s.text
	}
	return FormatNumber(s.number)
}

func (s Score) MarshalJSON() ([]byte, error) {
	if s.text != "" || !s.numeric {
		return json.Marshal(s.text)
	}
	return json.Marshal(s.number)
}

func (s Score) MarshalYAML() (interface{}, error) {
	if s.text != "" || !s.numeric {
		return s.text, nil
	}
	return s.number, nil
}

// FormatNumber renders a value with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(roundTo(v, 2), 'f', -1, 64)
}
