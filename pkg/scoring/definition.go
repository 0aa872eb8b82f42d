package scoring

// FieldKind is the input type of a protocol field.
type FieldKind string

const (
	KindBoolean FieldKind = "boolean"
	KindSelect  FieldKind = "select"
	KindNumeric FieldKind = "numeric"
)

// Option is one choice of a select field. The first option of a field is its
// default when the field is unanswered.
type Option struct {
	Value  string  `json:"value" yaml:"value"`
	Label  string  `json:"label" yaml:"label"`
	Points float64 `json:"points" yaml:"points"`
}

// FieldSpec describes one input of a protocol.
type FieldSpec struct {
	ID      string    `json:"id" yaml:"id"`
	Label   string    `json:"label" yaml:"label"`
	Kind    FieldKind `json:"kind" yaml:"kind"`
	Points  float64   `json:"points,omitempty" yaml:"points,omitempty"` // boolean: contribution when true
	Options []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Unit    string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	Min     *float64  `json:"min,omitempty" yaml:"min,omitempty"` // numeric: inclusive physical bounds
	Max     *float64  `json:"max,omitempty" yaml:"max,omitempty"`
}

// Definition is the descriptive half of a protocol: id, labels and field schema.
type Definition struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

// Field returns the spec of the field with the given id.
func (d Definition) Field(id string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Protocol is the interface every score definition implements.
type Protocol interface {
	// Definition returns the protocol's id, labels and field schema.
	Definition() Definition
	// Evaluate computes the result from defaulted, validated inputs.
	Evaluate(in Inputs) Result
}

func flag(id, label string, points float64) FieldSpec {
	return FieldSpec{ID: id, Label: label, Kind: KindBoolean, Points: points}
}

func choice(id, label string, options ...Option) FieldSpec {
	return FieldSpec{ID: id, Label: label, Kind: KindSelect, Options: options}
}

func numeric(id, label, unit string, min, max float64) FieldSpec {
	return FieldSpec{ID: id, Label: label, Kind: KindNumeric, Unit: unit, Min: &min, Max: &max}
}

func opt(value, label string, points float64) Option {
	return Option{Value: value, Label: label, Points: points}
}
