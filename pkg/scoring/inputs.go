package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Values is the raw input snapshot of one protocol: field id to a number,
// bool, string or nil. Nil (or an absent key) means unanswered.
type Values map[string]any

// Clone returns a shallow copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Inputs is a resolved snapshot: every boolean and select field holds a
// concrete value, numeric fields hold a value or remain null.
type Inputs struct {
	def     Definition
	bools   map[string]bool
	options map[string]Option
	numbers map[string]float64 // absent key means null
}

// Resolve validates raw values against def and applies the defaulting policy:
// unanswered booleans are false, unanswered selects take the first listed
// option, unanswered numerics stay null.
func Resolve(def Definition, values Values) (Inputs, error) {
	in := Inputs{
		def:     def,
		bools:   make(map[string]bool),
		options: make(map[string]Option),
		numbers: make(map[string]float64),
	}

	var unknown []string
	for id := range values {
		if _, ok := def.Field(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		id := unknown[0]
		return Inputs{}, &InputValidationError{Protocol: def.ID, Field: id, Value: values[id], Reason: "field is not defined by this protocol"}
	}

	for _, f := range def.Fields {
		raw := values[f.ID]
		switch f.Kind {
		case KindBoolean:
			b, err := toBool(raw)
			if err != nil {
				return Inputs{}, &InputValidationError{Protocol: def.ID, Field: f.ID, Value: raw, Reason: err.Error()}
			}
			in.bools[f.ID] = b
		case KindSelect:
			o, err := toOption(f, raw)
			if err != nil {
				return Inputs{}, &InputValidationError{Protocol: def.ID, Field: f.ID, Value: raw, Reason: err.Error()}
			}
			in.options[f.ID] = o
		case KindNumeric:
			n, ok, err := toNumber(raw)
			if err != nil {
				return Inputs{}, &InputValidationError{Protocol: def.ID, Field: f.ID, Value: raw, Reason: err.Error()}
			}
			if !ok {
				continue
			}
			if (f.Min != nil && n < *f.Min) || (f.Max != nil && n > *f.Max) {
				return Inputs{}, &InputValidationError{
					Protocol: def.ID, Field: f.ID, Value: raw,
					Reason: rangeReason(f),
				}
			}
			in.numbers[f.ID] = n
		default:
			return Inputs{}, fmt.Errorf("%s: field %q has unknown kind %q", def.ID, f.ID, f.Kind)
		}
	}

	return in, nil
}

// Bool returns the value of a boolean field.
func (in Inputs) Bool(id string) bool { return in.bools[id] }

// Option returns the selected option of a select field.
func (in Inputs) Option(id string) Option { return in.options[id] }

// Number returns the value of a numeric field and false if it is null.
func (in Inputs) Number(id string) (float64, bool) {
	n, ok := in.numbers[id]
	return n, ok
}

// Missing returns the ids among the given numeric fields that are null.
func (in Inputs) Missing(ids ...string) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := in.numbers[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func (in Inputs) label(id string) string {
	if f, ok := in.def.Field(id); ok {
		return f.Label
	}
	return id
}

func (in Inputs) points(id string) float64 {
	f, _ := in.def.Field(id)
	return f.Points
}

func rangeReason(f FieldSpec) string {
	lo, hi := "-inf", "+inf"
	if f.Min != nil {
		lo = FormatNumber(*f.Min)
	}
	if f.Max != nil {
		hi = FormatNumber(*f.Max)
	}
	return fmt.Sprintf("outside valid range [%s, %s]", lo, hi)
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false", "no", "n", "0", "off":
			return false, nil
		case "true", "yes", "y", "1", "on":
			return true, nil
		}
	default:
		if n, ok, err := toNumber(raw); err == nil && ok {
			switch n {
			case 0:
				return false, nil
			case 1:
				return true, nil
			}
		}
	}
	return false, fmt.Errorf("not a boolean")
}

func toOption(f FieldSpec, raw any) (Option, error) {
	if len(f.Options) == 0 {
		return Option{}, fmt.Errorf("select field has no options")
	}
	var key string
	switch v := raw.(type) {
	case nil:
		return f.Options[0], nil
	case string:
		key = strings.TrimSpace(v)
	case bool:
		key = strconv.FormatBool(v)
	default:
		n, ok, err := toNumber(raw)
		if err != nil || !ok {
			return Option{}, fmt.Errorf("not a valid option")
		}
		key = strconv.FormatFloat(n, 'f', -1, 64)
	}
	if key == "" {
		return f.Options[0], nil
	}
	if o, ok := findOption(f, key); ok {
		return o, nil
	}
	// "4.0" and "4,0" name the same option as the number 4.
	if n, ok, err := toNumber(key); err == nil && ok {
		if o, ok := findOption(f, strconv.FormatFloat(n, 'f', -1, 64)); ok {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("not a valid option")
}

func findOption(f FieldSpec, key string) (Option, bool) {
	for _, o := range f.Options {
		if strings.EqualFold(o.Value, key) {
			return o, true
		}
	}
	return Option{}, false
}

// toNumber coerces raw to a float. The second result is false when raw is
// unanswered (nil or blank string).
func toNumber(raw any) (float64, bool, error) {
	var n float64
	switch v := raw.(type) {
	case nil:
		return 0, false, nil
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int8:
		n = float64(v)
	case int16:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint8:
		n = float64(v)
	case uint16:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("not a number")
		}
		n = f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return 0, false, fmt.Errorf("not a number")
		}
		n = f
	default:
		return 0, false, fmt.Errorf("not a number")
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false, fmt.Errorf("not a finite number")
	}
	return n, true, nil
}
