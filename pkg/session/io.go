package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/medcalc/medcalc/pkg/scoring"
)

// LoadValues reads an input snapshot (field id to value) from a JSON or YAML
// file. The format is chosen by extension; anything but .json is read as YAML.
func LoadValues(path string) (scoring.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input snapshot: %w", err)
	}

	values := scoring.Values{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&values); err != nil {
			return nil, fmt.Errorf("unmarshaling input snapshot: %w", err)
		}
		return values, nil
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshaling input snapshot: %w", err)
	}
	return values, nil
}
