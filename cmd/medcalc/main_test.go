package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcalc/medcalc/pkg/scoring"
)

// run executes the CLI with an isolated config path and colors off.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return runWithConfig(t, filepath.Join(t.TempDir(), "absent.yaml"), stdin, args...)
}

func runWithConfig(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", configPath, "--color=false"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	f := cmd.PersistentFlags()

	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}
	for _, flag := range []string{"config", "output", "color", "verbose"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestInfusionCmdFlags(t *testing.T) {
	cmd, _, err := newRootCmd().Find([]string{"infusion"})
	if err != nil {
		t.Fatalf("find infusion command: %v", err)
	}
	f := cmd.Flags()
	for _, flag := range []string{"weight", "dose", "conc", "dose-unit", "conc-unit"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestEvalText(t *testing.T) {
	out, err := run(t, "", "eval", "glasgow", "eye=4", "verbal=5", "motor=6")
	require.NoError(t, err)
	assert.Contains(t, out, "glasgow  15  [mild, low]")
}

func TestEvalJSON(t *testing.T) {
	out, err := run(t, "", "-o", "json", "eval", "meld", "bilirubin=1", "inr=1", "creatinine=1")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 6.0, decoded["value"])
	assert.Equal(t, "< 10", decoded["category"])
}

func TestEvalFromInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kdigo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gfr: 95\nalbuminuria: A2\n"), 0o644))

	out, err := run(t, "", "eval", "kdigo", "--input", path, "albuminuria=A1")
	require.NoError(t, err)
	assert.Contains(t, out, "G1/A1")
	assert.Contains(t, out, "low risk")
}

func TestEvalErrors(t *testing.T) {
	_, err := run(t, "", "eval", "apache9")
	assert.True(t, scoring.IsConfigurationError(err))

	_, err = run(t, "", "eval", "meld", "bilirubin=lots")
	assert.True(t, scoring.IsInputValidationError(err))

	_, err = run(t, "", "eval", "meld", "bilirubin")
	assert.ErrorContains(t, err, "want field=value")
}

func TestInfusion(t *testing.T) {
	out, err := run(t, "", "infusion", "--weight", "70", "--dose", "5", "--conc", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Rate: 5.3 ml/h")
	assert.Contains(t, out, "Target dose: 21 mg/h")

	out, err = run(t, "", "infusion", "--weight", "10", "--dose", "0,1", "--dose-unit", "mg/kg/h", "--conc", "500", "--conc-unit", "mcg/ml")
	require.NoError(t, err)
	assert.Contains(t, out, "Rate: 2.0 ml/h")

	_, err = run(t, "", "infusion", "--weight", "0", "--dose", "5", "--conc", "4")
	assert.ErrorContains(t, err, "invalid inputs")
}

func TestConfigFileRestrictsProtocols(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\nprotocols:\n  enabled: [meld]\ninfusion:\n  dose_unit: mg/kg/h\n"), 0o644))

	out, err := runWithConfig(t, path, "", "protocols")
	require.NoError(t, err)
	assert.Contains(t, out, "id: meld")
	assert.NotContains(t, out, "glasgow")

	_, err = runWithConfig(t, path, "", "eval", "glasgow")
	assert.True(t, scoring.IsConfigurationError(err))

	out, err = runWithConfig(t, path, "", "-o", "text", "infusion", "--weight", "80", "--dose", "1", "--conc", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Rate: 8.0 ml/h")
}

func TestEnvironmentOverridesConfig(t *testing.T) {
	t.Setenv("MEDCALC_OUTPUT", "markdown")
	out, err := run(t, "", "eval", "curb65", "confusion=yes")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "## curb65: 1"), out)
}

func TestCatalog(t *testing.T) {
	out, err := run(t, "", "-o", "json", "catalog", "kdigo")
	require.NoError(t, err)

	var defs []scoring.Definition
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	require.Len(t, defs, 1)
	assert.Equal(t, "kdigo", defs[0].ID)
	assert.Len(t, defs[0].Fields, 2)

	out, err = run(t, "", "catalog", "glasgow")
	require.NoError(t, err)
	assert.Contains(t, out, "Glasgow Coma Scale")

	_, err = run(t, "", "catalog", "nope")
	assert.True(t, scoring.IsConfigurationError(err))
}

func TestScoreSession(t *testing.T) {
	stdin := strings.Join([]string{
		"set confusion yes",
		"urea=yes",
		"set age_65 maybe",
		"show",
		"clear confusion",
		"switch nope",
		"bogus",
		"quit",
		"set respiratory_rate yes",
	}, "\n")

	out, err := run(t, stdin, "session", "curb65")
	require.NoError(t, err)
	assert.Contains(t, out, "curb65  0  [low]")
	assert.Contains(t, out, "curb65  1  [low]")
	assert.Contains(t, out, "curb65  2  [moderate, medium]")
	assert.Contains(t, out, `error: curb65: field "age_65": not a boolean`)
	assert.Contains(t, out, `error: unknown protocol "nope"`)
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.NotContains(t, out, "curb65  3", "input after quit is ignored")
}

func TestScoreSessionSwitch(t *testing.T) {
	out, err := run(t, "switch kdigo\nset gfr 20\nset albuminuria A3\n", "session", "glasgow")
	require.NoError(t, err)
	assert.Contains(t, out, "glasgow  15  [mild, low]")
	assert.Contains(t, out, "kdigo  -  [pending]")
	assert.Contains(t, out, "G4/A3")
}

func TestInfusionSession(t *testing.T) {
	stdin := "weight 70\ndose 5\nconc 4\nweight 0\nweight seventy\nweight 70\nconc 4000 mcg/ml\nquit\n"
	out, err := run(t, stdin, "session", "--infusion")
	require.NoError(t, err)
	assert.Contains(t, out, "error: invalid inputs: dose must be greater than zero")
	assert.Contains(t, out, "Rate: 5.3 ml/h")
	assert.Contains(t, out, "error: invalid inputs: weight must be greater than zero")
	assert.Contains(t, out, "error: invalid inputs: not a number")
	assert.Contains(t, out, "Target dose: 21000 mcg/h")
}

func TestSessionNeedsProtocol(t *testing.T) {
	_, err := run(t, "", "session")
	assert.Error(t, err)
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"eye=3", " inr = 1,4 ", "gfr="})
	require.NoError(t, err)
	assert.Equal(t, scoring.Values{"eye": "3", "inr": "1,4", "gfr": nil}, got)

	for _, bad := range []string{"eye", "=3"} {
		_, err := parseAssignments([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "c"}, "a"},
		{[]string{"", "b", "c"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		got := firstNonEmpty(tt.args...)
		if got != tt.want {
			t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
