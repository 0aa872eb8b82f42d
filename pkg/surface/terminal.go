package surface

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/medcalc/medcalc/pkg/infusion"
	"github.com/medcalc/medcalc/pkg/scoring"
)

// TerminalRenderer renders results as human-readable terminal output.
type TerminalRenderer struct {
	Color bool
}

// NewTerminal returns a terminal renderer. Color is forced off when NO_COLOR
// is set.
func NewTerminal(useColor bool) *TerminalRenderer {
	return &TerminalRenderer{Color: useColor && !noColor()}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func (r *TerminalRenderer) paint(attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func (r *TerminalRenderer) tierColor(tier scoring.Tier) func(a ...interface{}) string {
	switch tier {
	case scoring.TierHigh:
		return r.paint(color.FgRed, color.Bold)
	case scoring.TierMedium:
		return r.paint(color.FgYellow, color.Bold)
	case scoring.TierLow:
		return r.paint(color.FgGreen)
	default:
		return r.paint(color.FgHiBlack)
	}
}

func (r *TerminalRenderer) RenderResult(w io.Writer, result *scoring.Result) error {
	bold := r.paint(color.Bold)
	dim := r.paint(color.Faint)
	tc := r.tierColor(result.Tier)

	label := string(result.Tier)
	if result.Category != "" && result.Category != label {
		label = fmt.Sprintf("%s, %s", result.Category, result.Tier)
	}
	fmt.Fprintf(w, "%s  %s  %s\n", bold(result.Protocol), bold(tc(result.Value.String())), tc("["+label+"]"))
	for _, line := range wrapText(result.Interpretation, 72) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)

	if len(result.Missing) > 0 {
		fmt.Fprintf(w, "%s %s\n", dim("missing:"), strings.Join(result.Missing, ", "))
		return nil
	}
	if len(result.Breakdown) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Points", "Detail"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	var data [][]string
	for _, c := range result.Breakdown {
		data = append(data, []string{c.Label, signed(c.Points), c.Detail})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func (r *TerminalRenderer) RenderInfusion(w io.Writer, params infusion.Params, result *infusion.Result) error {
	bold := r.paint(color.Bold)
	dim := r.paint(color.Faint)

	fmt.Fprintf(w, "%s %s\n", bold("Rate:"), r.paint(color.FgCyan, color.Bold)(result.RateDisplay))
	fmt.Fprintf(w, "%s %s\n", bold("Target dose:"), result.TargetDoseDisplay)
	fmt.Fprintln(w, dim(fmt.Sprintf("%s kg × %s %s at %s %s",
		scoring.FormatNumber(params.WeightKg),
		scoring.FormatNumber(params.DoseValue), params.DoseUnit,
		scoring.FormatNumber(params.ConcentrationValue), params.ConcentrationUnit)))
	return nil
}

func (r *TerminalRenderer) RenderCatalog(w io.Writer, defs []scoring.Definition) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Fields", "Description"})
	var data [][]string
	for _, d := range defs {
		data = append(data, []string{d.ID, d.Name, strconv.Itoa(len(d.Fields)), d.Description})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func (r *TerminalRenderer) RenderDefinition(w io.Writer, def scoring.Definition) error {
	bold := r.paint(color.Bold)
	fmt.Fprintf(w, "%s (%s)\n  %s\n\n", bold(def.Name), def.ID, def.Description)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Label", "Kind", "Values"})
	var data [][]string
	for _, f := range def.Fields {
		data = append(data, []string{f.ID, f.Label, string(f.Kind), describeField(f)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func describeField(f scoring.FieldSpec) string {
	switch f.Kind {
	case scoring.KindBoolean:
		return signed(f.Points) + " if true"
	case scoring.KindSelect:
		parts := make([]string, 0, len(f.Options))
		for _, o := range f.Options {
			parts = append(parts, fmt.Sprintf("%s=%s", o.Value, scoring.FormatNumber(o.Points)))
		}
		return strings.Join(parts, " ")
	case scoring.KindNumeric:
		s := ""
		if f.Min != nil && f.Max != nil {
			s = fmt.Sprintf("%s..%s", scoring.FormatNumber(*f.Min), scoring.FormatNumber(*f.Max))
		}
		if f.Unit != "" {
			s = strings.TrimSpace(s + " " + f.Unit)
		}
		return s
	}
	return ""
}

func signed(v float64) string {
	if v > 0 {
		return "+" + scoring.FormatNumber(v)
	}
	return scoring.FormatNumber(v)
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
