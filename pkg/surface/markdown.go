package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/medcalc/medcalc/pkg/infusion"
	"github.com/medcalc/medcalc/pkg/scoring"
)

// MarkdownRenderer produces note-ready Markdown that can be pasted into a
// clinical record.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) RenderResult(w io.Writer, result *scoring.Result) error {
	_, err := io.WriteString(w, buildResultMarkdown(result))
	return err
}

func (r *MarkdownRenderer) RenderInfusion(w io.Writer, params infusion.Params, result *infusion.Result) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Infusion: %s\n\n", result.RateDisplay))
	sb.WriteString("| Parameter | Value |\n|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Weight | %s kg |\n", scoring.FormatNumber(params.WeightKg)))
	sb.WriteString(fmt.Sprintf("| Dose | %s %s |\n", scoring.FormatNumber(params.DoseValue), params.DoseUnit))
	sb.WriteString(fmt.Sprintf("| Concentration | %s %s |\n", scoring.FormatNumber(params.ConcentrationValue), params.ConcentrationUnit))
	sb.WriteString(fmt.Sprintf("| Target dose | %s |\n", result.TargetDoseDisplay))
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *MarkdownRenderer) RenderCatalog(w io.Writer, defs []scoring.Definition) error {
	var sb strings.Builder
	sb.WriteString("| ID | Name | Description |\n|----|------|-------------|\n")
	for _, d := range defs {
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", d.ID, d.Name, d.Description))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *MarkdownRenderer) RenderDefinition(w io.Writer, def scoring.Definition) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n%s\n\n", def.Name, def.Description))
	sb.WriteString("| Field | Label | Kind | Values |\n|-------|-------|------|--------|\n")
	for _, f := range def.Fields {
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n", f.ID, f.Label, f.Kind, describeField(f)))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func buildResultMarkdown(result *scoring.Result) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s: %s (%s)\n\n", result.Protocol, result.Value, tierLabel(result)))
	sb.WriteString(result.Interpretation + "\n\n")

	if len(result.Missing) > 0 {
		sb.WriteString(fmt.Sprintf("_Missing: %s_\n", strings.Join(result.Missing, ", ")))
		return sb.String()
	}

	if len(result.Breakdown) > 0 {
		sb.WriteString("| Field | Points | Detail |\n|-------|--------|--------|\n")
		for _, c := range result.Breakdown {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", c.Label, signed(c.Points), c.Detail))
		}
	}
	return sb.String()
}

func tierLabel(result *scoring.Result) string {
	icon := tierIcon(result.Tier)
	if result.Category != "" && result.Category != string(result.Tier) {
		return fmt.Sprintf("%s %s, %s", icon, result.Category, strings.ToUpper(string(result.Tier)))
	}
	return fmt.Sprintf("%s %s", icon, strings.ToUpper(string(result.Tier)))
}

func tierIcon(tier scoring.Tier) string {
	switch tier {
	case scoring.TierHigh:
		return ":red_circle:"
	case scoring.TierMedium:
		return ":orange_circle:"
	case scoring.TierLow:
		return ":green_circle:"
	default:
		return ":white_circle:"
	}
}
