package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medcalc/medcalc/pkg/scoring"
	"github.com/medcalc/medcalc/pkg/session"
)

func newEvalCmd(a *app) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "eval <protocol> [field=value ...]",
		Short: "Evaluate a protocol once",
		Long: `Evaluates a protocol from field assignments and/or an input snapshot file.
Assignments on the command line override values read with --input.
Unanswered fields follow the defaulting policy: booleans are false, selects
take their first option and numerics stay empty.`,
		Example: `  medcalc eval glasgow eye=3 verbal=4 motor=6
  medcalc eval meld bilirubin=2.1 inr=1,4 creatinine=1.9 -o json
  medcalc eval kdigo --input labs.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, a, evalOpts{
				protocol:    args[0],
				assignments: args[1:],
				inputPath:   inputPath,
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read field values from a YAML or JSON file")
	return cmd
}

type evalOpts struct {
	protocol    string
	assignments []string
	inputPath   string
}

func runEval(cmd *cobra.Command, a *app, opts evalOpts) error {
	values := scoring.Values{}
	if opts.inputPath != "" {
		loaded, err := session.LoadValues(opts.inputPath)
		if err != nil {
			return err
		}
		values = loaded
	}

	assigned, err := parseAssignments(opts.assignments)
	if err != nil {
		return err
	}
	for k, v := range assigned {
		values[k] = v
	}

	result, err := a.engine.Evaluate(opts.protocol, values)
	if err != nil {
		a.logError("evaluation failed", err)
		return err
	}
	a.logger.Debug("evaluated",
		zap.String("protocol", result.Protocol),
		zap.Int("fields", len(values)),
		zap.String("tier", string(result.Tier)),
	)
	return a.renderer().RenderResult(cmd.OutOrStdout(), result)
}

// parseAssignments turns field=value arguments into raw values. Values stay
// strings; the engine coerces them per field kind. An empty value leaves the
// field unanswered.
func parseAssignments(args []string) (scoring.Values, error) {
	values := make(scoring.Values, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid assignment %q: want field=value", arg)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			values[field] = nil
			continue
		}
		values[field] = value
	}
	return values, nil
}
