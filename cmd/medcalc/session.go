package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medcalc/medcalc/pkg/infusion"
	"github.com/medcalc/medcalc/pkg/session"
)

const scoreSessionHelp = `commands:
  set <field> <value>   answer a field (also: <field>=<value>)
  clear <field>         reset a field to unanswered
  switch <protocol>     discard the answers and open another protocol
  fields                show the field schema
  show                  show the current result
  quit                  leave the session`

const infusionSessionHelp = `commands:
  weight <kg>                 set the patient weight
  dose <value> [unit]         set the dose (units: mcg/kg/min, mg/kg/min, mcg/kg/h, mg/kg/h)
  conc <value> [unit]         set the concentration (units: mg/ml, mcg/ml)
  show                        show the current rate
  quit                        leave the session`

func newSessionCmd(a *app) *cobra.Command {
	var infusionMode bool

	cmd := &cobra.Command{
		Use:   "session [protocol]",
		Short: "Interactive session that recomputes after every edit",
		Long: `Reads one command per line from stdin and re-renders the result after each
edit. A rejected value is reported and the session keeps its last valid state.
Use --infusion for the infusion rate calculator instead of a protocol.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if infusionMode {
				return runInfusionSession(cmd, a)
			}
			if len(args) == 0 {
				return fmt.Errorf("session needs a protocol id (or --infusion)")
			}
			return runScoreSession(cmd, a, args[0])
		},
	}

	cmd.Flags().BoolVar(&infusionMode, "infusion", false, "Open the infusion rate calculator")
	return cmd
}

// lineLoop feeds each non-empty stdin line to handle until it returns false
// or input ends.
func lineLoop(in io.Reader, out io.Writer, handle func(verb string, rest []string) bool) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			if !handle(strings.ToLower(fields[0]), fields[1:]) {
				return nil
			}
		}
		fmt.Fprint(out, "> ")
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func runScoreSession(cmd *cobra.Command, a *app, protocol string) error {
	s, err := session.Open(a.engine.Registry(), protocol)
	if err != nil {
		a.logError("session open failed", err)
		return err
	}
	out := cmd.OutOrStdout()
	r := a.renderer()
	log := a.logger.With(zap.String("session", s.ID()))

	_ = r.RenderResult(out, s.Result())
	return lineLoop(cmd.InOrStdin(), out, func(verb string, rest []string) bool {
		if field, value, ok := strings.Cut(verb, "="); ok && len(rest) == 0 {
			verb, rest = "set", []string{field, value}
		}

		var err error
		switch verb {
		case "quit", "exit", "q":
			return false
		case "help", "?":
			fmt.Fprintln(out, scoreSessionHelp)
			return true
		case "show":
		case "fields":
			err = r.RenderDefinition(out, s.Definition())
			if err == nil {
				return true
			}
		case "set":
			if len(rest) < 1 {
				err = fmt.Errorf("usage: set <field> <value>")
				break
			}
			var value any
			if len(rest) > 1 {
				value = strings.Join(rest[1:], " ")
			}
			_, err = s.Set(rest[0], value)
			log.Debug("field set", zap.String("protocol", s.Protocol()), zap.String("field", rest[0]))
		case "clear":
			if len(rest) != 1 {
				err = fmt.Errorf("usage: clear <field>")
				break
			}
			_, err = s.Clear(rest[0])
			log.Debug("field cleared", zap.String("protocol", s.Protocol()), zap.String("field", rest[0]))
		case "switch":
			if len(rest) != 1 {
				err = fmt.Errorf("usage: switch <protocol>")
				break
			}
			err = s.Switch(rest[0])
			if err == nil {
				log = a.logger.With(zap.String("session", s.ID()))
				log.Debug("protocol switched", zap.String("protocol", s.Protocol()))
			}
		default:
			err = fmt.Errorf("unknown command %q (try help)", verb)
		}

		if err != nil {
			a.logError("session edit rejected", err)
			fmt.Fprintf(out, "error: %v\n", err)
			return true
		}
		_ = r.RenderResult(out, s.Result())
		return true
	})
}

func runInfusionSession(cmd *cobra.Command, a *app) error {
	doseUnit, err := infusion.ParseDoseUnit(a.cfg.Infusion.DoseUnit)
	if err != nil {
		return err
	}
	concUnit, err := infusion.ParseConcentrationUnit(a.cfg.Infusion.ConcentrationUnit)
	if err != nil {
		return err
	}

	s := session.NewInfusionWithUnits(doseUnit, concUnit)
	out := cmd.OutOrStdout()
	r := a.renderer()
	log := a.logger.With(zap.String("session", s.ID()))

	show := func() {
		res, err := s.Result()
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
		_ = r.RenderInfusion(out, s.Params(), res)
	}

	return lineLoop(cmd.InOrStdin(), out, func(verb string, rest []string) bool {
		switch verb {
		case "quit", "exit", "q":
			return false
		case "help", "?":
			fmt.Fprintln(out, infusionSessionHelp)
			return true
		case "show":
			show()
			return true
		case "weight", "dose", "conc", "concentration":
		default:
			fmt.Fprintf(out, "error: unknown command %q (try help)\n", verb)
			return true
		}

		if err := applyInfusionEdit(s, verb, rest); err != nil {
			a.logError("infusion edit rejected", err)
			fmt.Fprintf(out, "error: %v\n", err)
			return true
		}
		log.Debug("infusion edited", zap.String("parameter", verb))
		show()
		return true
	})
}

// applyInfusionEdit parses one edit. A value that does not parse is rejected
// before it reaches the session; a parsed but invalid value is stored and
// reported by the next result.
func applyInfusionEdit(s *session.InfusionSession, verb string, rest []string) error {
	if len(rest) < 1 || len(rest) > 2 {
		return fmt.Errorf("usage: %s <value> [unit]", verb)
	}
	v, err := infusion.ParseFloat(rest[0])
	if err != nil {
		return err
	}

	switch verb {
	case "weight":
		if len(rest) > 1 {
			return fmt.Errorf("usage: weight <kg>")
		}
		_, _ = s.SetWeight(v)
	case "dose":
		var unit infusion.DoseUnit
		if len(rest) > 1 {
			if unit, err = infusion.ParseDoseUnit(rest[1]); err != nil {
				return err
			}
		}
		_, _ = s.SetDose(v, unit)
	default:
		var unit infusion.ConcentrationUnit
		if len(rest) > 1 {
			if unit, err = infusion.ParseConcentrationUnit(rest[1]); err != nil {
				return err
			}
		}
		_, _ = s.SetConcentration(v, unit)
	}
	return nil
}
