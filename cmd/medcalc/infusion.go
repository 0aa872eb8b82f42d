package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medcalc/medcalc/pkg/infusion"
)

func newInfusionCmd(a *app) *cobra.Command {
	var (
		weight string
		dose   string
		conc   string
	)

	cmd := &cobra.Command{
		Use:   "infusion",
		Short: "Convert a weight-based dose into a pump rate (ml/h)",
		Example: `  medcalc infusion --weight 70 --dose 5 --conc 4
  medcalc infusion --weight 12,5 --dose 0.1 --dose-unit mg/kg/h --conc 500 --conc-unit mcg/ml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfusion(cmd, a, infusionOpts{
				weight:   weight,
				dose:     dose,
				doseUnit: a.cfg.Infusion.DoseUnit,
				conc:     conc,
				concUnit: a.cfg.Infusion.ConcentrationUnit,
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&weight, "weight", "", "Patient weight in kg (required)")
	f.StringVar(&dose, "dose", "", "Dose per kg (required)")
	f.StringVar(&conc, "conc", "", "Solution concentration (required)")
	f.String("dose-unit", "", "Dose unit: mcg/kg/min, mg/kg/min, mcg/kg/h or mg/kg/h (default from config)")
	f.String("conc-unit", "", "Concentration unit: mg/ml or mcg/ml (default from config)")
	_ = a.v.BindPFlag("dose-unit", f.Lookup("dose-unit"))
	_ = a.v.BindPFlag("conc-unit", f.Lookup("conc-unit"))
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("dose")
	_ = cmd.MarkFlagRequired("conc")

	return cmd
}

type infusionOpts struct {
	weight   string
	dose     string
	doseUnit string
	conc     string
	concUnit string
}

func (o infusionOpts) params() (infusion.Params, error) {
	var p infusion.Params
	var err error
	if p.WeightKg, err = infusion.ParseFloat(o.weight); err != nil {
		return p, err
	}
	if p.DoseValue, err = infusion.ParseFloat(o.dose); err != nil {
		return p, err
	}
	if p.ConcentrationValue, err = infusion.ParseFloat(o.conc); err != nil {
		return p, err
	}
	if p.DoseUnit, err = infusion.ParseDoseUnit(o.doseUnit); err != nil {
		return p, err
	}
	if p.ConcentrationUnit, err = infusion.ParseConcentrationUnit(o.concUnit); err != nil {
		return p, err
	}
	return p, nil
}

func runInfusion(cmd *cobra.Command, a *app, opts infusionOpts) error {
	p, err := opts.params()
	if err != nil {
		a.logError("infusion parameters rejected", err)
		return err
	}
	result, err := infusion.Calculate(p)
	if err != nil {
		a.logError("infusion calculation failed", err)
		return err
	}
	a.logger.Debug("infusion calculated",
		zap.Float64("rate_ml_h", result.RateMlPerHour),
		zap.String("dose_unit", string(p.DoseUnit)),
		zap.String("concentration_unit", string(p.ConcentrationUnit)),
	)
	return a.renderer().RenderInfusion(cmd.OutOrStdout(), p, result)
}

func isInfusionError(err error) bool {
	var ie *infusion.InputValidationError
	return errors.As(err, &ie)
}
