package main

import (
	"github.com/spf13/cobra"

	"github.com/medcalc/medcalc/pkg/config"
	"github.com/medcalc/medcalc/pkg/scoring"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [protocol...]",
		Short: "Show the field schema of protocols",
		Long: `Prints every field of the given protocols (all when none are named):
kind, points, options and valid ranges. With --output json or yaml the
catalog is emitted in a form presentation layers can load directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, a, args)
		},
	}
}

func runCatalog(cmd *cobra.Command, a *app, ids []string) error {
	var defs []scoring.Definition
	if len(ids) == 0 {
		defs = a.engine.Registry().List()
	}
	for _, id := range ids {
		def, err := a.engine.Registry().Definition(id)
		if err != nil {
			a.logError("catalog lookup failed", err)
			return err
		}
		defs = append(defs, def)
	}

	r := a.renderer()
	w := cmd.OutOrStdout()
	switch a.cfg.Output {
	case config.OutputJSON, config.OutputYAML:
		return r.RenderCatalog(w, defs)
	}
	for _, def := range defs {
		if err := r.RenderDefinition(w, def); err != nil {
			return err
		}
	}
	return nil
}
