package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/medcalc/medcalc/pkg/config"
	"github.com/medcalc/medcalc/pkg/scoring"
	"github.com/medcalc/medcalc/pkg/surface"
)

// app is the state shared by every subcommand: layered settings, the
// logger and the engine built from the enabled protocols.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
	engine *scoring.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "medcalc",
		Short: "Clinical scores and infusion rates from the command line",
		Long: `medcalc evaluates clinical scoring protocols (Glasgow, CURB-65, MELD,
SOFA-2, Phoenix, GRACE, KDIGO and more) and converts weight-based drug doses
into pump rates.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default: .medcalc/config.yaml in this or a parent directory)")
	pf.StringP("output", "o", config.OutputText, "Output format: text, json, yaml or markdown")
	pf.Bool("color", true, "Colorize terminal output (NO_COLOR disables)")
	pf.BoolP("verbose", "v", false, "Enable debug logging on stderr")
	_ = a.v.BindPFlags(pf)

	rootCmd.AddCommand(
		newProtocolsCmd(a),
		newCatalogCmd(a),
		newEvalCmd(a),
		newInfusionCmd(a),
		newSessionCmd(a),
	)
	return rootCmd
}

// setup loads the config file and layers MEDCALC_* environment variables and
// flags over it.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.v.SetEnvPrefix("MEDCALC")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	zc := zap.NewProductionConfig()
	if a.v.GetBool("verbose") {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	path := firstNonEmpty(a.v.GetString("config"), discoverConfig())
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	a.v.SetDefault("output", cfg.Output)
	a.v.SetDefault("color", cfg.Color)
	a.v.SetDefault("dose-unit", cfg.Infusion.DoseUnit)
	a.v.SetDefault("conc-unit", cfg.Infusion.ConcentrationUnit)

	cfg.Output = a.v.GetString("output")
	cfg.Color = a.v.GetBool("color")
	cfg.Infusion.DoseUnit = a.v.GetString("dose-unit")
	cfg.Infusion.ConcentrationUnit = a.v.GetString("conc-unit")
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	a.engine = scoring.NewEngine(registry)

	a.logger.Debug("configured",
		zap.String("config", path),
		zap.String("output", cfg.Output),
		zap.Int("protocols", registry.Len()),
	)
	return nil
}

func (a *app) renderer() surface.Renderer {
	r, err := surface.ForFormat(a.cfg.Output, a.cfg.Color)
	if err != nil {
		// Validate already rejected unknown formats.
		return surface.NewTerminal(a.cfg.Color)
	}
	return r
}

// logError records the kind of a failed request before it is returned to the user.
func (a *app) logError(msg string, err error) {
	kind := "other"
	switch {
	case scoring.IsConfigurationError(err):
		kind = "configuration"
	case scoring.IsInputValidationError(err), isInfusionError(err):
		kind = "input_validation"
	}
	a.logger.Debug(msg, zap.String("kind", kind), zap.Error(err))
}

func discoverConfig() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return config.FindConfigFile(wd)
}

// firstNonEmpty returns the first non-empty string from the arguments.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
