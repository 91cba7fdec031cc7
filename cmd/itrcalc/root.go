package main

import (
	"github.com/itrgo/tax-estimator/internal/calculation"
	"github.com/itrgo/tax-estimator/internal/config"
	"github.com/itrgo/tax-estimator/internal/domain"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/itrgo/tax-estimator/internal/logger"
	"github.com/spf13/cobra"
)

// app carries what the subcommands share once flags are parsed
type app struct {
	configFile string
	logLevel   string
	rulesFile  string

	settings *config.Settings
	log      *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "itrcalc",
		Short:         "Indian income tax estimator",
		Long:          "itrcalc computes income tax under the Old and New Regimes, recommends the cheaper one and plans advance tax.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "settings file (default: itrcalc.yaml in ., ./configs or /etc/itrcalc)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.rulesFile, "rules", "", "YAML file overriding the built-in tax rules")

	root.AddCommand(
		newCalculateCmd(a),
		newServeCmd(a),
		newYearsCmd(a),
		newExampleCmd(a),
	)
	return root
}

func (a *app) init() error {
	settings, err := config.LoadSettings(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		settings.Logging.Level = a.logLevel
	}
	if a.rulesFile != "" {
		settings.Rules.File = a.rulesFile
	}
	a.settings = settings

	a.log, err = logger.NewLogger(logger.Options{Level: settings.Logging.Level, Console: true})
	return err
}

func (a *app) rules() (*domain.RuleBook, error) {
	return a.settings.LoadRules()
}

func (a *app) engine(excludePastDue bool) (*calculation.Engine, error) {
	book, err := a.rules()
	if err != nil {
		return nil, err
	}
	return calculation.NewEngine(book,
		calculation.WithLogger(a.log.Named("engine")),
		calculation.WithExcludePastDue(excludePastDue || a.settings.AdvanceTax.ExcludePastDue),
	), nil
}

// displayError prefers the caller-facing hint over the internal chain
func displayError(err error) string {
	msg := ierr.DisplayMessage(err, "")
	if msg == "" {
		return err.Error()
	}
	return msg
}
