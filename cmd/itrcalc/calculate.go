package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/itrgo/tax-estimator/internal/config"
	"github.com/itrgo/tax-estimator/internal/output"
	"github.com/spf13/cobra"
)

type calculateOptions struct {
	input          string
	format         string
	out            string
	reportDir      string
	excludePastDue bool
}

func newCalculateCmd(a *app) *cobra.Command {
	opts := &calculateOptions{}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute tax for a request file under both regimes",
		Example: `  itrcalc calculate --input request.yaml
  itrcalc calculate -i request.json --format json --out result.json
  itrcalc calculate -i request.yaml --format all --report-dir reports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, a, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "request file (YAML or JSON)")
	flags.StringVarP(&opts.format, "format", "f", "console", "output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" or all")
	flags.StringVarP(&opts.out, "out", "o", "", "write the output to this file instead of stdout")
	flags.StringVar(&opts.reportDir, "report-dir", "", "write timestamped report files into this directory")
	flags.BoolVar(&opts.excludePastDue, "exclude-past-due", false, "omit advance tax installments that are already due")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runCalculate(cmd *cobra.Command, a *app, opts *calculateOptions) error {
	engine, err := a.engine(opts.excludePastDue)
	if err != nil {
		return err
	}
	req, err := config.NewInputParser().LoadFromFile(opts.input)
	if err != nil {
		return err
	}
	result, err := engine.Compute(req)
	if err != nil {
		return err
	}

	if opts.reportDir != "" {
		if err := os.MkdirAll(opts.reportDir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
		paths, err := output.GenerateReport(result, opts.format, opts.reportDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	}

	f, err := output.Lookup(opts.format)
	if err != nil {
		return err
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	if opts.out != "" {
		if err := os.WriteFile(opts.out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.out, err)
		}
		a.log.Infof("wrote %s report to %s", f.Name(), opts.out)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
