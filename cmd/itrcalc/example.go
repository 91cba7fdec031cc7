package main

import (
	"github.com/itrgo/tax-estimator/internal/config"
	"github.com/itrgo/tax-estimator/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExampleCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example request in YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := config.NewInputParser().CreateExampleRequest()
			if out != "" {
				if err := output.SaveRequest(req, out); err != nil {
					return err
				}
				a.log.Infof("wrote example request to %s", out)
				return nil
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(req); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the example to this file")
	return cmd
}
