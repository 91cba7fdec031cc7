package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newYearsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List the financial years with tax rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.rules()
			if err != nil {
				return err
			}
			for _, fy := range book.Years() {
				fmt.Fprintln(cmd.OutOrStdout(), fy)
			}
			return nil
		},
	}
}
