package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func pagesCmd(s *settings) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List the pages shown on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setup := resolveSetup(cmd, loadConfig(), *s)
			pages, err := setup.build(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer pages.Close()

			if asJSON {
				return writePagesJSON(cmd.OutOrStdout(), pages)
			}
			return writePages(cmd.OutOrStdout(), pages)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the pages as JSON")
	return cmd
}

func compatiblesCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "compatibles",
		Short: "Print the device tree compatibles pages are matched against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setup := resolveSetup(cmd, loadConfig(), *s)
			if len(setup.device) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No device tree compatibles found")
				return nil
			}
			for _, c := range setup.device {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
