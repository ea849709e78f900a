package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ecoamp/app"
	"github.com/kilianp07/ecoamp/core/counter"
)

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Inspect the prediction counter",
}

var counterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored prediction count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(func(svc *app.Service) error {
			n := svc.Counter.Get(cmd.Context())
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d (%s)\n", n, counter.Format(n))
			return err
		})
	},
}

var counterFormatCmd = &cobra.Command{
	Use:   "format N",
	Short: "Print N in the dashboard display form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("parse %q: %w", args[0], err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), counter.Format(n))
		return err
	},
}

func init() {
	counterCmd.AddCommand(counterShowCmd, counterFormatCmd)
	rootCmd.AddCommand(counterCmd)
}
