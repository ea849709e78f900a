package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ecoamp/core/sweep"
	"github.com/kilianp07/ecoamp/pkg/export"
)

var (
	sweepReq    sweep.Request
	sweepFormat string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Evaluate an estimator over a range of one input",
	Example: "  ecoamp sweep --tool range --param temperature_c --from -20 --to 40 --steps 7\n" +
		"  ecoamp sweep --tool cost --param target_charge_percent --from 50 --to 100 --steps 6",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := export.ParseFormat(sweepFormat)
		if err != nil {
			return err
		}
		params, err := sweep.Params(sweepReq.Tool)
		if err != nil {
			return err
		}
		if sweepReq.Param == "" {
			return fmt.Errorf("--param is required, one of: %s", strings.Join(params, ", "))
		}
		sweepReq.Now = time.Now
		res, err := sweep.Run(sweepReq)
		if err != nil {
			return err
		}
		switch format {
		case export.FormatJSON:
			return export.WriteJSON(cmd.OutOrStdout(), res)
		case export.FormatCSV:
			return export.WriteCSV(cmd.OutOrStdout(), res)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\n", res.Param, res.Metric)
		for _, p := range res.Points {
			if p.Err != "" {
				fmt.Fprintf(w, "%g\t- (%s)\n", p.Value, p.Err)
				continue
			}
			fmt.Fprintf(w, "%g\t%g\n", p.Value, p.Result)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if res.Valid > 0 {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "min %g  max %g  mean %.3f  slope %.4f per unit\n", res.Min, res.Max, res.Mean, res.Slope)
		}
		return err
	},
}

func init() {
	f := sweepCmd.Flags()
	f.StringVar(&sweepReq.Tool, "tool", "range", "range, soh, cost, regen or price")
	f.StringVar(&sweepReq.Param, "param", "", "input parameter to vary")
	f.Float64Var(&sweepReq.From, "from", 0, "first value")
	f.Float64Var(&sweepReq.To, "to", 100, "last value")
	f.IntVar(&sweepReq.Steps, "steps", 11, "number of evaluated points")
	f.StringVarP(&sweepFormat, "format", "o", "table", "output format: table, json or csv")
	rootCmd.AddCommand(sweepCmd)
}
