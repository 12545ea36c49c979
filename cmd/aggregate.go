package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"scaling-bench/internal/dataparser"
	"scaling-bench/internal/logging"

	"github.com/spf13/cobra"
)

func newAggregateCommand() *cobra.Command {
	var src figureSource
	var asJSON bool

	aggregateCmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Print the aggregated figure of merit per sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				// keep stdout parseable
				logging.SetOutput(cmd.ErrOrStderr())
			}

			cfg, _, _, err := src.load()
			if err != nil {
				return err
			}
			applyConfigLogLevel(cmd, cfg)

			sweeps, err := dataparser.ProcessSweeps(cfg)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sweeps)
			}
			return writeTable(cmd.OutOrStdout(), sweeps)
		},
	}

	src.register(aggregateCmd)
	aggregateCmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON instead of a table")

	return aggregateCmd
}

func writeTable(out io.Writer, sweeps []dataparser.SweepResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SWEEP\tRAW KEY\tKEY\tFOM\tLINEAR")
	for _, s := range sweeps {
		for i, key := range s.Series.Keys {
			raw := ""
			if i < len(s.Records) {
				raw = strconv.Itoa(s.Records[i].Key)
			}
			linear := "-"
			if i < len(s.Reference) {
				linear = strconv.FormatFloat(s.Reference[i], 'g', 6, 64)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				s.Config.Name,
				raw,
				strconv.FormatFloat(key, 'g', 6, 64),
				strconv.FormatFloat(s.Series.Values[i], 'g', 6, 64),
				linear,
			)
		}
	}
	return w.Flush()
}
