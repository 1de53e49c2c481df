package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/pagesim/paging"
	"github.com/spf13/cobra"
)

const chartWidth = 40

func newCompareCmd() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the fault counts of all policies on one reference string.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readRequest(cmd)
			if err != nil {
				return err
			}

			summaries, err := paging.Compare(req.Sequence, req.RAMSize, req.MaxPages)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), summaries)
			case "table":
				return writeChart(cmd.OutOrStdout(), summaries)
			}

			return fmt.Errorf("unknown format %q", format)
		},
	}

	addRequestFlags(compareCmd)
	compareCmd.Flags().StringP("format", "f", "table", "Output format: table or json")

	return compareCmd
}

// writeChart prints one bar per policy, scaled to the largest fault count.
func writeChart(w io.Writer, summaries []paging.Summary) error {
	maxFaults := 1
	for _, s := range summaries {
		if s.Faults > maxFaults {
			maxFaults = s.Faults
		}
	}

	for _, s := range summaries {
		bar := strings.Repeat("#", s.Faults*chartWidth/maxFaults)

		_, err := fmt.Fprintf(w, "%-8s %-*s %d faults, %d hits\n",
			s.Policy, chartWidth, bar, s.Faults, s.Hits)
		if err != nil {
			return err
		}
	}

	return nil
}
