package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show <db.sqlite3> [run-id]",
		Short: "List the runs of a trace database, or the steps of one run.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  showTrace,
	}

	return showCmd
}

func showTrace(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err != nil {
		return err
	}

	dataReader := datarecording.NewReader(args[0])
	defer dataReader.Close()

	reader := tracing.NewTraceReader(dataReader)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	if len(args) == 1 {
		runs, err := reader.Runs(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(tw, "run\talgorithm\tframes\tpages\tlength\thits\tfaults")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
				r.RunID, r.Algorithm, r.RAMSize, r.MaxPages,
				r.Length, r.Hits, r.Faults)
		}

		return tw.Flush()
	}

	steps, err := reader.Steps(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	if len(steps) == 0 {
		return fmt.Errorf("no steps recorded for run %s", args[1])
	}

	evictions, err := reader.Evictions(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	evicted := make(map[int]tracing.EvictionEntry, len(evictions))
	for _, e := range evictions {
		evicted[e.Time] = e
	}

	fmt.Fprintln(tw, "t\tpage\t\tframes\tevicted")
	for _, s := range steps {
		outcome := "F"
		if s.IsHit {
			outcome = "H"
		}

		victim := ""
		if e, ok := evicted[s.Time]; ok {
			victim = fmt.Sprintf("%d (slot %d)", e.Evicted, e.Slot)
		}

		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n",
			s.Time, s.PageID, outcome, s.Frames, victim)
	}

	return tw.Flush()
}
