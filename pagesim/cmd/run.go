package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/paging"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a reference string under one policy.",
		Long: "`run --sequence \"0 1 2 0 3\" --ram-size 3 --algorithm LRU` prints " +
			"every reference as a hit (H) or fault (F) with the frames after it.",
		Args: cobra.NoArgs,
		RunE: runSimulation,
	}

	addRequestFlags(runCmd)
	runCmd.Flags().StringP("algorithm", "a", "FIFO",
		"Replacement policy: FIFO, LRU, MRU or OPTIMAL")
	runCmd.Flags().StringP("format", "f", "table", "Output format: table or json")
	runCmd.Flags().BoolP("verbose", "v", false, "Log every step and eviction to stderr")
	runCmd.Flags().String("record-db", "",
		"Record the trace into <path>.sqlite3")
	runCmd.Flags().String("export", "",
		"Write the JSON trace to a file; .lz4 and .sz extensions compress it")
	runCmd.Flags().Bool("dump-state", false,
		"Dump the final frame table to stderr")

	return runCmd
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	builder := paging.MakeBuilder().
		WithRAMSize(req.RAMSize).
		WithMaxPages(req.MaxPages).
		WithPolicy(req.Algorithm)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger := log.New(cmd.ErrOrStderr(), "", 0)
		builder = builder.WithHook(paging.NewLogHook(logger))
	}

	var (
		recorder datarecording.DataRecorder
		tracer   *tracing.StepTracer
	)

	recordDB, _ := cmd.Flags().GetString("record-db")
	if recordDB != "" {
		err = paging.Validate(req)
		if err != nil {
			return err
		}

		if _, statErr := os.Stat(recordDB + ".sqlite3"); statErr == nil {
			return fmt.Errorf("%s.sqlite3 already exists", recordDB)
		}

		recorder = datarecording.New(recordDB)
		tracer = tracing.NewStepTracer(recorder, tracing.RunInfo{
			Algorithm: req.Algorithm,
			RAMSize:   req.RAMSize,
			MaxPages:  req.MaxPages,
		})
		builder = builder.WithHook(tracer)
	}

	simulator := builder.Build()

	result, err := simulator.Run(req.Sequence)
	if err != nil {
		return err
	}

	if tracer != nil {
		tracer.Finish()

		err = recorder.Close()
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = writeJSON(out, result)
	} else {
		err = writeTrace(out, req, result)
	}

	if err != nil {
		return err
	}

	if export, _ := cmd.Flags().GetString("export"); export != "" {
		err = tracing.ExportFile(export, result)
		if err != nil {
			return fmt.Errorf("exporting trace: %w", err)
		}
	}

	if dump, _ := cmd.Flags().GetBool("dump-state"); dump {
		return monitoring.DumpState(cmd.ErrOrStderr(), simulator.FrameTable(), 2)
	}

	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// writeTrace prints one row per reference and the totals.
func writeTrace(w io.Writer, req paging.Request, result *paging.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "t\tpage\t\t")
	for i := 0; i < req.RAMSize; i++ {
		fmt.Fprintf(tw, "f%d\t", i)
	}
	fmt.Fprintln(tw)

	for t, step := range result.Steps {
		outcome := "F"
		if step.IsHit {
			outcome = "H"
		}

		fmt.Fprintf(tw, "%d\t%d\t%s\t", t, step.PageID, outcome)
		for _, slot := range step.Frames {
			fmt.Fprintf(tw, "%s\t", slot)
		}
		fmt.Fprintln(tw)
	}

	err := tw.Flush()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s: %d hits, %d faults, hit ratio %.2f\n",
		req.Algorithm, result.Hits, result.Faults, result.HitRatio())

	return err
}
