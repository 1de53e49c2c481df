package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/paging"
	"github.com/spf13/cobra"
)

type benchConfig struct {
	length     int
	seed       int64
	iterations int
	ramSize    int
	maxPages   int
}

type benchResult struct {
	policy  paging.Policy
	faults  int
	elapsed time.Duration
}

func newBenchCmd() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every policy on a random reference string.",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}

	benchCmd.Flags().IntP("length", "n", 10000, "Length of the generated reference string")
	benchCmd.Flags().Int64("seed", 1, "Seed of the reference string generator")
	benchCmd.Flags().Int("iterations", 5, "Runs per policy")
	benchCmd.Flags().IntP("ram-size", "r", 16, "Number of physical frames")
	benchCmd.Flags().IntP("max-pages", "m", 64, "Number of virtual pages")
	benchCmd.Flags().Bool("profile", false, "Report the hottest functions from a CPU profile")

	return benchCmd
}

func runBench(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	cfg := benchConfig{}
	cfg.length, _ = flags.GetInt("length")
	cfg.seed, _ = flags.GetInt64("seed")
	cfg.iterations, _ = flags.GetInt("iterations")
	cfg.ramSize, _ = flags.GetInt("ram-size")
	cfg.maxPages, _ = flags.GetInt("max-pages")

	if cfg.iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", cfg.iterations)
	}

	sequence := randomSequence(cfg.seed, cfg.length, cfg.maxPages)

	err := paging.Validate(paging.Request{
		Sequence: sequence,
		RAMSize:  cfg.ramSize,
		MaxPages: cfg.maxPages,
	})
	if err != nil {
		return err
	}

	var results []benchResult
	work := func() {
		results = benchPolicies(cmd.ErrOrStderr(), cfg, sequence)
	}

	var summary *monitoring.ProfileSummary
	if profile, _ := flags.GetBool("profile"); profile {
		summary, err = monitoring.ProfileCPU(work)
		if err != nil {
			return err
		}
	} else {
		work()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d references, %d frames, %d pages, seed %d\n",
		cfg.length, cfg.ramSize, cfg.maxPages, cfg.seed)
	for _, r := range results {
		fmt.Fprintf(out, "%-8s %8d faults %12s/run\n",
			r.policy, r.faults, r.elapsed/time.Duration(cfg.iterations))
	}

	resources, err := monitoring.ResourceUsage()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "cpu %.1f%%, rss %d KiB\n",
		resources.CPUPercent, resources.MemorySize/1024)

	if summary != nil {
		writeProfile(out, summary)
	}

	return nil
}

func benchPolicies(
	progress io.Writer,
	cfg benchConfig,
	sequence []paging.PageID,
) []benchResult {
	policies := paging.AllPolicies()
	bar := monitoring.NewProgressBar("bench", uint64(len(policies)*cfg.iterations))

	results := make([]benchResult, 0, len(policies))
	for _, policy := range policies {
		r := benchResult{policy: policy}

		for i := 0; i < cfg.iterations; i++ {
			bar.IncrementInProgress(1)

			start := time.Now()
			result, err := paging.Simulate(paging.Request{
				Sequence:  sequence,
				RAMSize:   cfg.ramSize,
				MaxPages:  cfg.maxPages,
				Algorithm: policy,
			})
			r.elapsed += time.Since(start)

			if err != nil {
				panic(err)
			}

			r.faults = result.Faults

			bar.MoveInProgressToFinished(1)
			fmt.Fprintf(progress, "\r%s", bar.Render(chartWidth))
		}

		results = append(results, r)
	}

	fmt.Fprintln(progress)

	return results
}

func writeProfile(w io.Writer, summary *monitoring.ProfileSummary) {
	fmt.Fprintf(w, "profile: %d %s of %s\n",
		summary.Total, summary.Unit, summary.SampleType)

	for _, fn := range summary.Top(10) {
		fmt.Fprintf(w, "%14d  %s\n", fn.Value, fn.Name)
	}
}

func randomSequence(seed int64, length, maxPages int) []paging.PageID {
	rng := rand.New(rand.NewSource(seed))

	sequence := make([]paging.PageID, length)
	if maxPages < 1 {
		return sequence
	}

	for i := range sequence {
		sequence[i] = paging.PageID(rng.Intn(maxPages))
	}

	return sequence
}
