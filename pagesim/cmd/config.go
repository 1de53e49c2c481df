package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/pagesim/paging"
	"github.com/spf13/cobra"
)

// envFlags maps environment variables to the flags they provide defaults
// for.
var envFlags = map[string]string{
	"PAGESIM_RAM_SIZE":  "ram-size",
	"PAGESIM_MAX_PAGES": "max-pages",
	"PAGESIM_ALGORITHM": "algorithm",
	"PAGESIM_RECORD_DB": "record-db",
}

// applyEnvDefaults loads envFile, if it exists, and uses PAGESIM_* variables
// for every flag that was not given on the command line. Variables already
// set in the environment win over the file. Precedence is flags, then the
// request file, then the environment.
func applyEnvDefaults(cmd *cobra.Command, envFile string) error {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	for env, name := range envFlags {
		value, ok := os.LookupEnv(env)
		if !ok || value == "" {
			continue
		}

		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}

		// Value.Set leaves the flag unchanged, so a request file still wins.
		err := flag.Value.Set(value)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", env, value, err)
		}
	}

	return nil
}

// addRequestFlags registers the flags every simulating command shares.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("sequence", "s", "",
		`Page references, separated by spaces or commas, e.g. "0 1 2 0"`)
	cmd.Flags().StringP("input", "i", "",
		"JSON request file with sequence, ramSize, maxPages and algorithm")
	cmd.Flags().IntP("ram-size", "r", 3, "Number of physical frames")
	cmd.Flags().IntP("max-pages", "m", 10, "Number of virtual pages")
}

// parseSequence reads page ids separated by whitespace or commas.
func parseSequence(text string) ([]paging.PageID, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	sequence := make([]paging.PageID, 0, len(fields))
	for _, field := range fields {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("page reference %q is not an integer", field)
		}

		sequence = append(sequence, paging.PageID(id))
	}

	return sequence, nil
}

// readRequest builds a request from the input file, if any, and the flags.
// Flags given on the command line override the file.
func readRequest(cmd *cobra.Command) (paging.Request, error) {
	req := paging.Request{RAMSize: 3, MaxPages: 10}

	flags := cmd.Flags()

	input, _ := flags.GetString("input")
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return req, err
		}

		err = json.Unmarshal(data, &req)
		if err != nil {
			return req, fmt.Errorf("reading %s: %w", input, err)
		}
	}

	if input == "" || flags.Changed("sequence") {
		text, _ := flags.GetString("sequence")

		sequence, err := parseSequence(text)
		if err != nil {
			return req, err
		}

		req.Sequence = sequence
	}

	if input == "" || flags.Changed("ram-size") {
		req.RAMSize, _ = flags.GetInt("ram-size")
	}

	if input == "" || flags.Changed("max-pages") {
		req.MaxPages, _ = flags.GetInt("max-pages")
	}

	if flags.Lookup("algorithm") != nil && (input == "" || flags.Changed("algorithm")) {
		name, _ := flags.GetString("algorithm")

		policy, err := paging.ParsePolicy(name)
		if err != nil {
			return req, err
		}

		req.Algorithm = policy
	}

	return req, nil
}
