package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mktdata/mktverify/pkg/verify"
)

// errVerificationFailed marks a run where at least one file or the
// expected-sum comparison did not pass; Execute turns it into exit code 1.
var errVerificationFailed = errors.New("some verifications failed")

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file>... [expected_sum]",
	Short: "Verify one or more capture files",
	Long: `Verify capture files: header checks, sequence continuity, and a
compensated sum of record payloads. Glob patterns are expanded. A trailing
numeric argument is treated as an expected sum and compared against the
computed sum, but only when exactly one file is verified.

Examples:
  mktverify verify data/mktdata_20260101.bin
  mktverify verify 'data/mktdata_*.bin'
  mktverify verify data/mktdata_20260101.bin 12345.678`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, expected := splitArgs(cmd, args)
		if len(files) == 0 {
			return errors.New("no valid data files found")
		}

		if tolerance, _ := cmd.Flags().GetFloat64("tolerance"); tolerance > 0 {
			cfg.Verification.Tolerance = tolerance
		}

		if expected != nil && len(files) > 1 {
			cmd.Println("Warning: expected sum ignored when verifying multiple files")
			expected = nil
		}

		verifier := verify.NewVerifier(verifierConfig(), nil)
		reports, passed := verifier.VerifyAll(files, expected)

		for _, report := range reports {
			report.Render(cmd.OutOrStdout())
		}

		if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
			if err := recordRun(cmd, reports, passed); err != nil {
				cmd.Printf("Warning: %v\n", err)
			}
		}

		cmd.Println()
		if !passed {
			cmd.Println("Some verifications failed!")
			return errVerificationFailed
		}
		cmd.Println("All verifications passed!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Float64("tolerance", 0, "Absolute tolerance for the expected-sum comparison")
	verifyCmd.Flags().Bool("no-history", false, "Do not record this run in the history store")
}

// splitArgs classifies arguments into file paths and an optional trailing
// expected sum. Globs are expanded; an argument that is neither a path, a
// matching glob, nor a number is ignored with a warning.
func splitArgs(cmd *cobra.Command, args []string) ([]string, *float64) {
	var files []string
	var expected *float64

	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil || len(matches) == 0 {
				cmd.Printf("Warning: pattern '%s' matched no files\n", arg)
				continue
			}
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(arg); err == nil {
			files = append(files, arg)
			continue
		}
		if value, err := strconv.ParseFloat(arg, 64); err == nil {
			expected = &value
			continue
		}
		cmd.Printf("Warning: ignoring invalid parameter '%s'\n", arg)
	}

	return files, expected
}

func recordRun(cmd *cobra.Command, reports []*verify.Report, passed bool) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.RecordRun(reports, passed)
	if err != nil {
		return err
	}
	cmd.Printf("Run recorded: %s\n", run.ID)
	return nil
}
