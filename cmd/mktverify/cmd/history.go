package cmd

import (
	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded verification runs",
	Long: `List recorded verification runs, newest first, or show the full
reports of one run by id.

Examples:
  mktverify history
  mktverify history --limit 5
  mktverify history 2zXoBkr3qqkGkkiUnGvcnTLvkHa`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 1 {
			run, err := store.GetRun(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Run %s (%s) passed=%v\n", run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Passed)
			for _, report := range run.Reports {
				report.Render(cmd.OutOrStdout())
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.ListRuns(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			cmd.Println("No recorded runs")
			return nil
		}

		for _, run := range runs {
			status := "PASSED"
			if !run.Passed {
				status = "FAILED"
			}
			cmd.Printf("%s  %s  %s  %d file(s)\n",
				run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), status, len(run.Reports))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")
}
