package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyswtn/linkprobe/internal/config"
	"github.com/kyswtn/linkprobe/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List past check runs",
		Long: `History lists recently recorded check runs, newest first.

With a run ID argument, it prints the stored per-address outcomes of
that run instead.

Examples:
  # List the last 20 runs
  linkprobe history

  # List the last 5 runs
  linkprobe history -n 5

  # Show the outcomes of one run
  linkprobe history 4f7c9a12-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().String("db-dir", "", "Directory of the history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		outcomes, err := db.RunOutcomes(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(outcomes) == 0 {
			fmt.Fprintf(out, "No outcomes recorded for run %s.\n", args[0])
			return nil
		}
		for _, o := range outcomes {
			fmt.Fprintf(out, "[%d %s] %s\n", o.Code, o.Reason, o.Address)
		}
		return nil
	}

	runs, err := db.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s  %-40s  good=%d bad=%d error=%d\n",
			r.ID,
			r.Started.Local().Format("2006-01-02 15:04"),
			r.Document,
			r.Tally.Good,
			r.Tally.Bad,
			r.Tally.Error,
		)
	}
	return nil
}
