package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposift/internal/adapters/driven/storage/sqlite"
)

var resultsCmd = &cobra.Command{
	Use:   "results [run-id]",
	Short: "List stored runs or show the records of one run",
	Long: `Reads the SQLite results store written by crawl --db.

Without arguments, lists runs most recent first. With a run ID, prints that
run's repositories in ranked order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().String("db", "", "SQLite results store path (default from output.db)")
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		_, settingsService, err := openSettings()
		if err != nil {
			return err
		}
		settings, err := settingsService.Load()
		if err != nil {
			return err
		}
		path = settings.Output.Database
	}

	store, err := sqlite.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		return printRunRecords(cmd, store, args[0])
	}

	runs, err := store.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs stored.")
		return nil
	}

	for i := range runs {
		r := &runs[i]
		cmd.Printf("%s  %s  %-28s %d records, %d suitable\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Backend, r.Records, r.Suitable)
	}
	return nil
}

func printRunRecords(cmd *cobra.Command, store *sqlite.Store, runID string) error {
	records, err := store.Records(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Printf("No records for run %s.\n", runID)
		return nil
	}

	for i := range records {
		r := &records[i]
		cmd.Printf("  [%d] %s (%d stars, %d keywords)\n", i+1, r.FullName, r.Stars, r.MatchCount)
		cmd.Printf("      %s\n", r.Verdict.String())
	}
	return nil
}
