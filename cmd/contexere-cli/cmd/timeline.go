package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contexere/internal/application/commands"
)

var (
	timelineLedger bool
	timelineLimit  int
)

var timelineCmd = &cobra.Command{
	Use:   "timeline [dir]",
	Short: "List the identifiers of a directory, oldest first",
	Long: `List the identifiers found in a directory (or the ledger with --ledger),
oldest first, with the names carrying each one. Latest identifiers are
marked with *.

Examples:
  contexere-cli timeline
  contexere-cli timeline ~/notebooks --limit 10
  contexere-cli timeline --ledger`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		location, err := resolveLocation(args, 0)
		if err != nil {
			return err
		}
		provider, err := historyProvider(timelineLedger)
		if err != nil {
			return err
		}

		timeline := commands.NewTimelineCommand(provider, location, timelineLimit)
		result, err := timeline.Execute(context.Background())
		if err != nil {
			return err
		}

		if result.Total == 0 {
			fmt.Println("No identifiers found.")
			return nil
		}

		latest := make(map[string]bool, len(result.Last))
		for _, s := range result.Last {
			latest[s] = true
		}
		for _, id := range result.Timeline {
			marker := " "
			if latest[id.String()] {
				marker = "*"
			}
			fmt.Printf("%s %-14s %s\n", marker, id, strings.Join(result.Context.Names(id), ", "))
		}
		if len(result.Timeline) < result.Total {
			fmt.Printf("(%d of %d shown)\n", len(result.Timeline), result.Total)
		}
		return nil
	},
}

func init() {
	timelineCmd.Flags().BoolVar(&timelineLedger, "ledger", false, "read the history from the ledger")
	timelineCmd.Flags().IntVarP(&timelineLimit, "limit", "n", 0, "only show the newest N identifiers")

	rootCmd.AddCommand(timelineCmd)
}
