package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"contexere/internal/application/commands"
)

var recordCmd = &cobra.Command{
	Use:   "record <identifier> [dir]",
	Short: "Record an issued identifier in the ledger",
	Long: `Record an identifier in the ledger for a directory, e.g. one used for
something that does not live in the directory itself.

Examples:
  contexere-cli record proj22p3a
  contexere-cli record proj22p3b ~/notebooks`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		location, err := resolveLocation(args, 1)
		if err != nil {
			return err
		}
		l, err := GetLedger()
		if err != nil {
			return err
		}

		record := commands.NewRecordCommand(l, location, args[0], "cli")
		result, err := record.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync [dir]",
	Short: "Replace a directory's ledger rows with what is on disk",
	Long: `Scan a directory and replace its ledger rows with the identifiers found.
Rows recorded for identifiers that are not on disk are dropped.

Examples:
  contexere-cli sync
  contexere-cli sync ~/notebooks`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		location, err := resolveLocation(args, 0)
		if err != nil {
			return err
		}
		l, err := GetLedger()
		if err != nil {
			return err
		}

		sync := commands.NewSyncCommand(repo, l, location)
		result, err := sync.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List the directories known to the ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := GetLedger()
		if err != nil {
			return err
		}

		locations, err := l.Locations()
		if err != nil {
			return err
		}
		for _, loc := range locations {
			if at, ok := l.LastSync(loc); ok {
				fmt.Printf("%s  (synced %s)\n", loc, at.Format("2006-01-02 15:04"))
				continue
			}
			fmt.Println(loc)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(locationsCmd)
}
