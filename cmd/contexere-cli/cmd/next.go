package cmd

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"contexere/internal/application/commands"
	"contexere/internal/ports"
)

var (
	nextLedger bool
	nextCreate bool
	nextSuffix string
	nextMkdir  bool
	nextRecord bool
	nextCopy   bool
)

var nextCmd = &cobra.Command{
	Use:   "next [dir]",
	Short: "Suggest the next identifier for a directory",
	Long: `Suggest the next identifier for a directory.

The history is read from the directory listing (or the ledger with
--ledger). It must resolve to exactly one latest identifier: an empty
history, or several projects sharing the latest date, is an error.

Examples:
  contexere-cli next
  contexere-cli next ~/notebooks --copy
  contexere-cli next --create --suffix .ipynb --record
  contexere-cli next --create --mkdir`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		location, err := resolveLocation(args, 0)
		if err != nil {
			return err
		}
		provider, err := historyProvider(nextLedger)
		if err != nil {
			return err
		}
		ctx := context.Background()

		var l ports.Ledger
		if nextRecord {
			opened, err := GetLedger()
			if err != nil {
				return err
			}
			l = opened
		}

		suggest := commands.NewSuggestNextCommand(provider, location, cfg.Timezone)

		if nextCreate {
			mode := commands.CreateModeFile
			if nextMkdir {
				mode = commands.CreateModeDirectory
			}
			create := commands.NewCreateNextCommand(suggest, repo, l, nextSuffix, mode)
			result, err := create.Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return copyIfAsked(result.Identifier.String())
		}

		result, err := suggest.Execute(ctx)
		if err != nil {
			return err
		}
		logger.Debug("suggested identifier", "latest", result.Latest, "today", result.Today)

		if l != nil {
			record := commands.NewRecordCommand(l, location, result.Identifier.String(), "cli")
			if _, err := record.Execute(ctx); err != nil {
				return err
			}
		}

		fmt.Println(result.Identifier)
		return copyIfAsked(result.Identifier.String())
	},
}

func copyIfAsked(id string) error {
	if !nextCopy {
		return nil
	}
	if err := clipboard.WriteAll(id); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func init() {
	nextCmd.Flags().BoolVar(&nextLedger, "ledger", false, "read the history from the ledger")
	nextCmd.Flags().BoolVar(&nextCreate, "create", false, "create an entry named after the identifier")
	nextCmd.Flags().StringVar(&nextSuffix, "suffix", "", "text appended to the created name, e.g. .ipynb")
	nextCmd.Flags().BoolVar(&nextMkdir, "mkdir", false, "create a directory instead of a file")
	nextCmd.Flags().BoolVar(&nextRecord, "record", false, "record the identifier in the ledger")
	nextCmd.Flags().BoolVarP(&nextCopy, "copy", "c", false, "copy the identifier to the clipboard")

	rootCmd.AddCommand(nextCmd)
}
