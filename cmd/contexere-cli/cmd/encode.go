package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contexere/internal/application/commands"
	"contexere/internal/ports"
)

var (
	encodeTime    bool
	encodeSeconds bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode [date]",
	Short: "Encode a date (and optionally its time) as a token",
	Long: `Encode a date as a 4-character token (YYMD) or, with --time, a
7-character token (YYMDHMM). Without a date the current time is used.

Month letters run o (January) to z (December), days 1-9 then A-V, and
hours a (00) to x (23).

Examples:
  contexere-cli encode
  contexere-cli encode 2022-02-03
  contexere-cli encode "Feb 3 2022 14:05" --time
  contexere-cli encode --time --seconds --tz Europe/Rome`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds := encodeSeconds
		if !cmd.Flags().Changed("seconds") && encodeTime {
			seconds = cfg.Seconds
		}

		encode := commands.NewEncodeCommand(ports.SystemClock{}, strings.Join(args, " "), encodeTime, seconds, cfg.Timezone)
		result, err := encode.Execute(context.Background())
		if err != nil {
			return err
		}

		if verbose {
			fmt.Println(result.Message)
		} else {
			fmt.Println(result.Token)
		}
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Decode a date or date+time token",
	Long: `Decode a 4-character date token or a 7-character date+time token.

Examples:
  contexere-cli decode 22p3
  contexere-cli decode 22p3o05`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decode := commands.NewDecodeCommand(args[0], cfg.Timezone)
		result, err := decode.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	encodeCmd.Flags().BoolVarP(&encodeTime, "time", "t", false, "append hour and minutes")
	encodeCmd.Flags().BoolVarP(&encodeSeconds, "seconds", "s", false, "append seconds (requires --time)")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}
