package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var puzzlePart int

var puzzleCmd = &cobra.Command{
	Use:   "puzzle YEAR DAY",
	Short: "Print a day's puzzle text as Markdown",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, day, err := parseDayArgs(args)
		if err != nil {
			return err
		}

		c, err := buildClient()
		if err != nil {
			return err
		}
		defer closeClient(c)

		markdown, cerr := c.GetPuzzle(context.Background(), year, day, puzzlePart)
		if cerr != nil {
			return cerr
		}

		fmt.Print(markdown)
		return nil
	},
}

func init() {
	puzzleCmd.Flags().IntVar(&puzzlePart, "part", 1, "which unlocked part's page copy to use (1 or 2)")
	rootCmd.AddCommand(puzzleCmd)
}
