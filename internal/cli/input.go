package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var inputCmd = &cobra.Command{
	Use:   "input YEAR DAY",
	Short: "Print the puzzle input for a day",
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

		var text string
		if refetch {
			text, err = c.GetInputUncached(context.Background(), year, day)
		} else {
			text, err = c.GetInput(context.Background(), year, day)
		}
		if err != nil {
			return err
		}

		fmt.Print(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inputCmd)
}
