package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	examplePart int
	exampleFull bool
)

var exampleCmd = &cobra.Command{
	Use:   "example YEAR DAY",
	Short: "Print the worked example extracted from a day's puzzle page",
	Long: `Extracts the walkthrough example from the puzzle narrative. By default
only the example data is printed, suitable for piping into a solution.
With --full, the part-2 example data and the stated answers are printed
too, when the narrative carries them.

Pass --part 2 after unlocking part 2 to fetch the page including the
part-2 narrative.`,
	Args: cobra.ExactArgs(2),
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

		get := c.GetExample
		if refetch {
			get = c.GetExampleUncached
		}
		ex, cerr := get(context.Background(), year, day, examplePart)
		if cerr != nil {
			return cerr
		}
		if ex == nil {
			return fmt.Errorf("no example recognized on the %d day %d puzzle page", year, day)
		}

		if !exampleFull {
			fmt.Print(ex.Data)
			return nil
		}

		fmt.Printf("--- example data ---\n%s\n", ex.Data)
		if ex.Part1Answer != "" {
			fmt.Printf("--- part 1 answer ---\n%s\n", ex.Part1Answer)
		}
		if ex.Part2Data != "" {
			fmt.Printf("--- part 2 example data ---\n%s\n", ex.Part2Data)
		}
		if ex.Part2Answer != "" {
			fmt.Printf("--- part 2 answer ---\n%s\n", ex.Part2Answer)
		}
		return nil
	},
}

func init() {
	exampleCmd.Flags().IntVar(&examplePart, "part", 1, "which unlocked part's page copy to use (1 or 2)")
	exampleCmd.Flags().BoolVar(&exampleFull, "full", false, "print part-2 data and answers as well")
	rootCmd.AddCommand(exampleCmd)
}
