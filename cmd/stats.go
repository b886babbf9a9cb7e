package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show skill profile and study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		tracker := e.Tracker()
		fmt.Printf("Overall level: %s\n\n", tracker.OverallLevel())

		fmt.Println("Skill Axes")
		fmt.Println(strings.Repeat("─", 40))
		for _, a := range tracker.Axes() {
			fmt.Printf("%-14s %3d  %s\n", a.Axis, a.Value, bar(a.Value))
		}

		hist := tracker.History()
		if len(hist) > 0 {
			fmt.Println()
			fmt.Println("Recent Scores")
			fmt.Println(strings.Repeat("─", 40))
			for _, p := range hist {
				fmt.Printf("%-4s %3d  %s\n", p.Label, p.Score, bar(p.Score))
			}
		}

		due := e.Scheduler().DueCards(time.Now())
		fmt.Printf("\nDeck: %d cards, %d due now.\n", len(e.Scheduler().Cards()), len(due))
		return nil
	},
}

// bar renders a 20-cell progress bar for a 0-100 value.
func bar(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	filled := v / 5
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}
