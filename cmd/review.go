package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ducthang1752k4-ctrl/lingua/internal/srs"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review due flashcards",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		due := e.Scheduler().DueCards(time.Now())
		if len(due) == 0 {
			fmt.Println("Nothing due. Come back later.")
			return nil
		}

		fmt.Printf("%d cards due.\n\n", len(due))
		reader := bufio.NewReader(os.Stdin)

		for _, card := range due {
			fmt.Printf("  %s %s\n", card.Term, card.Transcription)
			fmt.Print("Press Enter to reveal...")
			if _, err := reader.ReadString('\n'); err != nil {
				return nil
			}
			fmt.Printf("  %s\n", card.Definition)
			if card.Example != "" {
				fmt.Printf("  e.g. %s\n", card.Example)
			}

			rating, ok := promptRating(reader)
			if !ok {
				fmt.Println("Review ended.")
				return nil
			}

			updated, err := e.Scheduler().ProcessReview(cmd.Context(), card.ID, rating, time.Now())
			if err != nil {
				warn(fmt.Sprintf("saving review: %v", err))
			}
			if updated != nil {
				fmt.Printf("Next review: %s\n\n", updated.NextReview.Local().Format("2006-01-02 15:04"))
			}
		}

		fmt.Println("Session complete.")
		return nil
	},
}

// promptRating reads a rating from stdin. Returns ok=false when the
// learner quits or input ends.
func promptRating(reader *bufio.Reader) (srs.Rating, bool) {
	for {
		fmt.Print("Rate [0=again 1=hard 2=good 3=easy, q=quit]: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, false
		}
		switch strings.TrimSpace(line) {
		case "q":
			return 0, false
		case "0":
			return srs.RatingAgain, true
		case "1":
			return srs.RatingHard, true
		case "2":
			return srs.RatingGood, true
		case "3":
			return srs.RatingEasy, true
		}
		fmt.Println("Please enter 0, 1, 2, 3, or q.")
	}
}
