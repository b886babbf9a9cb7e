package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ducthang1752k4-ctrl/lingua/internal/srs"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the flashcard deck",
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all flashcards",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		cards := e.Scheduler().Cards()
		if len(cards) == 0 {
			fmt.Println("The deck is empty.")
			return nil
		}

		now := time.Now()
		fmt.Printf("%-36s  %-18s  %-10s  %-5s  %s\n", "ID", "Term", "State", "Ease", "Next Review")
		fmt.Println(strings.Repeat("─", 90))
		for _, c := range cards {
			next := c.NextReview.Local().Format("2006-01-02 15:04")
			if c.IsDue(now) {
				next = "due now"
			}
			fmt.Printf("%-36s  %-18s  %-10s  %-5.2f  %s\n", c.ID, c.Term, c.State, c.EaseFactor, next)
		}
		return nil
	},
}

var vocabAddCmd = &cobra.Command{
	Use:   "add <term>",
	Short: "Add a flashcard by hand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		definition, _ := cmd.Flags().GetString("definition")
		transcription, _ := cmd.Flags().GetString("ipa")
		example, _ := cmd.Flags().GetString("example")

		e, cleanup, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		entry := srs.CardEntry{
			Term:          args[0],
			Definition:    definition,
			Transcription: transcription,
			Example:       example,
		}
		if err := e.Scheduler().AddCards(cmd.Context(), []srs.CardEntry{entry}, time.Now()); err != nil {
			return fmt.Errorf("add card: %w", err)
		}

		fmt.Printf("Added %q to the deck.\n", args[0])
		return nil
	},
}

var vocabDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a flashcard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEngine(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		if e.Scheduler().Card(args[0]) == nil {
			fmt.Printf("No card with ID %s.\n", args[0])
			return nil
		}
		if err := e.Scheduler().DeleteCard(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete card: %w", err)
		}

		fmt.Println("Card removed.")
		return nil
	},
}

var vocabGenerateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate new flashcards about a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		e, cleanup, err := openEngine(cmd, true)
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Printf("Generating %d cards about %q...\n", count, args[0])
		added, err := e.GenerateCards(cmd.Context(), args[0], count, time.Now())
		if err != nil {
			return fmt.Errorf("generate cards: %w", err)
		}

		for _, c := range added {
			fmt.Printf("  %s %s\n      %s\n", c.Term, c.Transcription, c.Definition)
		}
		fmt.Printf("Added %d cards to the deck.\n", len(added))
		return nil
	},
}

func init() {
	vocabAddCmd.Flags().StringP("definition", "d", "", "Definition shown on the back of the card")
	vocabAddCmd.Flags().String("ipa", "", "IPA transcription, e.g. /həˈloʊ/")
	vocabAddCmd.Flags().StringP("example", "e", "", "Example sentence")

	vocabGenerateCmd.Flags().IntP("count", "n", 5, "Number of cards to generate")

	vocabCmd.AddCommand(vocabListCmd)
	vocabCmd.AddCommand(vocabAddCmd)
	vocabCmd.AddCommand(vocabDeleteCmd)
	vocabCmd.AddCommand(vocabGenerateCmd)
}
