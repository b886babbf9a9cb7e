package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ducthang1752k4-ctrl/lingua/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This deletes the deck and skill profile. Re-run with --yes to confirm.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.Records()
		if err := repo.Delete(ctx, store.KeyVocabDeck); err != nil {
			return fmt.Errorf("delete deck: %w", err)
		}
		if err := repo.Delete(ctx, store.KeyProgress); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}

		fmt.Println("Learner data reset. Defaults will be seeded on next run.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
