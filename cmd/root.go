package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ducthang1752k4-ctrl/lingua/internal/engine"
	"github.com/ducthang1752k4-ctrl/lingua/internal/generator"
	"github.com/ducthang1752k4-ctrl/lingua/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "AI language learning coach",
	Long:  "Lingua is a terminal companion for English learners: spaced-repetition flashcards, skill tracking, and generated reading quizzes.",
}

func Execute() error {
	// A local .env is optional; missing files are fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUA_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINGUA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func newLogger(cmd *cobra.Command) *zap.Logger {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		log, err := zap.NewDevelopment()
		if err == nil {
			return log
		}
	}
	return zap.NewNop()
}

// openEngine opens the store and wires the engine. The returned cleanup
// closes the store and must always be called.
func openEngine(cmd *cobra.Command, withGen bool) (*engine.Engine, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	log := newLogger(cmd)
	opts := []engine.Option{engine.WithLogger(log)}

	if withGen {
		provider, err := generator.NewProviderFromEnv(cmd.Context(), log)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("content generator not configured: %w", err)
		}
		opts = append(opts, engine.WithGenerator(generator.NewService(provider)))
	}

	e := engine.New(cmd.Context(), st, time.Now(), opts...)

	cleanup := func() {
		_ = log.Sync()
		st.Close()
	}
	return e, cleanup, nil
}

func warn(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}
