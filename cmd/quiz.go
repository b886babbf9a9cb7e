package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ducthang1752k4-ctrl/lingua/internal/engine"
	"github.com/ducthang1752k4-ctrl/lingua/internal/generator"
	"github.com/ducthang1752k4-ctrl/lingua/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [topic]",
	Short: "Take a generated reading quiz or TOEIC practice set",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		axis, _ := cmd.Flags().GetString("axis")
		part, _ := cmd.Flags().GetString("part")

		e, cleanup, err := openEngine(cmd, true)
		if err != nil {
			return err
		}
		defer cleanup()

		session, err := startQuizSession(cmd, e, args, part)
		if err != nil {
			return err
		}

		if session.Passage() != "" {
			fmt.Println(session.Passage())
			fmt.Println()
		}

		reader := bufio.NewReader(os.Stdin)
		for _, q := range session.Questions() {
			fmt.Printf("%d. %s\n", q.ID, q.Prompt)
			for i, opt := range q.Options {
				fmt.Printf("   %c) %s\n", 'a'+i, opt)
			}

			choice, ok := promptChoice(reader, len(q.Options))
			if !ok {
				fmt.Println("Quiz abandoned.")
				return nil
			}
			session.SelectAnswer(q.ID, choice)
		}

		score, err := e.FinishQuiz(cmd.Context(), axis, time.Now())
		if err != nil {
			return fmt.Errorf("finish quiz: %w", err)
		}

		fmt.Printf("\nScore: %d%%\n\n", score)
		for _, q := range session.Questions() {
			mark := "✓"
			if !q.Correct() {
				mark = "✗"
			}
			fmt.Printf("%s %d. %s\n", mark, q.ID, q.Prompt)
			if !q.Correct() {
				fmt.Printf("   Correct answer: %s\n", q.Options[q.CorrectIndex])
			}
			if q.Explanation != "" {
				fmt.Printf("   %s\n", q.Explanation)
			}
		}
		return nil
	},
}

// startQuizSession picks between a topic quiz and a TOEIC practice set
// based on the --part flag.
func startQuizSession(cmd *cobra.Command, e *engine.Engine, args []string, part string) (*quiz.Session, error) {
	switch part {
	case "":
		if len(args) == 0 {
			return nil, fmt.Errorf("a topic is required unless --part is set")
		}
		fmt.Printf("Generating a quiz about %q...\n\n", args[0])
		s, err := e.StartQuiz(cmd.Context(), args[0])
		if err != nil {
			return nil, fmt.Errorf("start quiz: %w", err)
		}
		return s, nil
	case "5":
		fmt.Print("Generating TOEIC Part 5 practice...\n\n")
		s, err := e.StartPractice(cmd.Context(), generator.PartIncompleteSentences)
		if err != nil {
			return nil, fmt.Errorf("start practice: %w", err)
		}
		return s, nil
	case "7":
		fmt.Print("Generating TOEIC Part 7 practice...\n\n")
		s, err := e.StartPractice(cmd.Context(), generator.PartReadingComprehension)
		if err != nil {
			return nil, fmt.Errorf("start practice: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown part %q, expected 5 or 7", part)
	}
}

// promptChoice reads an answer letter from stdin. Returns ok=false when
// the learner quits or input ends.
func promptChoice(reader *bufio.Reader, options int) (int, bool) {
	for {
		fmt.Print("Answer [a-" + string(rune('a'+options-1)) + ", q=quit]: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, false
		}
		in := strings.ToLower(strings.TrimSpace(line))
		if in == "q" {
			return 0, false
		}
		if len(in) == 1 && in[0] >= 'a' && int(in[0]-'a') < options {
			return int(in[0] - 'a'), true
		}
		// Also accept a bare number.
		if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= options {
			return n - 1, true
		}
		fmt.Println("Pick one of the listed options.")
	}
}

func init() {
	quizCmd.Flags().StringP("axis", "a", "Vocabulary", "Skill axis the score feeds into")
	quizCmd.Flags().StringP("part", "p", "", "TOEIC reading part to practice (5 or 7) instead of a topic quiz")
}
