package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz on a topic in the terminal",
	Long: "Generates a short multiple-choice quiz for one topic, reads your answers " +
		"(a-d, blank to skip) and records the score. Any submitted quiz marks the topic complete.",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := resolveTopic(cmd)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, true, false)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Preparing a quiz on %s...\n\n", key)

		sess, err := d.quiz.Start(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("start quiz: %w", err)
		}
		defer d.quiz.Leave()

		if sess.Degraded {
			fmt.Fprintln(out, "A quiz could not be generated for this topic right now. Try again later.")
			return nil
		}

		in := bufio.NewScanner(cmd.InOrStdin())
		for i, q := range sess.Questions {
			fmt.Fprintf(out, "Q%d. %s\n", i+1, q.Question)
			for j, opt := range q.Options {
				fmt.Fprintf(out, "   %c) %s\n", 'a'+j, opt)
			}
			choice, err := readChoice(in, out, len(q.Options))
			if err != nil {
				return err
			}
			if choice >= 0 {
				if err := d.quiz.Answer(i, choice); err != nil {
					return err
				}
			}
			fmt.Fprintln(out)
		}

		result, err := d.quiz.SubmitAnswers(cmd.Context())
		if err != nil && result.Phase != quiz.PhaseResult {
			return fmt.Errorf("submit quiz: %w", err)
		}
		printResult(out, result)
		return err
	},
}

// readChoice prompts until it reads a letter a..n, or a blank line (skip,
// returned as -1). EOF skips the remaining questions.
func readChoice(in *bufio.Scanner, out io.Writer, n int) (int, error) {
	for {
		fmt.Fprintf(out, "Your answer (a-%c, blank to skip): ", 'a'+n-1)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return 0, fmt.Errorf("read answer: %w", err)
			}
			fmt.Fprintln(out)
			return -1, nil
		}
		choice, err := parseChoice(in.Text(), n)
		if err == nil {
			return choice, nil
		}
		fmt.Fprintln(out, err)
	}
}

var errBadChoice = errors.New("please answer with a letter")

func parseChoice(s string, n int) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return -1, nil
	}
	if len(s) != 1 || s[0] < 'a' || int(s[0]-'a') >= n {
		return 0, errBadChoice
	}
	return int(s[0] - 'a'), nil
}

func printResult(out io.Writer, s quiz.Session) {
	fmt.Fprintf(out, "Score: %d/%d (%.0f%%)\n", s.Score, s.Total, s.Percent)
	fmt.Fprintln(out, s.Recommendation)
	for i, q := range s.Questions {
		if s.Answers[i] == q.Answer {
			continue
		}
		fmt.Fprintf(out, "  Q%d answer: %c) %s\n", i+1, 'a'+q.Answer, q.Options[q.Answer])
	}
}

func init() {
	addTopicFlags(quizCmd)
}
