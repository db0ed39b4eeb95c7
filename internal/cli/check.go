package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/3ricLu/Symptomfy-sub001/internal/diagnosis"
)

func newCheckCmd(e *env) *cobra.Command {
	var locations []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run an interactive symptom check",
		Long: `Check walks through the symptom questionnaire one question at a
time and prints the diagnosis when the flow finishes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(locations) == 0 {
				return errors.New("at least one --location is required")
			}

			flow := diagnosis.NewFlow(e.app.Diagnosis, locations)
			step, err := flow.Start(cmd.Context())
			if err != nil {
				return err
			}

			in := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			for step.Question != nil {
				answer, err := askQuestion(out, in, step.Question)
				if err != nil {
					return err
				}
				step, err = flow.Answer(cmd.Context(), step.Question.ID, answer)
				if err != nil {
					return err
				}
			}

			printResult(out, step.Result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&locations, "location", nil, "Affected body location (repeatable)")

	return cmd
}

// askQuestion prints one question and reads the user's answer. Choice
// questions accept either the option number or the option text.
func askQuestion(out io.Writer, in *bufio.Scanner, q *diagnosis.Question) (string, error) {
	fmt.Fprintf(out, "\n[%d/%d] %s\n", q.Number, q.Total, q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(out, "> ")

	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", errors.New("input closed before the check finished")
	}
	answer := strings.TrimSpace(in.Text())

	if len(q.Options) > 0 {
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(q.Options) {
			return q.Options[n-1], nil
		}
	}
	return answer, nil
}

func printResult(out io.Writer, r *diagnosis.Result) {
	fmt.Fprintf(out, "\nDiagnosis: %s\n", r.Diagnosis)
	if r.Confidence != "" {
		fmt.Fprintf(out, "Confidence: %s\n", r.Confidence)
	}
	if r.Recommendation != "" {
		fmt.Fprintf(out, "Recommendation: %s\n", r.Recommendation)
	}
	if r.Advice != "" {
		fmt.Fprintf(out, "Advice: %s\n", r.Advice)
	}
}
