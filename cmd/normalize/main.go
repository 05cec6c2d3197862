// Command normalize runs raw model output through the response
// normalization pipeline offline and prints the resulting JSON.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"course-compass/internal/domain"
	"course-compass/internal/normalize"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "normalize",
		Short:        "Normalize raw AI model output into quiz or course records",
		SilenceUsage: true,
	}
	root.AddCommand(quizCmd(), courseCmd(), promptCmd())
	return root
}

func quizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz [file]",
		Short: "Normalize a quiz generation response (reads stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runQuiz,
	}
	f := cmd.Flags()
	f.StringP("name", "n", "course", "Course or topic the quiz is about")
	f.StringP("difficulty", "d", "medium", "Quiz difficulty (easy, medium, hard)")
	f.IntP("count", "c", 10, "Requested number of questions (clamped to 30)")
	f.IntP("time", "t", normalize.DefaultTimePerQuestion, "Seconds per question")
	return cmd
}

func courseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course [file]",
		Short: "Normalize a course extraction response (reads stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCourse,
	}
	cmd.Flags().String("anchor", "", "Schedule anchor date in YYYY-MM-DD (default today)")
	return cmd
}

func promptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "prompt {quiz|course}",
		Short:     "Print the prompt sent to the model",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"quiz", "course"},
		RunE:      runPrompt,
	}
	f := cmd.Flags()
	f.StringP("name", "n", "course", "Quiz topic")
	f.StringP("difficulty", "d", "medium", "Quiz difficulty")
	f.IntP("count", "c", 10, "Quiz question count")
	f.String("url", "", "Course URL")
	f.Int("hours", normalize.DefaultHoursPerWeek, "Study hours per week")
	f.String("anchor", "", "TODAY date in YYYY-MM-DD for the course prompt (default today)")
	return cmd
}

func runQuiz(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	perQuestion, _ := cmd.Flags().GetInt("time")

	spec, err := normalize.NewQuizSpec(name, difficulty, count, perQuestion)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	questions, err := normalize.NormalizeQuizResponse(raw, spec)
	if err != nil {
		return describe(err)
	}
	return writeJSON(cmd.OutOrStdout(), questions)
}

func runCourse(cmd *cobra.Command, args []string) error {
	anchor, err := anchorDate(cmd)
	if err != nil {
		return err
	}

	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	info, err := normalize.NormalizeCourseResponse(raw, anchor)
	if err != nil {
		return describe(err)
	}
	return writeJSON(cmd.OutOrStdout(), info)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	out := cmd.OutOrStdout()
	switch args[0] {
	case "quiz":
		name, _ := f.GetString("name")
		difficulty, _ := f.GetString("difficulty")
		count, _ := f.GetInt("count")
		spec, err := normalize.NewQuizSpec(name, difficulty, count, 0)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, normalize.BuildQuizPrompt(spec))
		return err
	default:
		url, _ := f.GetString("url")
		hours, _ := f.GetInt("hours")
		today, err := anchorDate(cmd)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, normalize.BuildCourseExtractionPrompt(normalize.CourseExtractionParams{
			CourseURL:    url,
			HoursPerWeek: hours,
			Today:        today,
		}))
		return err
	}
}

// anchorDate reads --anchor, falling back to the current date.
func anchorDate(cmd *cobra.Command) (time.Time, error) {
	s, _ := cmd.Flags().GetString("anchor")
	if s == "" {
		return time.Now(), nil
	}
	parsed, err := time.Parse(normalize.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --anchor %q: %w", s, err)
	}
	return parsed, nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// describe appends the sanitized model text to a malformed-response error.
func describe(err error) error {
	var malformed *domain.MalformedAIResponseError
	if errors.As(err, &malformed) {
		return fmt.Errorf("%w\nsanitized text: %s", err, malformed.Text)
	}
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
