package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/muhammadolammi/interviewmate/internal/extract"
	"github.com/muhammadolammi/interviewmate/internal/interview"
	"github.com/muhammadolammi/interviewmate/internal/resumetext"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interview in the terminal",
	Long:  "Analyze a resume (PDF, DOCX or text), ask the intake questionnaire and ten technical questions on stdin, then print the evaluation.",
	RunE:  runInterviewCmd,
}

var (
	interviewResumeFile string
	interviewPosition   string
	interviewRepair     bool
)

func init() {
	interviewCmd.Flags().StringVarP(&interviewResumeFile, "resume", "r", "", "Path to the resume file (required)")
	interviewCmd.Flags().StringVarP(&interviewPosition, "position", "p", "", "Position applied for (asked interactively when empty)")
	interviewCmd.Flags().BoolVar(&interviewRepair, "repair", false, "Repair malformed JSON in model responses")
	_ = interviewCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(interviewCmd)
}

func runInterviewCmd(cmd *cobra.Command, _ []string) error {
	if err := conf.ValidateLLM(); err != nil {
		return err
	}

	data, err := os.ReadFile(interviewResumeFile)
	if err != nil {
		return errors.Wrap(err, "failed to read resume")
	}
	mime := resumetext.MimeFromFilename(interviewResumeFile)
	resumeText, err := resumetext.Extract(mime, data)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	gen, err := GetGenerator(ctx, conf)
	if err != nil {
		return err
	}

	iv := newInterviewer(gen, interviewRepair || conf.Extract.Repair)
	_, err = runInterview(ctx, iv, resumeText, interviewPosition, cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

// runInterview drives a session from line-oriented input until it is
// evaluated.
func runInterview(ctx context.Context, iv *interview.Interviewer, resumeText, position string, in io.Reader, out io.Writer) (interview.Session, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	readLine := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return scanner.Text(), nil
	}

	s := interview.NewSession(uuid.New())
	fmt.Fprintln(out, "Welcome to InterviewMate! Analyzing your resume...")

	s, err := iv.IngestResume(ctx, s, resumeText)
	if err != nil {
		return s, err
	}

	for s.Stage == interview.StageCollectingIntake {
		q, _ := s.CurrentIntake()
		fmt.Fprintf(out, "\n%s\n> ", q.Prompt)
		line, err := readLine()
		if err != nil {
			return s, err
		}
		next, err := iv.SubmitIntake(s, line)
		if errors.Is(err, interview.ErrEmptyAnswer) {
			fmt.Fprintln(out, "Please provide an answer.")
			continue
		}
		if err != nil {
			return s, err
		}
		s = next
	}

	if strings.TrimSpace(position) == "" {
		fmt.Fprintf(out, "\nWhat position are you applying for? (leave empty for %q)\n> ", s.Intake[interview.IntakeKeyPosition])
		if position, err = readLine(); err != nil {
			return s, err
		}
	}
	fmt.Fprintln(out, "\nGenerating position-specific questions...")
	if s, err = iv.SelectPosition(ctx, s, position); err != nil {
		return s, err
	}

	for s.Stage == interview.StageAdministeringAssessment {
		q, _ := s.CurrentQuestion()
		fmt.Fprintf(out, "\n%s\nType: %s | Focus area: %s\n%s\n> ", s.Progress(), q.Type, q.FocusArea, q.Text)
		line, err := readLine()
		if err != nil {
			return s, err
		}
		next, err := iv.SubmitAnswer(s, line)
		if errors.Is(err, interview.ErrEmptyAnswer) {
			fmt.Fprintln(out, "Please provide an answer before continuing.")
			continue
		}
		if err != nil {
			return s, err
		}
		s = next
	}

	fmt.Fprintln(out, "\nEvaluating your responses...")
	if s, err = iv.Evaluate(ctx, s); err != nil {
		return s, err
	}
	printEvaluation(out, s.Evaluation)
	return s, nil
}

func printEvaluation(out io.Writer, rec extract.Record) {
	fmt.Fprintln(out, "\n== Evaluation Results ==")
	fmt.Fprintf(out, "Overall Score: %v/100\n", rec["overall_score"])

	if scores, ok := rec["category_scores"].(map[string]any); ok && len(scores) > 0 {
		fmt.Fprintln(out, "\nCategory Scores")
		names := make([]string, 0, len(scores))
		for name := range scores {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "- %s: %v/20\n", strings.ReplaceAll(name, "_", " "), scores[name])
		}
	}

	printList(out, "Key Strengths", rec["strengths"])
	printList(out, "Areas for Improvement", rec["areas_for_improvement"])

	fmt.Fprintln(out, "\nDetailed Feedback")
	fmt.Fprintln(out, rec["detailed_feedback"])
}

func printList(out io.Writer, title string, v any) {
	fmt.Fprintf(out, "\n%s\n", title)
	items, ok := v.([]any)
	if !ok {
		fmt.Fprintf(out, "- %v\n", v)
		return
	}
	for _, item := range items {
		fmt.Fprintf(out, "- %v\n", item)
	}
}
