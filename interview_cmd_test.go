package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/muhammadolammi/interviewmate/internal/extract"
	"github.com/muhammadolammi/interviewmate/internal/interview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptedInput(position string) string {
	var lines []string
	lines = append(lines, "", "Jane Doe")
	for i := 1; i < len(interview.IntakeQuestions); i++ {
		lines = append(lines, "intake answer")
	}
	if position != "-" {
		lines = append(lines, position)
	}
	lines = append(lines, "   ")
	for i := 0; i < interview.QuestionCount; i++ {
		lines = append(lines, "my answer")
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestRunInterview(t *testing.T) {
	iv := newInterviewer(newScriptedGenerator(), false)
	var out bytes.Buffer

	s, err := runInterview(context.Background(), iv, "Jane Doe, Go developer", "", strings.NewReader(scriptedInput("Platform Engineer")), &out)
	require.NoError(t, err)

	assert.Equal(t, interview.StageComplete, s.Stage)
	assert.Equal(t, "Jane Doe", s.Intake["Full Name"])
	assert.Equal(t, "Platform Engineer", s.Position)
	assert.Len(t, s.Answers, interview.QuestionCount)

	printed := out.String()
	assert.Contains(t, printed, "Please provide an answer.")
	assert.Contains(t, printed, "Please provide an answer before continuing.")
	assert.Contains(t, printed, "Question 1 of 10")
	assert.Contains(t, printed, "Type: problem | Focus area: algorithms")
	assert.Contains(t, printed, "Overall Score: 74/100")
	assert.Contains(t, printed, "- problem solving: 15/20")
}

func TestRunInterview_PositionFlagSkipsPrompt(t *testing.T) {
	iv := newInterviewer(newScriptedGenerator(), false)
	var out bytes.Buffer

	s, err := runInterview(context.Background(), iv, "resume", "SRE", strings.NewReader(scriptedInput("-")), &out)
	require.NoError(t, err)

	assert.Equal(t, "SRE", s.Position)
	assert.NotContains(t, out.String(), "What position are you applying for?")
}

func TestRunInterview_InputEndsEarly(t *testing.T) {
	iv := newInterviewer(newScriptedGenerator(), false)

	s, err := runInterview(context.Background(), iv, "resume", "", strings.NewReader("Jane Doe\n"), io.Discard)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, interview.StageCollectingIntake, s.Stage)
	assert.Equal(t, 1, s.IntakeIndex)
}

func TestRunInterview_EmptyResume(t *testing.T) {
	iv := newInterviewer(newScriptedGenerator(), false)

	_, err := runInterview(context.Background(), iv, "  ", "", strings.NewReader(""), io.Discard)

	assert.ErrorIs(t, err, interview.ErrEmptyResume)
}

func TestPrintEvaluation_Defaults(t *testing.T) {
	var out bytes.Buffer

	printEvaluation(&out, extract.Extract("not json", interview.EvaluationSpec()))

	printed := out.String()
	assert.Contains(t, printed, "Overall Score: 0/100")
	assert.NotContains(t, printed, "Category Scores")
	assert.Contains(t, printed, interview.DefaultDetailedFeedback)
}

func TestPrintList(t *testing.T) {
	var out bytes.Buffer

	printList(&out, "Key Strengths", []any{"clarity", "depth"})
	printList(&out, "Notes", "single value")

	assert.Equal(t, "\nKey Strengths\n- clarity\n- depth\n\nNotes\n- single value\n", out.String())
}
