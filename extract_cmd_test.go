package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractToMap(t *testing.T, input, spec string, repair bool) map[string]any {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, runExtract(strings.NewReader(input), &out, spec, "Go Developer", repair))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	return rec
}

func TestRunExtract_Evaluation(t *testing.T) {
	rec := extractToMap(t, "Sure! ```json\n{\"overall_score\": 81}\n```", "evaluation", false)

	assert.Equal(t, float64(81), rec["overall_score"])
	assert.Equal(t, map[string]any{}, rec["category_scores"])
	assert.Equal(t, []any{}, rec["strengths"])
	assert.Equal(t, "Evaluation feedback could not be generated.", rec["detailed_feedback"])
}

func TestRunExtract_QuestionsUseDefaults(t *testing.T) {
	rec := extractToMap(t, "I cannot help with that.", "questions", false)

	require.Len(t, rec, 10)
	assert.Equal(t, map[string]any{
		"question":   "Describe your experience with Go Developer related technologies.",
		"type":       "general",
		"focus_area": "general experience",
	}, rec["question10"])
}

func TestRunExtract_Repair(t *testing.T) {
	input := "{'primary_skills': ['Go', 'SQL'],}"

	rec := extractToMap(t, input, "resume", false)
	assert.Equal(t, []any{"Could not parse skills"}, rec["primary_skills"])

	rec = extractToMap(t, input, "resume", true)
	assert.Equal(t, []any{"Go", "SQL"}, rec["primary_skills"])
}

func TestRunExtract_UnknownSpec(t *testing.T) {
	err := runExtract(strings.NewReader("{}"), &bytes.Buffer{}, "cover_letter", "", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown spec")
}
