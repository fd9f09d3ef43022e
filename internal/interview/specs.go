package interview

import (
	"fmt"

	"github.com/muhammadolammi/interviewmate/internal/extract"
)

// QuestionCount is the number of technical questions asked per interview.
const QuestionCount = 10

// Fallback values double as sentinels: callers detect an unanswered field by
// comparing against them.
const (
	DefaultQuestionType      = "general"
	DefaultQuestionFocus     = "general experience"
	DefaultDetailedFeedback  = "Evaluation feedback could not be generated."
	defaultQuestionTemplate  = "Describe your experience with %s related technologies."
	defaultExperienceSummary = "Could not parse experience"
)

// ResumeAnalysisSpec describes the structured summary extracted from a résumé.
func ResumeAnalysisSpec() extract.Spec {
	return extract.Spec{
		Name: "resume_analysis",
		Fields: []extract.Field{
			{Key: "primary_skills", Default: []any{"Could not parse skills"}},
			{Key: "experience_summary", Default: defaultExperienceSummary},
			{Key: "key_projects", Default: []any{"Could not parse projects"}},
			{Key: "areas_for_clarification", Default: []any{"Need complete resume review"}},
			{Key: "suggested_question_topics", Default: []any{"Basic skills assessment"}},
		},
	}
}

// QuestionKey returns the record key of the n-th technical question, 1-based.
func QuestionKey(n int) string {
	return fmt.Sprintf("question%d", n)
}

// DefaultQuestion is the entry substituted for a missing or malformed question.
func DefaultQuestion(position string) map[string]any {
	return map[string]any{
		"question":   fmt.Sprintf(defaultQuestionTemplate, position),
		"type":       DefaultQuestionType,
		"focus_area": DefaultQuestionFocus,
	}
}

// TechnicalQuestionsSpec requires question1..question10, each an object with
// a non-empty "question" member.
func TechnicalQuestionsSpec(position string) extract.Spec {
	fields := make([]extract.Field, 0, QuestionCount)
	for i := 1; i <= QuestionCount; i++ {
		fields = append(fields, extract.Field{
			Key:     QuestionKey(i),
			Default: DefaultQuestion(position),
			Valid:   extract.HasStringField("question"),
		})
	}
	return extract.Spec{Name: "technical_questions", Fields: fields}
}

// EvaluationSpec describes the rubric result. Scores are not range checked.
func EvaluationSpec() extract.Spec {
	return extract.Spec{
		Name: "evaluation",
		Fields: []extract.Field{
			{Key: "overall_score", Default: float64(0)},
			{Key: "category_scores", Default: map[string]any{}},
			{Key: "strengths", Default: []any{}},
			{Key: "areas_for_improvement", Default: []any{}},
			{Key: "detailed_feedback", Default: DefaultDetailedFeedback},
		},
	}
}
