package interview

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/interviewmate/internal/extract"
)

type Stage string

const (
	StageCollectingIntake        Stage = "collecting_intake"
	StageAwaitingPosition        Stage = "awaiting_position"
	StageAdministeringAssessment Stage = "administering_assessment"
	StageEvaluating              Stage = "evaluating"
	StageComplete                Stage = "complete"
)

type IntakeQuestion struct {
	Key    string
	Prompt string
}

// IntakeKeyPosition is the intake answer used when no position is selected.
const IntakeKeyPosition = "Desired Position"

// IntakeQuestions is the fixed questionnaire asked before the assessment.
var IntakeQuestions = []IntakeQuestion{
	{Key: "Full Name", Prompt: "What is your full name?"},
	{Key: "Email", Prompt: "What is your email address?"},
	{Key: "Phone Number", Prompt: "What is your phone number?"},
	{Key: "Years of Experience", Prompt: "How many years of experience do you have?"},
	{Key: IntakeKeyPosition, Prompt: "What is your desired position?"},
	{Key: "Current Location", Prompt: "Where are you currently located?"},
	{Key: "Tech Stack", Prompt: "What is your tech stack (e.g., Python, Django, SQL)?"},
}

// Question is a technical question as presented to the candidate.
type Question struct {
	Key       string
	Text      string
	Type      string
	FocusArea string
}

type Answer struct {
	Question  string `json:"question"`
	Type      string `json:"type"`
	FocusArea string `json:"focus_area"`
	Answer    string `json:"answer"`
}

// Session is the whole state of one interview. Steps take a Session and
// return the next one; nothing is kept between calls.
type Session struct {
	ID             uuid.UUID         `json:"id"`
	Stage          Stage             `json:"stage"`
	Intake         map[string]string `json:"intake"`
	IntakeIndex    int               `json:"intake_index"`
	ResumeText     string            `json:"resume_text,omitempty"`
	ResumeAnalysis extract.Record    `json:"resume_analysis,omitempty"`
	Position       string            `json:"position,omitempty"`
	Questions      extract.Record    `json:"questions,omitempty"`
	QuestionIndex  int               `json:"question_index"`
	Answers        map[string]Answer `json:"answers"`
	Evaluation     extract.Record    `json:"evaluation,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func NewSession(id uuid.UUID) Session {
	now := time.Now().UTC()
	return Session{
		ID:        id,
		Stage:     StageCollectingIntake,
		Intake:    map[string]string{},
		Answers:   map[string]Answer{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CurrentIntake returns the intake question awaiting an answer.
func (s Session) CurrentIntake() (IntakeQuestion, bool) {
	if s.Stage != StageCollectingIntake || s.IntakeIndex >= len(IntakeQuestions) {
		return IntakeQuestion{}, false
	}
	return IntakeQuestions[s.IntakeIndex], true
}

// CurrentQuestion returns the technical question awaiting an answer.
func (s Session) CurrentQuestion() (Question, bool) {
	if s.Stage != StageAdministeringAssessment || s.QuestionIndex >= QuestionCount {
		return Question{}, false
	}
	return s.question(s.QuestionIndex + 1), true
}

func (s Session) question(n int) Question {
	key := QuestionKey(n)
	q := Question{Key: key, Type: DefaultQuestionType, FocusArea: DefaultQuestionFocus}

	switch v := s.Questions[key].(type) {
	case map[string]any:
		q.Text, _ = v["question"].(string)
		if t, ok := v["type"].(string); ok && t != "" {
			q.Type = t
		}
		if f, ok := v["focus_area"].(string); ok && f != "" {
			q.FocusArea = f
		}
	case string:
		q.Text = v
	}
	if q.Text == "" {
		q.Text, _ = DefaultQuestion(s.Position)["question"].(string)
	}
	return q
}

// NextPrompt returns the text the candidate should respond to next, if any.
func (s Session) NextPrompt() (string, bool) {
	switch s.Stage {
	case StageCollectingIntake:
		q, ok := s.CurrentIntake()
		return q.Prompt, ok
	case StageAwaitingPosition:
		return "What position are you applying for?", true
	case StageAdministeringAssessment:
		q, ok := s.CurrentQuestion()
		return q.Text, ok
	default:
		return "", false
	}
}

// Progress reports the assessment position as "Question n of 10".
func (s Session) Progress() string {
	n := s.QuestionIndex + 1
	if n > QuestionCount {
		n = QuestionCount
	}
	return fmt.Sprintf("Question %d of %d", n, QuestionCount)
}

func (s Session) clone() Session {
	out := s
	out.Intake = make(map[string]string, len(s.Intake))
	for k, v := range s.Intake {
		out.Intake[k] = v
	}
	out.Answers = make(map[string]Answer, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	out.ResumeAnalysis = cloneRecord(s.ResumeAnalysis)
	out.Questions = cloneRecord(s.Questions)
	out.Evaluation = cloneRecord(s.Evaluation)
	return out
}

func cloneRecord(r extract.Record) extract.Record {
	if r == nil {
		return nil
	}
	out := make(extract.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
