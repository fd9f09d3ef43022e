// Package interview drives one candidate interview: intake questionnaire,
// résumé analysis, position-specific technical questions and the final
// evaluation.
package interview

import (
	"context"
	"strings"
	"time"

	"github.com/muhammadolammi/interviewmate/internal/extract"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrWrongStage        = errors.New("step not allowed in current stage")
	ErrEmptyAnswer       = errors.New("answer is empty")
	ErrEmptyResume       = errors.New("resume text is empty")
	ErrEmptyPosition     = errors.New("position is empty")
	ErrNoResumeAnalysis  = errors.New("resume has not been analyzed")
	ErrIncompleteAnswers = errors.New("not every question has been answered")
)

// Generator sends a prompt to a text generation service.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Interviewer struct {
	gen       Generator
	extractor *extract.Extractor
	logger    log.FieldLogger
	now       func() time.Time
}

type Option func(*Interviewer)

func WithExtractor(e *extract.Extractor) Option {
	return func(iv *Interviewer) {
		iv.extractor = e
	}
}

func WithLogger(logger log.FieldLogger) Option {
	return func(iv *Interviewer) {
		iv.logger = logger
	}
}

func NewInterviewer(gen Generator, opts ...Option) *Interviewer {
	iv := &Interviewer{
		gen:    gen,
		logger: log.StandardLogger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(iv)
	}
	if iv.extractor == nil {
		iv.extractor = extract.New(extract.WithLogger(iv.logger))
	}
	return iv
}

func wrongStage(op string, s Session) error {
	return errors.Wrapf(ErrWrongStage, "%s in stage %s", op, s.Stage)
}

// IngestResume analyzes the résumé text. It may run while the intake is
// collected or while the position is awaited; a second call replaces the
// earlier analysis.
func (iv *Interviewer) IngestResume(ctx context.Context, s Session, resumeText string) (Session, error) {
	if s.Stage != StageCollectingIntake && s.Stage != StageAwaitingPosition {
		return s, wrongStage("ingest resume", s)
	}
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return s, ErrEmptyResume
	}

	raw, err := iv.gen.Generate(ctx, resumeAnalysisPrompt(resumeText))
	if err != nil {
		return s, errors.Wrap(err, "analyze resume")
	}

	next := s.clone()
	next.ResumeText = resumeText
	next.ResumeAnalysis = iv.extractor.Extract(raw, ResumeAnalysisSpec())
	next.UpdatedAt = iv.now()
	iv.logger.WithField("interview_id", s.ID).Info("resume analyzed")
	return next, nil
}

// SubmitIntake records the answer to the current intake question.
func (iv *Interviewer) SubmitIntake(s Session, answer string) (Session, error) {
	q, ok := s.CurrentIntake()
	if !ok {
		return s, wrongStage("submit intake answer", s)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return s, errors.Wrapf(ErrEmptyAnswer, "intake %q", q.Key)
	}

	next := s.clone()
	next.Intake[q.Key] = answer
	next.IntakeIndex++
	if next.IntakeIndex >= len(IntakeQuestions) {
		next.Stage = StageAwaitingPosition
	}
	next.UpdatedAt = iv.now()
	return next, nil
}

// SelectPosition generates the technical questions for position. A blank
// position falls back to the desired position given during intake.
func (iv *Interviewer) SelectPosition(ctx context.Context, s Session, position string) (Session, error) {
	if s.Stage != StageAwaitingPosition {
		return s, wrongStage("select position", s)
	}
	position = strings.TrimSpace(position)
	if position == "" {
		position = strings.TrimSpace(s.Intake[IntakeKeyPosition])
	}
	if position == "" {
		return s, ErrEmptyPosition
	}
	if s.ResumeAnalysis == nil {
		return s, ErrNoResumeAnalysis
	}

	raw, err := iv.gen.Generate(ctx, technicalQuestionsPrompt(s.ResumeAnalysis, position))
	if err != nil {
		return s, errors.Wrap(err, "generate technical questions")
	}

	next := s.clone()
	next.Position = position
	next.Questions = iv.extractor.Extract(raw, TechnicalQuestionsSpec(position))
	next.QuestionIndex = 0
	next.Stage = StageAdministeringAssessment
	next.UpdatedAt = iv.now()
	iv.logger.
		WithField("interview_id", s.ID).
		WithField("position", position).
		Info("technical questions generated")
	return next, nil
}

// SubmitAnswer records the answer to the current technical question. After
// the last one the session waits for Evaluate.
func (iv *Interviewer) SubmitAnswer(s Session, answer string) (Session, error) {
	q, ok := s.CurrentQuestion()
	if !ok {
		return s, wrongStage("submit answer", s)
	}
	if strings.TrimSpace(answer) == "" {
		return s, errors.Wrapf(ErrEmptyAnswer, "%s", q.Key)
	}

	next := s.clone()
	next.Answers[q.Key] = Answer{
		Question:  q.Text,
		Type:      q.Type,
		FocusArea: q.FocusArea,
		Answer:    answer,
	}
	next.QuestionIndex++
	if next.QuestionIndex >= QuestionCount {
		next.Stage = StageEvaluating
	}
	next.UpdatedAt = iv.now()
	return next, nil
}

// Evaluate scores the collected answers against the résumé analysis.
func (iv *Interviewer) Evaluate(ctx context.Context, s Session) (Session, error) {
	if s.Stage != StageEvaluating {
		return s, wrongStage("evaluate", s)
	}
	if len(s.Answers) != QuestionCount {
		return s, errors.Wrapf(ErrIncompleteAnswers, "got %d of %d", len(s.Answers), QuestionCount)
	}

	prompt, err := evaluationPrompt(s.ResumeAnalysis, s.Answers)
	if err != nil {
		return s, errors.Wrap(err, "build evaluation prompt")
	}
	raw, err := iv.gen.Generate(ctx, prompt)
	if err != nil {
		return s, errors.Wrap(err, "evaluate candidate")
	}

	next := s.clone()
	next.Evaluation = iv.extractor.Extract(raw, EvaluationSpec())
	next.Stage = StageComplete
	next.UpdatedAt = iv.now()
	iv.logger.
		WithField("interview_id", s.ID).
		WithField("overall_score", next.Evaluation["overall_score"]).
		Info("candidate evaluated")
	return next, nil
}
