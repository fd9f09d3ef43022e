package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/interviewmate/internal/database"
	"github.com/muhammadolammi/interviewmate/internal/interview"
	"github.com/streadway/amqp"
)

// Store is the part of the generated queries the worker needs.
type Store interface {
	CreateInterview(ctx context.Context, arg database.CreateInterviewParams) (database.Interview, error)
	GetInterview(ctx context.Context, id uuid.UUID) (database.Interview, error)
	UpdateInterviewState(ctx context.Context, arg database.UpdateInterviewStateParams) (int64, error)
	GetLatestResumeByInterview(ctx context.Context, interviewID uuid.UUID) (database.Resume, error)
	CreateOrUpdateEvaluation(ctx context.Context, arg database.CreateOrUpdateEvaluationParams) error
}

type Downloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type Publisher interface {
	Publish(interviewID string, update InterviewUpdate) error
}

type WorkerConfig struct {
	DB          Store
	Storage     Downloader
	Updates     Publisher
	Interviewer *interview.Interviewer
	RabbitConn  *amqp.Connection
	Queue       string
}

// Command actions accepted on the interviews queue.
const (
	ActionStart          = "start"
	ActionIngestResume   = "ingest_resume"
	ActionIntakeAnswer   = "intake_answer"
	ActionSelectPosition = "select_position"
	ActionAnswer         = "answer"
	ActionEvaluate       = "evaluate"
)

type Command struct {
	InterviewID uuid.UUID `json:"interview_id"`
	Action      string    `json:"action" validate:"required,oneof=start ingest_resume intake_answer select_position answer evaluate"`
	// Text carries the candidate's answer or the selected position.
	Text string `json:"text,omitempty" validate:"max=20000"`
}

type InterviewUpdate struct {
	InterviewID uuid.UUID `json:"interview_id"`
	Stage       string    `json:"stage,omitempty"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	NextPrompt  string    `json:"next_prompt,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
