package main

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/interviewmate/internal/database"
	"github.com/muhammadolammi/interviewmate/internal/interview"
	"github.com/muhammadolammi/interviewmate/internal/llm"
	"github.com/muhammadolammi/interviewmate/internal/resumetext"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	downloadAttempts = 3
	// staleAttempts bounds how often a step is replayed on a fresh copy of
	// the interview after losing a concurrent save.
	staleAttempts = 5
)

// applyCommand runs one interview step and persists the resulting session.
// Steps for one interview may reach several workers at once; a step whose
// save finds the row changed is replayed on the newer state.
func (workerConfig *WorkerConfig) applyCommand(ctx context.Context, cmd Command) (interview.Session, error) {
	var (
		s   interview.Session
		err error
	)
	for attempt := 1; attempt <= staleAttempts; attempt++ {
		s, err = workerConfig.applyOnce(ctx, cmd)
		if !errors.Is(err, errStaleInterview) {
			return s, err
		}
		log.
			WithField("interview_id", cmd.InterviewID).
			WithField("action", cmd.Action).
			WithField("attempt", attempt).
			Warn("interview changed while applying command, retrying")
	}
	return s, err
}

func (workerConfig *WorkerConfig) applyOnce(ctx context.Context, cmd Command) (interview.Session, error) {
	iv := workerConfig.Interviewer

	if cmd.Action == ActionStart {
		s := interview.NewSession(cmd.InterviewID)
		state, err := json.Marshal(s)
		if err != nil {
			return s, errors.Wrap(err, "failed to marshal interview state")
		}
		_, err = workerConfig.DB.CreateInterview(ctx, database.CreateInterviewParams{
			ID:    s.ID,
			Stage: string(s.Stage),
			State: state,
		})
		if err != nil {
			return s, errors.Wrap(err, "error creating interview")
		}
		return s, nil
	}

	stored, err := loadSession(ctx, workerConfig.DB, cmd.InterviewID)
	if err != nil {
		return stored.Session, err
	}
	s, version := stored.Session, stored.version

	switch cmd.Action {
	case ActionIngestResume:
		text, err := workerConfig.resumeText(ctx, s.ID)
		if err != nil {
			return s, err
		}
		s, err = iv.IngestResume(ctx, s, text)
		if err != nil {
			return s, err
		}
	case ActionIntakeAnswer:
		if s, err = iv.SubmitIntake(s, cmd.Text); err != nil {
			return s, err
		}
	case ActionSelectPosition:
		if s, err = iv.SelectPosition(ctx, s, cmd.Text); err != nil {
			return s, err
		}
	case ActionAnswer:
		if s, err = iv.SubmitAnswer(s, cmd.Text); err != nil {
			return s, err
		}
		if s.Stage == interview.StageEvaluating {
			// Keep the last answer even if the evaluation call fails;
			// an explicit evaluate command retries it.
			if version, err = saveSession(ctx, workerConfig.DB, s, version); err != nil {
				return s, err
			}
			if s, err = workerConfig.evaluate(ctx, s); err != nil {
				return s, err
			}
		}
	case ActionEvaluate:
		if s, err = workerConfig.evaluate(ctx, s); err != nil {
			return s, err
		}
	default:
		return s, errors.Errorf("unknown action %q", cmd.Action)
	}

	if _, err := saveSession(ctx, workerConfig.DB, s, version); err != nil {
		return s, err
	}
	return s, nil
}

func (workerConfig *WorkerConfig) evaluate(ctx context.Context, s interview.Session) (interview.Session, error) {
	s, err := workerConfig.Interviewer.Evaluate(ctx, s)
	if err != nil {
		return s, err
	}
	if err := saveEvaluation(ctx, workerConfig.DB, s); err != nil {
		return s, errors.Wrap(err, "failed to save evaluation")
	}
	return s, nil
}

// resumeText downloads the latest résumé uploaded for the interview and
// extracts its text. Downloads are retried, network failures being transient.
func (workerConfig *WorkerConfig) resumeText(ctx context.Context, interviewID uuid.UUID) (string, error) {
	resume, err := workerConfig.DB.GetLatestResumeByInterview(ctx, interviewID)
	if err != nil {
		return "", errors.Wrapf(err, "error getting resume for interview %s", interviewID)
	}

	fileBytes, err := llm.Retry(ctx, downloadAttempts, 500*time.Millisecond, func() ([]byte, error) {
		return workerConfig.Storage.Download(ctx, resume.ObjectKey)
	})
	if err != nil {
		return "", errors.Wrapf(err, "file download error for %s", resume.ObjectKey)
	}

	text, err := resumetext.Extract(resume.Mime, fileBytes)
	if err != nil {
		return "", errors.Wrapf(err, "text extraction error for %s", resume.ObjectKey)
	}
	return text, nil
}

// processMessage handles one queue delivery and publishes the outcome.
func (workerConfig *WorkerConfig) processMessage(ctx context.Context, workerID int, body []byte) {
	cmd, err := decodeCommand(body)
	if err != nil {
		log.WithError(err).Error("dropping invalid command")
		if cmd.InterviewID != uuid.Nil {
			workerConfig.publish(InterviewUpdate{
				InterviewID: cmd.InterviewID,
				Status:      "failed",
				Message:     "invalid command",
			})
		}
		return
	}

	logger := log.
		WithField("worker", workerID+1).
		WithField("interview_id", cmd.InterviewID).
		WithField("action", cmd.Action)
	logger.Info("processing command")

	s, err := workerConfig.applyCommand(ctx, cmd)
	if err != nil {
		logger.WithError(err).Error("command failed")
		workerConfig.publish(InterviewUpdate{
			InterviewID: cmd.InterviewID,
			Stage:       string(s.Stage),
			Status:      "failed",
			Message:     err.Error(),
		})
		return
	}

	update := InterviewUpdate{
		InterviewID: cmd.InterviewID,
		Stage:       string(s.Stage),
		Status:      "ok",
		Message:     cmd.Action + " completed",
	}
	if prompt, ok := s.NextPrompt(); ok {
		update.NextPrompt = prompt
	}
	workerConfig.publish(update)
}

func (workerConfig *WorkerConfig) publish(update InterviewUpdate) {
	update.Timestamp = time.Now()
	if err := workerConfig.Updates.Publish(update.InterviewID.String(), update); err != nil {
		log.WithError(err).WithField("interview_id", update.InterviewID).Warn("failed to publish update")
	}
}

func worker(id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := log.WithField("worker", id+1)

	// Each worker gets its own channel on the shared connection.
	ch, err := workerConfig.RabbitConn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("error connecting to rabbitmq channel")
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		workerConfig.Queue, // queue name
		true,               // durable (survives broker restarts)
		false,              // auto-delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		logger.WithError(err).Fatal("failed to declare queue")
	}

	// One unacked command at a time per worker. Workers still race on the
	// same interview; applyCommand replays a step that loses the race.
	if err := ch.Qos(1, 0, false); err != nil {
		logger.WithError(err).Fatal("failed to set qos")
	}

	msgs, err := ch.Consume(
		workerConfig.Queue, // queue name
		"",                 // consumer tag
		false,              // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		logger.WithError(err).Fatal("error consuming rabbitmq message")
	}

	for msg := range msgs {
		workerConfig.processMessage(context.Background(), id, msg.Body)
		if err := msg.Ack(false); err != nil {
			logger.WithError(err).Warn("failed to ack message")
		}
	}
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		log.WithField("worker", i+1).Info("worker started")
		go worker(i, workerConfig, &wg)
	}
	wg.Wait()
}
