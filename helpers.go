package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/muhammadolammi/interviewmate/internal/database"
	"github.com/muhammadolammi/interviewmate/internal/interview"
	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

var validate = validator.New()

func decodeCommand(body []byte) (Command, error) {
	cmd := Command{}
	if err := json.Unmarshal(body, &cmd); err != nil {
		return cmd, errors.Wrap(err, "error unmarshalling message body")
	}
	if cmd.InterviewID == uuid.Nil {
		return cmd, errors.New("missing interview_id")
	}
	if err := validate.Struct(cmd); err != nil {
		return cmd, errors.Wrap(err, "invalid command")
	}
	return cmd, nil
}

// errStaleInterview means another worker saved the interview after it was
// loaded.
var errStaleInterview = errors.New("interview was updated concurrently")

// storedSession is a session together with the row version it was read at.
type storedSession struct {
	interview.Session
	version int32
}

func loadSession(ctx context.Context, db Store, id uuid.UUID) (storedSession, error) {
	row, err := db.GetInterview(ctx, id)
	if err != nil {
		return storedSession{}, errors.Wrapf(err, "error getting interview %s", id)
	}
	var s interview.Session
	if err := json.Unmarshal(row.State, &s); err != nil {
		return storedSession{}, errors.Wrapf(err, "corrupt state for interview %s", id)
	}
	return storedSession{Session: s, version: row.Version}, nil
}

// saveSession writes s only if the row is still at the version it was loaded
// at, and returns the new version.
func saveSession(ctx context.Context, db Store, s interview.Session, version int32) (int32, error) {
	state, err := json.Marshal(s)
	if err != nil {
		return version, errors.Wrap(err, "failed to marshal interview state")
	}
	n, err := db.UpdateInterviewState(ctx, database.UpdateInterviewStateParams{
		Stage:   string(s.Stage),
		State:   state,
		ID:      s.ID,
		Version: version,
	})
	if err != nil {
		return version, errors.Wrap(err, "failed to save interview")
	}
	if n == 0 {
		return version, errors.Wrapf(errStaleInterview, "interview %s at version %d", s.ID, version)
	}
	return version + 1, nil
}

func saveEvaluation(ctx context.Context, db Store, s interview.Session) error {
	results, err := json.Marshal(s.Evaluation)
	if err != nil {
		return errors.Wrap(err, "failed to marshal evaluation")
	}
	score, _ := s.Evaluation["overall_score"].(float64)
	return db.CreateOrUpdateEvaluation(ctx, database.CreateOrUpdateEvaluationParams{
		OverallScore: score,
		Results:      results,
		InterviewID:  s.ID,
	})
}

type amqpPublisher struct {
	conn     *amqp.Connection
	exchange string
}

func (p amqpPublisher) Publish(interviewID string, update InterviewUpdate) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return err
	}
	routingKey := fmt.Sprintf("interview.%s", interviewID)

	return ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
