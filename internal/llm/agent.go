// Package llm provides the text generation client used by the interview
// steps.
package llm

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-pro"

// Generator sends a prompt to a text generation service and returns the raw
// response text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AgentConfig struct {
	APIKey      string
	Model       string
	Name        string
	Instruction string
	Logger      log.FieldLogger
}

// AgentGenerator runs every prompt through a Gemini llmagent in a throwaway
// session so no conversation history leaks between calls.
type AgentGenerator struct {
	name     string
	runner   *runner.Runner
	sessions session.Service
	logger   log.FieldLogger
}

func NewAgentGenerator(ctx context.Context, cfg AgentConfig) (*AgentGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Logger == nil {
		cfg.Logger = log.StandardLogger()
	}

	model, err := gemini.NewModel(ctx, cfg.Model, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create model")
	}

	interviewer, err := llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Model:       model,
		Description: "Interview candidates from their resume",
		Instruction: cfg.Instruction,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create agent")
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        interviewer.Name(),
		Agent:          interviewer,
		SessionService: sessions,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create runner")
	}

	return &AgentGenerator{
		name:     interviewer.Name(),
		runner:   r,
		sessions: sessions,
		logger:   cfg.Logger.WithField("model", cfg.Model),
	}, nil
}

func (g *AgentGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	created, err := g.sessions.Create(ctx, &session.CreateRequest{
		AppName:   g.name,
		UserID:    g.name,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to create agent session")
	}
	sess := created.Session
	defer func() {
		err := g.sessions.Delete(context.Background(), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
		if err != nil {
			g.logger.WithError(err).Warn("failed to delete agent session")
		}
	}()

	stream := g.runner.Run(ctx, sess.UserID(), sess.ID(), &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", errors.Wrap(err, "agent stream")
		}
		if event == nil || !event.IsFinalResponse() || event.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range event.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		output = sb.String()
	}

	if strings.TrimSpace(output) == "" {
		return "", errors.New("empty agent response")
	}
	g.logger.WithField("session_id", sess.ID()).Debug("agent responded")
	return output, nil
}
