package main

import (
	"context"
	"time"

	"github.com/muhammadolammi/interviewmate/internal/config"
	"github.com/muhammadolammi/interviewmate/internal/extract"
	"github.com/muhammadolammi/interviewmate/internal/interview"
	"github.com/muhammadolammi/interviewmate/internal/llm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const agentName = "interviewmate"

// GetGenerator builds the Gemini agent and retries transient failures.
func GetGenerator(ctx context.Context, conf *config.Configuration) (llm.Generator, error) {
	gen, err := llm.NewAgentGenerator(ctx, llm.AgentConfig{
		APIKey:      conf.Google.APIKey,
		Model:       conf.Google.Model,
		Name:        agentName,
		Instruction: prompt(),
		Logger:      log.StandardLogger(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create agent")
	}
	return llm.Retrying{Next: gen, Attempts: conf.Google.Attempts, Backoff: 500 * time.Millisecond}, nil
}

func newExtractor(repair bool) *extract.Extractor {
	opts := []extract.Option{extract.WithLogger(log.StandardLogger())}
	if repair {
		opts = append(opts, extract.WithRepair())
	}
	return extract.New(opts...)
}

func newInterviewer(gen interview.Generator, repair bool) *interview.Interviewer {
	return interview.NewInterviewer(gen,
		interview.WithExtractor(newExtractor(repair)),
		interview.WithLogger(log.StandardLogger()),
	)
}
