package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/muhammadolammi/interviewmate/internal/database"
	"github.com/muhammadolammi/interviewmate/internal/interview"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetOutput(io.Discard)
}

type scriptedGenerator struct {
	resume    string
	questions string
	eval      string
	evalErr   error
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Analyze the following resume"):
		return g.resume, nil
	case strings.Contains(prompt, "You are a technical interviewer"):
		return g.questions, nil
	case strings.Contains(prompt, "evaluate the candidate"):
		if g.evalErr != nil {
			return "", g.evalErr
		}
		return g.eval, nil
	}
	return "", fmt.Errorf("unexpected prompt")
}

func newScriptedGenerator() *scriptedGenerator {
	parts := make([]string, 0, interview.QuestionCount)
	for i := 1; i <= interview.QuestionCount; i++ {
		parts = append(parts, fmt.Sprintf(`"question%d": {"question": "Q%d?", "type": "problem", "focus_area": "algorithms"}`, i, i))
	}
	return &scriptedGenerator{
		resume:    "```json\n{\"primary_skills\": [\"Go\"], \"experience_summary\": \"3 years\"}\n```",
		questions: "{" + strings.Join(parts, ", ") + "}",
		eval:      `{"overall_score": 74, "category_scores": {"problem_solving": 15}, "strengths": ["clarity"], "areas_for_improvement": ["depth"], "detailed_feedback": "Solid."}`,
	}
}

type memoryStore struct {
	mu          sync.Mutex
	interviews  map[uuid.UUID]database.Interview
	resumes     map[uuid.UUID]database.Resume
	evaluations map[uuid.UUID]database.CreateOrUpdateEvaluationParams
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		interviews:  map[uuid.UUID]database.Interview{},
		resumes:     map[uuid.UUID]database.Resume{},
		evaluations: map[uuid.UUID]database.CreateOrUpdateEvaluationParams{},
	}
}

func (m *memoryStore) CreateInterview(_ context.Context, arg database.CreateInterviewParams) (database.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.interviews[arg.ID]; ok {
		return database.Interview{}, fmt.Errorf("duplicate key")
	}
	row := database.Interview{ID: arg.ID, Stage: arg.Stage, State: arg.State}
	m.interviews[arg.ID] = row
	return row, nil
}

func (m *memoryStore) GetInterview(_ context.Context, id uuid.UUID) (database.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.interviews[id]
	if !ok {
		return database.Interview{}, sql.ErrNoRows
	}
	return row, nil
}

func (m *memoryStore) UpdateInterviewState(_ context.Context, arg database.UpdateInterviewStateParams) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.interviews[arg.ID]
	if !ok || row.Version != arg.Version {
		return 0, nil
	}
	row.Stage = arg.Stage
	row.State = arg.State
	row.Version++
	m.interviews[arg.ID] = row
	return 1, nil
}

// barrierStore holds the first n GetInterview calls until all of them have
// read the row, so their steps start from the same snapshot.
type barrierStore struct {
	*memoryStore
	mu      sync.Mutex
	pending int
	ready   chan struct{}
}

func newBarrierStore(inner *memoryStore, n int) *barrierStore {
	return &barrierStore{memoryStore: inner, pending: n, ready: make(chan struct{})}
}

func (b *barrierStore) GetInterview(ctx context.Context, id uuid.UUID) (database.Interview, error) {
	row, err := b.memoryStore.GetInterview(ctx, id)

	b.mu.Lock()
	if b.pending == 0 {
		b.mu.Unlock()
		return row, err
	}
	b.pending--
	if b.pending == 0 {
		close(b.ready)
	}
	b.mu.Unlock()

	<-b.ready
	return row, err
}

func (m *memoryStore) GetLatestResumeByInterview(_ context.Context, interviewID uuid.UUID) (database.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[interviewID]
	if !ok {
		return database.Resume{}, sql.ErrNoRows
	}
	return r, nil
}

func (m *memoryStore) CreateOrUpdateEvaluation(_ context.Context, arg database.CreateOrUpdateEvaluationParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluations[arg.InterviewID] = arg
	return nil
}

type flakyDownloader struct {
	files    map[string][]byte
	failures int
	calls    int
}

func (d *flakyDownloader) Download(_ context.Context, key string) ([]byte, error) {
	d.calls++
	if d.calls <= d.failures {
		return nil, fmt.Errorf("connection reset")
	}
	data, ok := d.files[key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", key)
	}
	return data, nil
}

type recordingPublisher struct {
	updates []InterviewUpdate
}

func (p *recordingPublisher) Publish(_ string, update InterviewUpdate) error {
	p.updates = append(p.updates, update)
	return nil
}

func (p *recordingPublisher) last() InterviewUpdate {
	if len(p.updates) == 0 {
		return InterviewUpdate{}
	}
	return p.updates[len(p.updates)-1]
}
