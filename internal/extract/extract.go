// Package extract recovers JSON objects from LLM output and completes them
// against a Spec of required keys.
//
// Extraction never fails: text that cannot be parsed yields the spec's
// defaults, so callers compare values against the defaults when they need to
// know that the model did not answer.
package extract

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	fence     = "```"
	jsonFence = "```json"
)

// Stage tells how the record was recovered from the raw text.
type Stage int

const (
	StageNone Stage = iota
	StageDirect
	StageFenceFallback
	StageRepaired
)

func (s Stage) String() string {
	switch s {
	case StageDirect:
		return "direct"
	case StageFenceFallback:
		return "fence_fallback"
	case StageRepaired:
		return "repaired"
	default:
		return "none"
	}
}

// Outcome describes a single extraction.
type Outcome struct {
	Stage Stage
	// Defaulted lists required keys filled from the spec, in spec order.
	Defaulted []string
}

// Parsed reports whether any JSON object was recovered.
func (o Outcome) Parsed() bool {
	return o.Stage != StageNone
}

type Option func(*Extractor)

// WithRepair enables a last jsonrepair pass over the isolated text when both
// parse attempts failed.
func WithRepair() Option {
	return func(e *Extractor) {
		e.repair = true
	}
}

func WithLogger(logger log.FieldLogger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// Extractor is safe for concurrent use; it holds no per-call state.
type Extractor struct {
	repair bool
	logger log.FieldLogger
}

func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var quiet = func() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}()

// Extract runs the default extractor without logging.
func Extract(raw string, spec Spec) Record {
	rec, _ := New().ExtractWithOutcome(raw, spec)
	return rec
}

func (e *Extractor) Extract(raw string, spec Spec) Record {
	rec, _ := e.ExtractWithOutcome(raw, spec)
	return rec
}

// ExtractWithOutcome returns the completed record along with how it was
// obtained.
func (e *Extractor) ExtractWithOutcome(raw string, spec Spec) (Record, Outcome) {
	logger := e.log().WithField("spec", spec.Name)

	var out Outcome
	candidate := isolateObject(raw)
	rec, err := parseObject(candidate)
	if err == nil {
		out.Stage = StageDirect
	} else if inner, ok := fencedJSON(raw); ok {
		if rec, err = parseObject(inner); err == nil {
			out.Stage = StageFenceFallback
		}
	}

	if err != nil && e.repair {
		if rec, err = repairObject(candidate); err == nil {
			out.Stage = StageRepaired
		}
	}

	if err != nil {
		logger.WithError(err).Warn("could not parse model response, using defaults")
		rec = Record{}
	}

	for _, f := range spec.Fields {
		v, ok := rec[f.Key]
		if ok && (f.Valid == nil || f.Valid(v)) {
			continue
		}
		rec[f.Key] = cloneValue(f.Default)
		out.Defaulted = append(out.Defaulted, f.Key)
	}

	logger.
		WithField("stage", out.Stage.String()).
		WithField("defaulted", out.Defaulted).
		Debug("extracted model response")
	return rec, out
}

func (e *Extractor) log() log.FieldLogger {
	if e.logger == nil {
		return quiet
	}
	return e.logger
}

// isolateObject trims raw and, when it opens with a code fence that is closed
// later on, cuts the text from the first '{' to the last '}'.
func isolateObject(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, fence) || !strings.Contains(text[len(fence):], fence) {
		return text
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}

// fencedJSON returns the body of the first ```json block in raw. An
// unterminated block runs to the end of the text.
func fencedJSON(raw string) (string, bool) {
	idx := strings.Index(raw, jsonFence)
	if idx < 0 {
		return "", false
	}
	body := raw[idx+len(jsonFence):]
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}

func parseObject(text string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return nil, errors.Wrap(err, "response is not a JSON object")
	}
	if rec == nil {
		return nil, errors.New("response is a JSON null")
	}
	return rec, nil
}

func repairObject(text string) (Record, error) {
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, errors.Wrap(err, "repair JSON")
	}
	return parseObject(repaired)
}
