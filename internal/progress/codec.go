package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const payloadVersion = 1

// payloadSchema describes the persisted form of the store.
const payloadSchema = `{
  "type": "object",
  "required": ["version", "completedTopics"],
  "properties": {
    "version": {"const": 1},
    "completedTopics": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["topic", "completionDate", "history", "scores"],
        "properties": {
          "topic": {
            "type": "object",
            "required": ["grade", "subject", "month", "topic"],
            "properties": {
              "grade": {"enum": ["9", "10", "11", "12"]},
              "subject": {"type": "string", "minLength": 1},
              "month": {"type": "integer", "minimum": 1, "maximum": 12},
              "topic": {"type": "string", "minLength": 1}
            }
          },
          "completionDate": {"type": "string", "format": "date-time"},
          "history": {
            "type": "array",
            "items": {"type": "string", "format": "date-time"}
          },
          "scores": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["date", "score", "total"],
              "properties": {
                "date": {"type": "string", "format": "date-time"},
                "score": {"type": "integer", "minimum": 0},
                "total": {"type": "integer", "minimum": 1}
              }
            }
          }
        }
      }
    }
  }
}`

type payload struct {
	Version         int          `json:"version"`
	CompletedTopics []recordJSON `json:"completedTopics"`
}

type recordJSON struct {
	Topic          TopicKey     `json:"topic"`
	CompletionDate time.Time    `json:"completionDate"`
	History        []time.Time  `json:"history"`
	Scores         []ScoreEntry `json:"scores"`
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func payloadValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(payloadSchema)))
		if err != nil {
			compileErr = fmt.Errorf("parse progress schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		c.AssertFormat()
		const url = "schema://study-progress.json"
		if err := c.AddResource(url, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// encode serializes p in deterministic key order. Times are stored in UTC
// at second precision.
func encode(p Progress) ([]byte, error) {
	out := payload{
		Version:         payloadVersion,
		CompletedTopics: make([]recordJSON, 0, len(p.CompletedTopics)),
	}
	for _, k := range p.Keys() {
		r := p.CompletedTopics[k]
		rj := recordJSON{
			Topic:          k,
			CompletionDate: normalizeTime(r.CompletionDate),
			History:        make([]time.Time, 0, len(r.History)),
			Scores:         make([]ScoreEntry, 0, len(r.Scores)),
		}
		for _, h := range r.History {
			rj.History = append(rj.History, normalizeTime(h))
		}
		for _, s := range r.Scores {
			s.Date = normalizeTime(s.Date)
			rj.Scores = append(rj.Scores, s)
		}
		out.CompletedTopics = append(out.CompletedTopics, rj)
	}
	return json.Marshal(out)
}

// decode validates data against the payload schema and builds a Progress.
func decode(data []byte) (Progress, error) {
	sch, err := payloadValidator()
	if err != nil {
		return Progress{}, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Progress{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return Progress{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var in payload
	if err := json.Unmarshal(data, &in); err != nil {
		return Progress{}, fmt.Errorf("decode progress: %w", err)
	}

	p := Empty()
	for _, rj := range in.CompletedTopics {
		r := &Record{CompletionDate: rj.CompletionDate.UTC()}
		for _, h := range rj.History {
			r.History = append(r.History, h.UTC())
		}
		for _, s := range rj.Scores {
			if !s.Valid() {
				return Progress{}, fmt.Errorf("%w: %s scored %d/%d", ErrInvalidEntry, rj.Topic, s.Score, s.Total)
			}
			s.Date = s.Date.UTC()
			r.Scores = append(r.Scores, s)
		}
		if _, dup := p.CompletedTopics[rj.Topic]; dup {
			return Progress{}, fmt.Errorf("duplicate topic %s", rj.Topic)
		}
		p.CompletedTopics[rj.Topic] = r
	}
	return p, nil
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
