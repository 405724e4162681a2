package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

const optionsPerQuestion = 4

// ParsePayload parses cleaned model output into the payload variant for the
// given content type. JSON that cannot be decoded at all is a malformed
// response; a missing or non-array item field is a schema violation.
func ParsePayload(t ContentType, text string) (Payload, error) {
	switch t {
	case TypeQuiz:
		var raw struct {
			Type      string          `json:"type"`
			Title     string          `json:"title"`
			MCQCount  int             `json:"mcqCount"`
			Questions json.RawMessage `json:"questions"`
		}
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if len(raw.Questions) == 0 || string(raw.Questions) == "null" {
			return nil, fmt.Errorf("%w: missing questions array", ErrSchemaValidation)
		}
		var questions []QuizQuestion
		if err := json.Unmarshal(raw.Questions, &questions); err != nil {
			return nil, fmt.Errorf("%w: questions is not an array of questions: %v", ErrSchemaValidation, err)
		}
		return &QuizPayload{
			Type:      raw.Type,
			Title:     raw.Title,
			MCQCount:  raw.MCQCount,
			Questions: questions,
		}, nil
	case TypeQA:
		var raw struct {
			Type    string          `json:"type"`
			Title   string          `json:"title"`
			QACount int             `json:"qaCount"`
			QA      json.RawMessage `json:"qa"`
		}
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if len(raw.QA) == 0 || string(raw.QA) == "null" {
			return nil, fmt.Errorf("%w: missing qa array", ErrSchemaValidation)
		}
		var items []QAItem
		if err := json.Unmarshal(raw.QA, &items); err != nil {
			return nil, fmt.Errorf("%w: qa is not an array of items: %v", ErrSchemaValidation, err)
		}
		return &QAPayload{
			Type:    raw.Type,
			Title:   raw.Title,
			QACount: raw.QACount,
			QA:      items,
		}, nil
	default:
		return nil, fmt.Errorf("unknown content type %q", t)
	}
}

// ValidatePayload enforces per-item invariants before an artifact may be
// persisted. Item-count mismatches are deliberately NOT checked here; a
// best-effort response beats total failure.
func ValidatePayload(p Payload) error {
	switch v := p.(type) {
	case *QuizPayload:
		if len(v.Questions) == 0 {
			return fmt.Errorf("%w: empty questions array", ErrSchemaValidation)
		}
		for i, q := range v.Questions {
			if strings.TrimSpace(q.Question) == "" {
				return fmt.Errorf("%w: question %d has empty text", ErrSchemaValidation, i)
			}
			if len(q.Options) != optionsPerQuestion {
				return fmt.Errorf("%w: question %d has %d options, want %d", ErrSchemaValidation, i, len(q.Options), optionsPerQuestion)
			}
			if q.AnswerIndex < 0 || q.AnswerIndex >= optionsPerQuestion {
				return fmt.Errorf("%w: question %d answerIndex %d out of range [0,%d]", ErrSchemaValidation, i, q.AnswerIndex, optionsPerQuestion-1)
			}
			if strings.TrimSpace(q.Explanation) == "" {
				return fmt.Errorf("%w: question %d has empty explanation", ErrSchemaValidation, i)
			}
		}
		return nil
	case *QAPayload:
		if len(v.QA) == 0 {
			return fmt.Errorf("%w: empty qa array", ErrSchemaValidation)
		}
		for i, item := range v.QA {
			if strings.TrimSpace(item.Question) == "" {
				return fmt.Errorf("%w: qa item %d has empty question", ErrSchemaValidation, i)
			}
			if strings.TrimSpace(item.Answer) == "" {
				return fmt.Errorf("%w: qa item %d has empty answer", ErrSchemaValidation, i)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported payload type %T", ErrSchemaValidation, p)
	}
}
