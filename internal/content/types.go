package content

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContentType discriminates the two generated artifact variants.
type ContentType string

const (
	TypeQuiz ContentType = "quiz"
	TypeQA   ContentType = "qa"
)

// Valid reports whether the content type is one of the supported variants.
func (t ContentType) Valid() bool {
	return t == TypeQuiz || t == TypeQA
}

// QuizQuestion is a single multiple-choice item. Exactly 4 options;
// AnswerIndex points at the correct one.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation"`
}

// QuizPayload is the generated data for ContentType "quiz".
// MCQCount reflects the count that was requested from the model; the actual
// Questions slice may differ (callers compare lengths themselves).
type QuizPayload struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	MCQCount      int            `json:"mcqCount"`
	VideoDuration *int           `json:"videoDuration,omitempty"`
	Questions     []QuizQuestion `json:"questions"`
}

func (p *QuizPayload) ContentType() ContentType { return TypeQuiz }
func (p *QuizPayload) ItemCount() int           { return len(p.Questions) }

// QAItem is an open-ended question with its reference answer.
type QAItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QAPayload is the generated data for ContentType "qa".
type QAPayload struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	QACount       int    `json:"qaCount"`
	VideoDuration *int   `json:"videoDuration,omitempty"`
	QA            []QAItem `json:"qa"`
}

func (p *QAPayload) ContentType() ContentType { return TypeQA }
func (p *QAPayload) ItemCount() int           { return len(p.QA) }

// Payload is the tagged union over generated data variants, keyed by
// ContentType. Exactly one concrete type exists per variant.
type Payload interface {
	ContentType() ContentType
	ItemCount() int
}

// DecodePayload unmarshals stored generated data into the variant matching
// the given content type.
func DecodePayload(t ContentType, raw []byte) (Payload, error) {
	switch t {
	case TypeQuiz:
		var p QuizPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode quiz payload: %w", err)
		}
		return &p, nil
	case TypeQA:
		var p QAPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode qa payload: %w", err)
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("unknown content type %q", t)
	}
}

// Artifact is the cached unit: one generated quiz or Q&A document.
// Immutable after creation; the pair (VideoIdentifier, ContentType) is
// unique across all artifacts.
type Artifact struct {
	ContentID       string      `json:"contentId"`
	VideoIdentifier string      `json:"videoIdentifier"`
	PageTitle       string      `json:"pageTitle"`
	Domain          string      `json:"domain"`
	PageURL         string      `json:"pageUrl"`
	VideoSrc        string      `json:"videoSrc"`
	ContentType     ContentType `json:"contentType"`
	GeneratedData   Payload     `json:"generatedData"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Summary is the listing view of an artifact: identity and metadata only,
// never the generated payload.
type Summary struct {
	ContentID   string      `json:"contentId"`
	PageTitle   string      `json:"pageTitle"`
	Domain      string      `json:"domain"`
	ContentType ContentType `json:"contentType"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// RedactedQuestion is a quiz question with the answer key stripped.
type RedactedQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizAnswerKey carries the fields stripped from a RedactedQuestion,
// aligned by index.
type QuizAnswerKey struct {
	AnswerIndex int    `json:"answerIndex"`
	Explanation string `json:"explanation"`
}

// RedactedQAItem is an open-ended question with its answer stripped.
type RedactedQAItem struct {
	Question string `json:"question"`
}

// QAAnswerKey carries the answer stripped from a RedactedQAItem.
type QAAnswerKey struct {
	Answer string `json:"answer"`
}

// RedactedQuizPayload mirrors QuizPayload without answer keys.
type RedactedQuizPayload struct {
	Type          string             `json:"type"`
	Title         string             `json:"title"`
	MCQCount      int                `json:"mcqCount"`
	VideoDuration *int               `json:"videoDuration,omitempty"`
	Questions     []RedactedQuestion `json:"questions"`
}

// RedactedQAPayload mirrors QAPayload without answers.
type RedactedQAPayload struct {
	Type          string           `json:"type"`
	Title         string           `json:"title"`
	QACount       int              `json:"qaCount"`
	VideoDuration *int             `json:"videoDuration,omitempty"`
	QA            []RedactedQAItem `json:"qa"`
}

// RedactedContent is the detail view served to interactive clients:
// questions without answers, answers split into a separate index-aligned
// slice so the client can reveal them after the user commits.
type RedactedContent struct {
	ContentID       string      `json:"contentId"`
	VideoIdentifier string      `json:"videoIdentifier"`
	PageTitle       string      `json:"pageTitle"`
	Domain          string      `json:"domain"`
	PageURL         string      `json:"pageUrl"`
	VideoSrc        string      `json:"videoSrc"`
	ContentType     ContentType `json:"contentType"`
	GeneratedData   interface{} `json:"generatedData"`
	Answers         interface{} `json:"answers"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Redact splits a quiz payload into its client-safe view and answer key.
func (p *QuizPayload) Redact() (RedactedQuizPayload, []QuizAnswerKey) {
	questions := make([]RedactedQuestion, 0, len(p.Questions))
	answers := make([]QuizAnswerKey, 0, len(p.Questions))
	for _, q := range p.Questions {
		questions = append(questions, RedactedQuestion{Question: q.Question, Options: q.Options})
		answers = append(answers, QuizAnswerKey{AnswerIndex: q.AnswerIndex, Explanation: q.Explanation})
	}
	return RedactedQuizPayload{
		Type:          p.Type,
		Title:         p.Title,
		MCQCount:      p.MCQCount,
		VideoDuration: p.VideoDuration,
		Questions:     questions,
	}, answers
}

// Redact splits a Q&A payload into its client-safe view and answer key.
func (p *QAPayload) Redact() (RedactedQAPayload, []QAAnswerKey) {
	items := make([]RedactedQAItem, 0, len(p.QA))
	answers := make([]QAAnswerKey, 0, len(p.QA))
	for _, item := range p.QA {
		items = append(items, RedactedQAItem{Question: item.Question})
		answers = append(answers, QAAnswerKey{Answer: item.Answer})
	}
	return RedactedQAPayload{
		Type:          p.Type,
		Title:         p.Title,
		QACount:       p.QACount,
		VideoDuration: p.VideoDuration,
		QA:            items,
	}, answers
}

// AnswerResult is the per-item outcome of answer validation. IsCorrect,
// CorrectOption and Explanation are populated for quizzes only.
type AnswerResult struct {
	QuestionIndex int         `json:"questionIndex"`
	IsCorrect     *bool       `json:"isCorrect,omitempty"`
	UserAnswer    interface{} `json:"userAnswer"`
	CorrectAnswer interface{} `json:"correctAnswer"`
	CorrectOption string      `json:"correctOption,omitempty"`
	Explanation   string      `json:"explanation,omitempty"`
}

// ValidationResult aggregates per-item results. Score is nil for Q&A
// content, where no correctness judgment is computed.
type ValidationResult struct {
	ContentType ContentType    `json:"contentType"`
	Results     []AnswerResult `json:"results"`
	Score       *int           `json:"score"`
	Total       int            `json:"total"`
}
