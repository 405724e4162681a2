package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeValid(t *testing.T) {
	assert.True(t, TypeQuiz.Valid())
	assert.True(t, TypeQA.Valid())
	assert.False(t, ContentType("").Valid())
	assert.False(t, ContentType("poem").Valid())
}

func TestRedactedQuizOmitsAnswerFields(t *testing.T) {
	payload := &QuizPayload{
		Type:  "quiz",
		Title: "Quiz",
		Questions: []QuizQuestion{{
			Question:    "Why?",
			Options:     []string{"A", "B", "C", "D"},
			AnswerIndex: 3,
			Explanation: "Because.",
		}},
	}

	redacted, answers := payload.Redact()
	raw, err := json.Marshal(redacted)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "answerIndex")
	assert.NotContains(t, string(raw), "explanation")
	require.Len(t, answers, 1)
	assert.Equal(t, 3, answers[0].AnswerIndex)
	assert.Equal(t, "Because.", answers[0].Explanation)
}

func TestRedactedQAOmitsAnswers(t *testing.T) {
	payload := &QAPayload{
		Type: "qa",
		QA:   []QAItem{{Question: "How?", Answer: "Carefully."}},
	}

	redacted, answers := payload.Redact()
	raw, err := json.Marshal(redacted)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "Carefully.")
	require.Len(t, answers, 1)
	assert.Equal(t, "Carefully.", answers[0].Answer)
}

func TestPayloadDurationOmittedWhenUnknown(t *testing.T) {
	raw, err := json.Marshal(&QuizPayload{Type: "quiz", Questions: []QuizQuestion{}})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "videoDuration")

	duration := 600
	raw, err = json.Marshal(&QuizPayload{Type: "quiz", VideoDuration: &duration})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"videoDuration":600`)
}
