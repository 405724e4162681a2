package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuizJSON() string {
	return `{
		"type": "quiz",
		"title": "Sample Quiz",
		"mcqCount": 1,
		"questions": [
			{
				"question": "Why does the speaker prefer approach A?",
				"options": ["Speed", "Cost", "Safety", "Habit"],
				"answerIndex": 2,
				"explanation": "The speaker emphasizes safety throughout."
			}
		]
	}`
}

func TestParsePayloadQuiz(t *testing.T) {
	payload, err := ParsePayload(TypeQuiz, validQuizJSON())
	require.NoError(t, err)

	quiz, ok := payload.(*QuizPayload)
	require.True(t, ok)
	assert.Equal(t, "Sample Quiz", quiz.Title)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, 2, quiz.Questions[0].AnswerIndex)
}

func TestParsePayloadQA(t *testing.T) {
	payload, err := ParsePayload(TypeQA, `{
		"type": "qa",
		"title": "Sample Q&A",
		"qaCount": 1,
		"qa": [{"question": "What problem does this solve?", "answer": "It avoids rework."}]
	}`)
	require.NoError(t, err)

	qa, ok := payload.(*QAPayload)
	require.True(t, ok)
	require.Len(t, qa.QA, 1)
	assert.Equal(t, "It avoids rework.", qa.QA[0].Answer)
}

func TestParsePayloadInvalidJSONIsMalformed(t *testing.T) {
	_, err := ParsePayload(TypeQuiz, `{"type": "quiz", "questions": [`)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParsePayloadMissingArrayIsSchemaViolation(t *testing.T) {
	_, err := ParsePayload(TypeQuiz, `{"type": "quiz", "title": "No questions"}`)
	assert.ErrorIs(t, err, ErrSchemaValidation)

	_, err = ParsePayload(TypeQA, `{"type": "qa", "qa": null}`)
	assert.ErrorIs(t, err, ErrSchemaValidation)
}

func TestParsePayloadWrongArrayShapeIsSchemaViolation(t *testing.T) {
	_, err := ParsePayload(TypeQuiz, `{"type": "quiz", "questions": "not an array"}`)
	assert.ErrorIs(t, err, ErrSchemaValidation)
}

func TestValidatePayloadQuiz(t *testing.T) {
	base := func() *QuizPayload {
		return &QuizPayload{
			Questions: []QuizQuestion{{
				Question:    "Why?",
				Options:     []string{"A", "B", "C", "D"},
				AnswerIndex: 0,
				Explanation: "Because the video says so.",
			}},
		}
	}

	assert.NoError(t, ValidatePayload(base()))

	threeOptions := base()
	threeOptions.Questions[0].Options = []string{"A", "B", "C"}
	assert.ErrorIs(t, ValidatePayload(threeOptions), ErrSchemaValidation)

	outOfRange := base()
	outOfRange.Questions[0].AnswerIndex = 4
	assert.ErrorIs(t, ValidatePayload(outOfRange), ErrSchemaValidation)

	negative := base()
	negative.Questions[0].AnswerIndex = -1
	assert.ErrorIs(t, ValidatePayload(negative), ErrSchemaValidation)

	noExplanation := base()
	noExplanation.Questions[0].Explanation = "  "
	assert.ErrorIs(t, ValidatePayload(noExplanation), ErrSchemaValidation)

	empty := &QuizPayload{}
	assert.ErrorIs(t, ValidatePayload(empty), ErrSchemaValidation)
}

func TestValidatePayloadQA(t *testing.T) {
	valid := &QAPayload{QA: []QAItem{{Question: "How?", Answer: "Carefully."}}}
	assert.NoError(t, ValidatePayload(valid))

	emptyAnswer := &QAPayload{QA: []QAItem{{Question: "How?", Answer: ""}}}
	assert.ErrorIs(t, ValidatePayload(emptyAnswer), ErrSchemaValidation)

	emptyQuestion := &QAPayload{QA: []QAItem{{Question: " ", Answer: "Yes."}}}
	assert.ErrorIs(t, ValidatePayload(emptyQuestion), ErrSchemaValidation)
}

func TestDecodePayloadRoundsByType(t *testing.T) {
	payload, err := DecodePayload(TypeQA, []byte(`{"type":"qa","qa":[{"question":"Q","answer":"A"}]}`))
	require.NoError(t, err)
	assert.Equal(t, TypeQA, payload.ContentType())
	assert.Equal(t, 1, payload.ItemCount())

	_, err = DecodePayload(ContentType("poem"), []byte(`{}`))
	assert.Error(t, err)
}
