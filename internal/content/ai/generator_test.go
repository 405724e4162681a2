package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videoai/comprehension-api/internal/content"
	"github.com/videoai/comprehension-api/internal/metrics"
)

type scriptedInvoker struct {
	responses []string
	errs      []error
	prompts   []string
}

func (s *scriptedInvoker) Invoke(_ context.Context, prompt string) (string, error) {
	i := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("unexpected extra invocation")
}

func newTestGenerator(invoker Invoker) *Generator {
	m := metrics.NewContent(prometheus.NewRegistry())
	return NewGenerator(invoker, Config{}, m, zerolog.New(io.Discard))
}

func quizResponse(n int) string {
	questions := make([]content.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, content.QuizQuestion{
			Question:    fmt.Sprintf("Why is concept %d important according to the speaker?", i),
			Options:     []string{"A", "B", "C", "D"},
			AnswerIndex: i % 4,
			Explanation: fmt.Sprintf("The speaker covers concept %d in depth.", i),
		})
	}
	payload := content.QuizPayload{Type: "quiz", Title: "Quiz", MCQCount: n, Questions: questions}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func quizRequest(transcriptLen int, durationSeconds *int) content.GenerateRequest {
	return content.GenerateRequest{
		ContentType:     content.TypeQuiz,
		Transcript:      strings.Repeat("a", transcriptLen),
		PageTitle:       "Intro to Widgets",
		DurationSeconds: durationSeconds,
	}
}

func TestGenerateSuccess(t *testing.T) {
	duration := 5400
	// 5400s video with 4000 transcript chars needs 11 quiz items.
	invoker := &scriptedInvoker{responses: []string{quizResponse(11)}}
	gen := newTestGenerator(invoker)

	payload, err := gen.Generate(context.Background(), quizRequest(4000, &duration))
	require.NoError(t, err)
	require.Len(t, invoker.prompts, 1)

	quiz, ok := payload.(*content.QuizPayload)
	require.True(t, ok)
	assert.Equal(t, 11, quiz.MCQCount)
	assert.Len(t, quiz.Questions, 11)
	require.NotNil(t, quiz.VideoDuration)
	assert.Equal(t, 5400, *quiz.VideoDuration)
}

func TestGenerateRejectsShortTranscript(t *testing.T) {
	invoker := &scriptedInvoker{}
	gen := newTestGenerator(invoker)

	_, err := gen.Generate(context.Background(), quizRequest(99, nil))
	assert.ErrorIs(t, err, content.ErrInsufficientContent)
	assert.Empty(t, invoker.prompts, "short transcripts must not reach the model")
}

func TestGenerateStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + quizResponse(5) + "\n```"
	invoker := &scriptedInvoker{responses: []string{fenced}}
	gen := newTestGenerator(invoker)

	payload, err := gen.Generate(context.Background(), quizRequest(1750, nil))
	require.NoError(t, err)
	assert.Equal(t, 5, payload.ItemCount())
}

func TestGenerateFallsBackOnRefusal(t *testing.T) {
	refusal := "I'm sorry, there is insufficient video content available for me to generate a meaningful quiz."
	invoker := &scriptedInvoker{responses: []string{refusal, quizResponse(5)}}
	gen := newTestGenerator(invoker)

	payload, err := gen.Generate(context.Background(), quizRequest(1750, nil))
	require.NoError(t, err)
	require.Len(t, invoker.prompts, 2)
	assert.Equal(t, 5, payload.ItemCount())
	assert.NotEqual(t, invoker.prompts[0], invoker.prompts[1], "fallback must use the relaxed prompt")
}

func TestGenerateFallsBackOnMalformedJSON(t *testing.T) {
	invoker := &scriptedInvoker{responses: []string{`{"type": "quiz", "questions": [truncated`, quizResponse(5)}}
	gen := newTestGenerator(invoker)

	payload, err := gen.Generate(context.Background(), quizRequest(1750, nil))
	require.NoError(t, err)
	require.Len(t, invoker.prompts, 2)
	assert.Equal(t, 5, payload.ItemCount())
}

func TestGenerateFailsAfterBothAttempts(t *testing.T) {
	invoker := &scriptedInvoker{responses: []string{"not json", "still not json either, sadly, for this test case"}}
	gen := newTestGenerator(invoker)

	_, err := gen.Generate(context.Background(), quizRequest(1750, nil))
	assert.ErrorIs(t, err, content.ErrMalformedResponse)
	assert.Len(t, invoker.prompts, 2, "exactly one fallback attempt, never a third call")
}

func TestGenerateTransportErrorIsTerminal(t *testing.T) {
	transportErr := errors.New("deadline exceeded")
	invoker := &scriptedInvoker{errs: []error{transportErr}}
	gen := newTestGenerator(invoker)

	_, err := gen.Generate(context.Background(), quizRequest(1750, nil))
	assert.ErrorIs(t, err, transportErr)
	assert.Len(t, invoker.prompts, 1, "transport failures must not trigger the fallback prompt")
}

func TestGenerateToleratesCountMismatch(t *testing.T) {
	// Required count is 5 but the model returns 7. The payload is kept and
	// the requested count recorded, not the delivered one.
	invoker := &scriptedInvoker{responses: []string{quizResponse(7)}}
	gen := newTestGenerator(invoker)

	payload, err := gen.Generate(context.Background(), quizRequest(1750, nil))
	require.NoError(t, err)

	quiz := payload.(*content.QuizPayload)
	assert.Len(t, quiz.Questions, 7)
	assert.Equal(t, 5, quiz.MCQCount)
}

func TestGenerateRejectsInvalidItems(t *testing.T) {
	// The response parses, so no fallback fires, but an item with too few
	// options fails the final validation step.
	bad := `{"type": "quiz", "title": "Quiz", "mcqCount": 1, "questions": [
		{"question": "Why?", "options": ["A", "B", "C"], "answerIndex": 0, "explanation": "Too few options."}
	]}`
	invoker := &scriptedInvoker{responses: []string{bad}}
	gen := newTestGenerator(invoker)

	_, err := gen.Generate(context.Background(), quizRequest(1750, nil))
	assert.ErrorIs(t, err, content.ErrSchemaValidation)
	assert.Len(t, invoker.prompts, 1)
}

func TestCleanModelText(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanModelText("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanModelText("  {\"a\":1}  "))
	assert.Equal(t, `{"a":1}`, CleanModelText("```\n{\"a\":1}\n```"))
}
