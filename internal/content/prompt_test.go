package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptIncludesCountAndContent(t *testing.T) {
	duration := 5400
	prompt := BuildPrompt(TypeQuiz, 12, "Intro to Widgets", "the transcript body", &duration)

	assert.Contains(t, prompt, "EXACTLY 12 MCQs")
	assert.Contains(t, prompt, "the transcript body")
	assert.Contains(t, prompt, "Intro to Widgets")
	assert.Contains(t, prompt, "1.50 hours")
}

func TestBuildPromptUnknownDuration(t *testing.T) {
	prompt := BuildPrompt(TypeQA, 5, "Title", "transcript", nil)
	assert.Contains(t, prompt, "Unknown hours")
	assert.Contains(t, prompt, "EXACTLY 5 Q&A pairs")
}

func TestFallbackPromptIsRelaxed(t *testing.T) {
	duration := 600
	primary := BuildPrompt(TypeQuiz, 5, "Title", "transcript", &duration)
	fallback := BuildFallbackPrompt(TypeQuiz, 5, "Title", "transcript")

	assert.NotEqual(t, primary, fallback)
	assert.Contains(t, primary, "FORBIDDEN QUESTION PATTERNS")
	assert.NotContains(t, fallback, "FORBIDDEN QUESTION PATTERNS")
	assert.Contains(t, fallback, "Generate 5 multiple-choice quiz questions")
	assert.True(t, strings.Contains(fallback, `"mcqCount": 5`))
}

func TestFallbackPromptQA(t *testing.T) {
	fallback := BuildFallbackPrompt(TypeQA, 7, "Title", "transcript")
	assert.Contains(t, fallback, "Generate 7 simple question-answer pairs")
	assert.Contains(t, fallback, `"qaCount": 7`)
}
