package content

import (
	"fmt"
	"strings"
)

// BuildPrompt constructs the strict primary instruction text for the model.
// The rules mirror what the browser extension's backend contract expects:
// exactly count items, derived only from transcript substance, emitted as a
// single bare JSON object matching the payload schema.
func BuildPrompt(t ContentType, count int, pageTitle, transcript string, durationSeconds *int) string {
	if t == TypeQA {
		return buildQAPrompt(count, pageTitle, transcript, durationSeconds)
	}
	return buildQuizPrompt(count, pageTitle, transcript, durationSeconds)
}

// BuildFallbackPrompt constructs the relaxed retry prompt: same count and
// schema, but without the forbidden-pattern enumeration and self-check.
// Used once per request when the primary response is refusal-like or
// malformed, trading rule-strictness for reliability.
func BuildFallbackPrompt(t ContentType, count int, pageTitle, transcript string) string {
	var b strings.Builder
	if t == TypeQA {
		fmt.Fprintf(&b, "Generate %d simple question-answer pairs based on this content:\n\n", count)
		fmt.Fprintf(&b, "Title: %s\nContent: %s\n\n", pageTitle, transcript)
		b.WriteString("Create open-ended questions that can be answered from the content above.\n")
		b.WriteString("Return as JSON with this structure:\n")
		fmt.Fprintf(&b, `{
  "type": "qa",
  "title": "Content Comprehension Q&A",
  "qaCount": %d,
  "qa": [{"question": "...", "answer": "..."}]
}`, count)
		return b.String()
	}

	fmt.Fprintf(&b, "Generate %d multiple-choice quiz questions based on this content:\n\n", count)
	fmt.Fprintf(&b, "Title: %s\nContent: %s\n\n", pageTitle, transcript)
	b.WriteString("Create content-based MCQ questions with 4 options each.\n")
	b.WriteString("Return as JSON with this structure:\n")
	fmt.Fprintf(&b, `{
  "type": "quiz",
  "title": "Content Comprehension Quiz",
  "mcqCount": %d,
  "questions": [
    {
      "question": "Question text?",
      "options": ["A", "B", "C", "D"],
      "answerIndex": 0,
      "explanation": "Brief explanation"
    }
  ]
}`, count)
	return b.String()
}

func durationLabel(durationSeconds *int) string {
	if durationSeconds == nil {
		return "Unknown"
	}
	return fmt.Sprintf("%.2f", float64(*durationSeconds)/3600)
}

func buildQuizPrompt(count int, pageTitle, transcript string, durationSeconds *int) string {
	var b strings.Builder

	b.WriteString("You are an AI quiz generator specialized in deep VIDEO CONTENT comprehension.\n\n")

	b.WriteString("CRITICAL CONSTRAINTS\n")
	b.WriteString("1. You MUST generate quiz questions ONLY from the ACTUAL CONTENT delivered in the video:\n")
	b.WriteString("   - Spoken explanations\n")
	b.WriteString("   - Concepts taught\n")
	b.WriteString("   - Examples, analogies, demonstrations\n")
	b.WriteString("   - Warnings, mistakes, best practices\n")
	b.WriteString("   - Conclusions and key insights\n")
	b.WriteString("2. DO NOT generate questions based on the video title, upload date, views, likes,\n")
	b.WriteString("   channel name, description metadata, thumbnails, tags, or SEO text.\n")
	b.WriteString("3. If a question can be answered WITHOUT watching the video, it is INVALID and must be rewritten.\n\n")

	b.WriteString("MCQ COUNT RULE (MANDATORY)\n")
	fmt.Fprintf(&b, "Video Duration: %s hours\n", durationLabel(durationSeconds))
	fmt.Fprintf(&b, "REQUIRED MCQ COUNT: EXACTLY %d MCQs\n", count)
	fmt.Fprintf(&b, "This number is fixed and non-negotiable. You MUST generate EXACTLY %d\n", count)
	b.WriteString("multiple-choice questions. Do NOT generate more or fewer under ANY condition.\n\n")

	b.WriteString("QUESTION DESIGN RULES\n")
	b.WriteString("- Questions must require comprehension of the full video\n")
	b.WriteString("- Prefer WHY / HOW / APPLICATION-based questions\n")
	b.WriteString("- Include conceptual understanding, cause-effect reasoning, comparisons made\n")
	b.WriteString("  by the speaker, real-world scenarios discussed, and misconceptions addressed.\n\n")

	b.WriteString("QUESTION FORMAT\n")
	b.WriteString("For each MCQ:\n")
	b.WriteString("- Provide 4 options (A, B, C, D)\n")
	b.WriteString("- Clearly indicate the correct answer (index 0-3)\n")
	b.WriteString("- Provide a 1-2 line explanation referencing the video's content\n\n")

	b.WriteString("FORBIDDEN QUESTION PATTERNS\n")
	b.WriteString(`- "What is the title of this video?"
- "How long is the video?"
- "Who uploaded this video?"
- "When was the video published?"
- "How many views does the video have?"
- "What is the channel name?"

`)

	b.WriteString("VALID QUESTION PATTERNS\n")
	b.WriteString(`- "According to the speaker, why is [concept] important?"
- "Which approach was recommended for solving [problem]?"
- "What common mistake did the instructor warn against?"
- "How did the speaker differentiate between [X] and [Y]?"
- "In the example shown, what was the outcome of [action]?"
- "What analogy was used to explain [concept]?"

`)

	b.WriteString("CONTENT FOR ANALYSIS\n")
	fmt.Fprintf(&b, "Content Title (Reference Only - DO NOT CREATE QUESTIONS ABOUT THIS TITLE): %s\n\n", pageTitle)
	fmt.Fprintf(&b, "Video Transcript/Content:\n%s\n\n", transcript)

	b.WriteString("FINAL VALIDATION STEP\n")
	b.WriteString("Before outputting, for EACH question ask:\n")
	b.WriteString(`"Could someone answer this without watching the video?"` + "\n")
	b.WriteString("- If YES, rewrite the question to require video-specific knowledge\n")
	b.WriteString("- If NO, include it\n")
	fmt.Fprintf(&b, "Confirm you have generated EXACTLY %d MCQs.\n\n", count)

	b.WriteString("CRITICAL INSTRUCTION:\n")
	b.WriteString("You MUST generate MCQ questions from whatever content is available in the transcript.\n")
	b.WriteString("Even if the content seems limited, extract meaningful questions from what IS there.\n")
	b.WriteString("DO NOT respond with error messages - just do your best with the available content.\n\n")

	b.WriteString("OUTPUT FORMAT\n")
	b.WriteString("Return ONLY a JSON object (no markdown, no code blocks) with this exact structure:\n")
	fmt.Fprintf(&b, `{
  "type": "quiz",
  "title": "Video Content Comprehension Quiz",
  "mcqCount": %d,
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "answerIndex": 0,
      "explanation": "Brief explanation referencing what was explained in the video"
    }
  ]
}`, count)

	return b.String()
}

func buildQAPrompt(count int, pageTitle, transcript string, durationSeconds *int) string {
	var b strings.Builder

	b.WriteString("You are an AI system that generates ONLY OPEN-ENDED QUESTIONS AND ANSWERS\n")
	b.WriteString("strictly from the ACTUAL CONTENT delivered inside a video.\n\n")
	b.WriteString("This is a CONTENT COMPREHENSION task.\n")
	b.WriteString("Multiple-choice questions (MCQs) are NOT allowed.\n\n")

	b.WriteString("ABSOLUTE CONTENT RULE (NON-NEGOTIABLE)\n")
	b.WriteString("You MUST generate questions ONLY from:\n")
	b.WriteString("- What the speaker explains verbally\n")
	b.WriteString("- Concepts taught during the video\n")
	b.WriteString("- Examples, demonstrations, analogies, or stories used\n")
	b.WriteString("- Step-by-step explanations\n")
	b.WriteString("- Reasoning, opinions, warnings, mistakes, best practices\n")
	b.WriteString("- Conclusions or insights stated by the speaker\n")
	b.WriteString("You are STRICTLY FORBIDDEN from using or referencing the video title, video\n")
	b.WriteString("length (except for deciding the number of questions), upload date, views,\n")
	b.WriteString("likes, channel name, description, tags, thumbnails, or any platform metadata.\n")
	b.WriteString("If a question references ANY of the above it is INVALID and must NOT be generated.\n\n")

	b.WriteString("VIDEO LENGTH TO Q&A COUNT RULE\n")
	fmt.Fprintf(&b, "Video Duration: %s hours\n", durationLabel(durationSeconds))
	fmt.Fprintf(&b, "REQUIRED Q&A COUNT: EXACTLY %d Q&A pairs\n", count)
	b.WriteString("This number is fixed and non-negotiable. Do NOT generate more or fewer\n")
	b.WriteString("questions under ANY condition.\n\n")

	b.WriteString("Q&A GENERATION RULES\n")
	b.WriteString("- Questions must test deep understanding of the video content\n")
	b.WriteString("- Answers must be derived ONLY from what the speaker says\n")
	b.WriteString("- Answers should be clear, concise, and explanatory\n")
	b.WriteString("- Do NOT ask factual or metadata-based questions\n\n")

	b.WriteString("GOOD QUESTION EXAMPLES:\n")
	b.WriteString(`- "Why does the speaker recommend this approach?"
- "What problem does this technique solve according to the video?"
- "What mistake does the speaker warn beginners about?"
- "How does the speaker explain this concept using an example?"
- "What happens if the suggested step is skipped, as explained in the video?"

`)
	b.WriteString("BAD QUESTION EXAMPLES (DO NOT GENERATE):\n")
	b.WriteString(`- "What is the title of the video?"
- "Who uploaded this video?"
- "How many views does it have?"
- "When was it published?"
- "What is the channel name?"

`)

	b.WriteString("MANDATORY SELF-CHECK\n")
	b.WriteString("Before outputting ANY Q&A pair, ask yourself:\n")
	b.WriteString(`"Could someone answer this WITHOUT watching the video?"` + "\n")
	b.WriteString("- If YES, delete or rewrite the question\n")
	b.WriteString("- If NO, keep it\n\n")

	b.WriteString("CRITICAL INSTRUCTION:\n")
	b.WriteString("You MUST generate Q&A pairs from whatever content is available in the transcript.\n")
	b.WriteString("Even if the content seems limited, extract meaningful questions and answers from\n")
	b.WriteString(`what IS there. DO NOT respond with messages like "Insufficient video content" -` + "\n")
	b.WriteString("just do your best with the available content.\n\n")

	b.WriteString("CONTENT FOR ANALYSIS\n")
	fmt.Fprintf(&b, "Content Title (Reference Only - DO NOT CREATE QUESTIONS ABOUT THIS TITLE): %s\n\n", pageTitle)
	fmt.Fprintf(&b, "Video Transcript/Content:\n%s\n\n", transcript)

	b.WriteString("FINAL VALIDATION STEP\n")
	fmt.Fprintf(&b, "Confirm you have generated EXACTLY %d Q&A pairs.\n\n", count)

	b.WriteString("OUTPUT FORMAT\n")
	b.WriteString("Return ONLY a JSON object (no markdown, no code blocks) with this exact structure:\n")
	fmt.Fprintf(&b, `{
  "type": "qa",
  "title": "Video Content Comprehension Q&A",
  "qaCount": %d,
  "qa": [
    {
      "question": "Why does the speaker recommend this specific approach over alternatives?",
      "answer": "The speaker explains that this approach is recommended because [specific reasoning from video]."
    }
  ]
}

Remember:
- EXACTLY %d Q&A pairs
- ONLY content from the transcript
- NO metadata references
- Open-ended questions only
- Content-based answers only`, count, count)

	return b.String()
}
