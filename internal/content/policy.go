package content

const (
	// MinItemCount is the floor below which a generated set is not useful.
	MinItemCount = 5

	// Characters of transcript needed to support one item. Q&A items are
	// shorter to produce, so they pack denser per character.
	quizCharsPerItem = 350
	qaCharsPerItem   = 250
)

// RequiredCount decides how many items to request from the model.
//
// Duration bounds how many distinct concepts a video can plausibly contain
// (step function on hours); transcript length bounds how much source
// material exists to mine. The final count is the smaller of the two, never
// below MinItemCount. When the duration is unknown only the transcript
// bound applies.
func RequiredCount(t ContentType, durationSeconds *int, transcriptLen int) int {
	density := quizCharsPerItem
	if t == TypeQA {
		density = qaCharsPerItem
	}
	transcriptBased := transcriptLen / density

	if durationSeconds == nil {
		return max(MinItemCount, transcriptBased)
	}

	hours := float64(*durationSeconds) / 3600
	var ideal int
	switch {
	case hours < 1:
		ideal = 10
	case hours < 2:
		ideal = 15
	case hours < 3:
		ideal = 20
	default:
		ideal = 25
	}

	return max(MinItemCount, min(ideal, transcriptBased))
}
