package content

import "errors"

var (
	// ErrInsufficientContent means the transcript is below the minimum
	// length; no model call is made and the request is never retried.
	ErrInsufficientContent = errors.New("transcript too short to generate content")

	// ErrMalformedResponse means the model output could not be parsed as
	// JSON even after the fallback attempt.
	ErrMalformedResponse = errors.New("model response could not be parsed")

	// ErrSchemaValidation means the parsed payload is missing its item
	// array or an item violates its invariants.
	ErrSchemaValidation = errors.New("model response failed schema validation")

	// ErrNotFound means no artifact exists for the given content ID.
	ErrNotFound = errors.New("content not found")

	// ErrDuplicate means an artifact already exists for the
	// (videoIdentifier, contentType) pair. Raised by the store's unique
	// constraint; orchestrators recover by re-reading.
	ErrDuplicate = errors.New("content already exists for this video and type")
)
