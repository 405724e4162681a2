package content

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/videoai/comprehension-api/internal/metrics"
)

// HistoryLimit caps the history listing.
const HistoryLimit = 100

// ArtifactStore is the persistence contract for generated artifacts. Find
// methods return (nil, nil) on absence; Insert returns ErrDuplicate when
// the store's compound unique constraint rejects the row.
type ArtifactStore interface {
	FindByVideo(ctx context.Context, videoIdentifier string, t ContentType) (*Artifact, error)
	FindByContentID(ctx context.Context, contentID string) (*Artifact, error)
	Insert(ctx context.Context, a *Artifact) error
	List(ctx context.Context, filter *ContentType, limit int) ([]Summary, error)
}

// PayloadGenerator produces a validated payload from a transcript.
type PayloadGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (Payload, error)
}

// GenerateRequest carries everything the generator needs for one payload.
type GenerateRequest struct {
	ContentType     ContentType
	Transcript      string
	PageTitle       string
	DurationSeconds *int
}

// ProcessRequest is the orchestrator input. The fingerprint is computed by
// the client collaborator; the metadata describes where the video lives.
type ProcessRequest struct {
	VideoIdentifier string
	PageTitle       string
	Domain          string
	PageURL         string
	VideoSrc        string
	ContentType     ContentType
	Transcript      string
	DurationSeconds *int
}

// ProcessResult tags the returned artifact with whether it came from the
// cache or was freshly generated.
type ProcessResult struct {
	Artifact *Artifact
	Cached   bool
}

// Service coordinates cache lookups, generation, persistence and answer
// validation. It holds no mutable state of its own; concurrency safety
// comes entirely from the store's uniqueness constraint.
type Service struct {
	store     ArtifactStore
	generator PayloadGenerator
	metrics   *metrics.Content
	logger    zerolog.Logger
}

func NewService(store ArtifactStore, generator PayloadGenerator, m *metrics.Content, logger zerolog.Logger) *Service {
	return &Service{
		store:     store,
		generator: generator,
		metrics:   m,
		logger:    logger.With().Str("component", "content_service").Logger(),
	}
}

// Process returns the cached artifact for (videoIdentifier, contentType) or
// generates, persists and returns a new one. A duplicate-key conflict on
// insert means a concurrent equivalent request won the race; the winner's
// artifact is re-fetched and returned as a cache hit rather than an error.
func (s *Service) Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	existing, err := s.store.FindByVideo(ctx, req.VideoIdentifier, req.ContentType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Info().
			Str("content_type", string(req.ContentType)).
			Str("video_identifier", req.VideoIdentifier).
			Msg("cache hit")
		s.metrics.CacheHits.WithLabelValues(string(req.ContentType)).Inc()
		return &ProcessResult{Artifact: existing, Cached: true}, nil
	}

	s.metrics.CacheMisses.WithLabelValues(string(req.ContentType)).Inc()
	s.logger.Info().
		Str("content_type", string(req.ContentType)).
		Str("page_title", req.PageTitle).
		Msg("generating new content")

	payload, err := s.generator.Generate(ctx, GenerateRequest{
		ContentType:     req.ContentType,
		Transcript:      req.Transcript,
		PageTitle:       req.PageTitle,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		s.metrics.Generations.WithLabelValues(string(req.ContentType), "error").Inc()
		return nil, err
	}
	s.metrics.Generations.WithLabelValues(string(req.ContentType), "ok").Inc()

	artifact := &Artifact{
		ContentID:       uuid.NewString(),
		VideoIdentifier: req.VideoIdentifier,
		PageTitle:       req.PageTitle,
		Domain:          req.Domain,
		PageURL:         req.PageURL,
		VideoSrc:        req.VideoSrc,
		ContentType:     req.ContentType,
		GeneratedData:   payload,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, artifact); err != nil {
		if errors.Is(err, ErrDuplicate) {
			winner, ferr := s.store.FindByVideo(ctx, req.VideoIdentifier, req.ContentType)
			if ferr != nil {
				return nil, ferr
			}
			if winner == nil {
				return nil, fmt.Errorf("duplicate insert but no stored artifact for %s/%s", req.VideoIdentifier, req.ContentType)
			}
			s.logger.Info().
				Str("content_id", winner.ContentID).
				Msg("lost insert race, returning concurrent winner")
			return &ProcessResult{Artifact: winner, Cached: true}, nil
		}
		return nil, err
	}

	s.logger.Info().Str("content_id", artifact.ContentID).Msg("content saved")
	return &ProcessResult{Artifact: artifact, Cached: false}, nil
}

// History lists artifact summaries, newest first, capped at HistoryLimit.
func (s *Service) History(ctx context.Context, filter *ContentType) ([]Summary, error) {
	return s.store.List(ctx, filter, HistoryLimit)
}

// GetRedacted returns the artifact with answers separated out so an
// interactive client can render questions before revealing answers.
func (s *Service) GetRedacted(ctx context.Context, contentID string) (*RedactedContent, error) {
	artifact, err := s.store.FindByContentID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		return nil, ErrNotFound
	}

	redacted := &RedactedContent{
		ContentID:       artifact.ContentID,
		VideoIdentifier: artifact.VideoIdentifier,
		PageTitle:       artifact.PageTitle,
		Domain:          artifact.Domain,
		PageURL:         artifact.PageURL,
		VideoSrc:        artifact.VideoSrc,
		ContentType:     artifact.ContentType,
		CreatedAt:       artifact.CreatedAt,
	}

	switch p := artifact.GeneratedData.(type) {
	case *QuizPayload:
		data, answers := p.Redact()
		redacted.GeneratedData = data
		redacted.Answers = answers
	case *QAPayload:
		data, answers := p.Redact()
		redacted.GeneratedData = data
		redacted.Answers = answers
	default:
		return nil, fmt.Errorf("unsupported payload type %T", artifact.GeneratedData)
	}

	return redacted, nil
}

// ValidateAnswers scores user-submitted answers against the stored
// artifact. Quiz answers are judged by index equality; Q&A items only echo
// the stored reference answer for downstream comparison. Missing indices
// never error, they simply score as not matching.
func (s *Service) ValidateAnswers(ctx context.Context, contentID string, userAnswers map[string]interface{}) (*ValidationResult, error) {
	artifact, err := s.store.FindByContentID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		return nil, ErrNotFound
	}

	result := &ValidationResult{ContentType: artifact.ContentType}

	switch p := artifact.GeneratedData.(type) {
	case *QuizPayload:
		score := 0
		for i, q := range p.Questions {
			userAnswer := userAnswers[strconv.Itoa(i)]
			correct := answerMatchesIndex(userAnswer, q.AnswerIndex)
			if correct {
				score++
			}
			isCorrect := correct
			result.Results = append(result.Results, AnswerResult{
				QuestionIndex: i,
				IsCorrect:     &isCorrect,
				UserAnswer:    userAnswer,
				CorrectAnswer: q.AnswerIndex,
				CorrectOption: q.Options[q.AnswerIndex],
				Explanation:   q.Explanation,
			})
		}
		result.Score = &score
	case *QAPayload:
		for i, item := range p.QA {
			result.Results = append(result.Results, AnswerResult{
				QuestionIndex: i,
				UserAnswer:    userAnswers[strconv.Itoa(i)],
				CorrectAnswer: item.Answer,
			})
		}
	default:
		return nil, fmt.Errorf("unsupported payload type %T", artifact.GeneratedData)
	}

	result.Total = len(result.Results)
	return result, nil
}

// answerMatchesIndex compares a submitted answer against the correct option
// index. Submitted values arrive as decoded JSON, so numbers are float64.
func answerMatchesIndex(v interface{}, index int) bool {
	switch n := v.(type) {
	case float64:
		return n == float64(index)
	case int:
		return n == index
	default:
		return false
	}
}
