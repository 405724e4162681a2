package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/videoai/comprehension-api/internal/config"
	"github.com/videoai/comprehension-api/internal/content"
	httperrors "github.com/videoai/comprehension-api/pkg/http/errors"
)

// Handlers provides the REST endpoints for content generation and history.
type Handlers struct {
	svc    *content.Service
	limits config.Generation
	logger zerolog.Logger
}

func NewHandlers(svc *content.Service, limits config.Generation, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		limits: limits,
		logger: logger.With().Str("component", "http_handlers").Logger(),
	}
}

type generateRequest struct {
	VideoIdentifier string `json:"videoIdentifier"`
	PageTitle       string `json:"pageTitle"`
	Domain          string `json:"domain"`
	PageURL         string `json:"pageUrl"`
	VideoSrc        string `json:"videoSrc"`
	ContentType     string `json:"contentType"`
	Transcript      string `json:"transcript"`
	VideoDuration   *int   `json:"videoDuration"`
}

type generateResponse struct {
	Success         bool                `json:"success"`
	Cached          bool                `json:"cached"`
	ContentID       string              `json:"contentId"`
	VideoIdentifier string              `json:"videoIdentifier"`
	PageTitle       string              `json:"pageTitle"`
	Domain          string              `json:"domain"`
	PageURL         string              `json:"pageUrl"`
	VideoSrc        string              `json:"videoSrc"`
	ContentType     content.ContentType `json:"contentType"`
	GeneratedData   content.Payload     `json:"generatedData"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// Generate handles POST /api/generate
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if field, msg := h.validateGenerate(req); field != "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, msg, field)
		return
	}

	result, err := h.svc.Process(r.Context(), content.ProcessRequest{
		VideoIdentifier: req.VideoIdentifier,
		PageTitle:       req.PageTitle,
		Domain:          req.Domain,
		PageURL:         req.PageURL,
		VideoSrc:        req.VideoSrc,
		ContentType:     content.ContentType(req.ContentType),
		Transcript:      req.Transcript,
		DurationSeconds: req.VideoDuration,
	})
	if err != nil {
		h.respondProcessError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Cached {
		status = http.StatusOK
	}
	a := result.Artifact
	respondJSON(w, status, generateResponse{
		Success:         true,
		Cached:          result.Cached,
		ContentID:       a.ContentID,
		VideoIdentifier: a.VideoIdentifier,
		PageTitle:       a.PageTitle,
		Domain:          a.Domain,
		PageURL:         a.PageURL,
		VideoSrc:        a.VideoSrc,
		ContentType:     a.ContentType,
		GeneratedData:   a.GeneratedData,
		CreatedAt:       a.CreatedAt,
	})
}

func (h *Handlers) validateGenerate(req generateRequest) (field, msg string) {
	switch {
	case req.VideoIdentifier == "":
		return "videoIdentifier", "Video identifier is required"
	case req.PageTitle == "":
		return "pageTitle", "Page title is required"
	case len(req.PageTitle) > h.limits.MaxTitleChars:
		return "pageTitle", "Page title too long"
	case req.Domain == "":
		return "domain", "Domain is required"
	case req.PageURL == "":
		return "pageUrl", "Page URL is required"
	case req.VideoSrc == "":
		return "videoSrc", "Video source is required"
	case !content.ContentType(req.ContentType).Valid():
		return "contentType", "Content type must be quiz or qa"
	case req.Transcript == "":
		return "transcript", "Transcript or page content is required"
	case len(req.Transcript) > h.limits.MaxTranscriptChars:
		return "transcript", "Transcript too long"
	case req.VideoDuration != nil && *req.VideoDuration <= 0:
		return "videoDuration", "Video duration must be a positive integer (seconds)"
	}
	return "", ""
}

func (h *Handlers) respondProcessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, content.ErrInsufficientContent):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInsufficientContent, err.Error())
	case errors.Is(err, content.ErrMalformedResponse), errors.Is(err, content.ErrSchemaValidation):
		h.logger.Error().Err(err).Msg("model output rejected")
		httperrors.RespondBadGateway(w, httperrors.ErrCodeGenerationFailed, "Failed to generate content from the model response")
	default:
		h.logger.Error().Err(err).Msg("generation request failed")
		httperrors.RespondInternalError(w, "Failed to generate content")
	}
}

// History handles GET /api/history?type=quiz|qa
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	var filter *content.ContentType
	if t := r.URL.Query().Get("type"); t != "" {
		ct := content.ContentType(t)
		if !ct.Valid() {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "Type must be quiz or qa", "type")
			return
		}
		filter = &ct
	}

	summaries, err := h.svc.History(r.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("history listing failed")
		httperrors.RespondInternalError(w, "Failed to list history")
		return
	}
	if summaries == nil {
		summaries = []content.Summary{}
	}
	respondJSON(w, http.StatusOK, summaries)
}

// Detail handles GET /api/history/{contentId}
func (h *Handlers) Detail(w http.ResponseWriter, r *http.Request) {
	contentID := r.PathValue("contentId")
	if contentID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Content ID is required", "contentId")
		return
	}

	redacted, err := h.svc.GetRedacted(r.Context(), contentID)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Content not found")
			return
		}
		h.logger.Error().Err(err).Str("content_id", contentID).Msg("content lookup failed")
		httperrors.RespondInternalError(w, "Failed to fetch content")
		return
	}
	respondJSON(w, http.StatusOK, redacted)
}

type validateAnswersRequest struct {
	UserAnswers map[string]interface{} `json:"userAnswers"`
}

type validateAnswersResponse struct {
	Success     bool                   `json:"success"`
	ContentType content.ContentType    `json:"contentType"`
	Results     []content.AnswerResult `json:"results"`
	Score       *int                   `json:"score"`
	Total       int                    `json:"total"`
}

// ValidateAnswers handles POST /api/history/{contentId}/validate
func (h *Handlers) ValidateAnswers(w http.ResponseWriter, r *http.Request) {
	contentID := r.PathValue("contentId")
	if contentID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Content ID is required", "contentId")
		return
	}

	var req validateAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.UserAnswers == nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "User answers must be an object", "userAnswers")
		return
	}

	result, err := h.svc.ValidateAnswers(r.Context(), contentID, req.UserAnswers)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Content not found")
			return
		}
		h.logger.Error().Err(err).Str("content_id", contentID).Msg("answer validation failed")
		httperrors.RespondInternalError(w, "Failed to validate answers")
		return
	}

	respondJSON(w, http.StatusOK, validateAnswersResponse{
		Success:     true,
		ContentType: result.ContentType,
		Results:     result.Results,
		Score:       result.Score,
		Total:       result.Total,
	})
}

// Index handles GET /api, a small directory useful when poking the API in
// a browser.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Video Comprehension API",
		"endpoints": map[string]interface{}{
			"generate":        map[string]string{"method": "POST", "path": "/api/generate", "description": "Generate quiz or Q&A from video metadata"},
			"history":         map[string]string{"method": "GET", "path": "/api/history", "description": "List generated content"},
			"contentById":     map[string]string{"method": "GET", "path": "/api/history/{contentId}", "description": "Get content details by ID"},
			"validateAnswers": map[string]string{"method": "POST", "path": "/api/history/{contentId}/validate", "description": "Validate user answers"},
		},
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
