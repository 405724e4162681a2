package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/videoai/comprehension-api/internal/content"
)

// pgUniqueViolation is the Postgres error code raised when an insert hits
// the (video_identifier, content_type) unique index.
const pgUniqueViolation = "23505"

// ContentRepository persists generated artifacts in Postgres. The
// at-most-one-artifact-per-(identity, type) invariant is enforced by the
// database's unique index, not by check-then-insert, so concurrent first
// requests for the same video converge on a single stored row.
type ContentRepository struct {
	pool *pgxpool.Pool
}

var _ content.ArtifactStore = (*ContentRepository)(nil)

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// FindByVideo returns the artifact for (videoIdentifier, contentType), or
// nil when absent.
func (r *ContentRepository) FindByVideo(ctx context.Context, videoIdentifier string, t content.ContentType) (*content.Artifact, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT content_id, video_identifier, page_title, domain, page_url, video_src, content_type, generated_data, created_at
		FROM generated_content
		WHERE video_identifier = $1 AND content_type = $2`,
		videoIdentifier, string(t))
	return scanArtifact(row)
}

// FindByContentID returns the artifact with the given content ID, or nil
// when absent.
func (r *ContentRepository) FindByContentID(ctx context.Context, contentID string) (*content.Artifact, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT content_id, video_identifier, page_title, domain, page_url, video_src, content_type, generated_data, created_at
		FROM generated_content
		WHERE content_id = $1`,
		contentID)
	return scanArtifact(row)
}

// Insert stores a new artifact. Returns content.ErrDuplicate when the
// compound unique index rejects the row.
func (r *ContentRepository) Insert(ctx context.Context, a *content.Artifact) error {
	data, err := json.Marshal(a.GeneratedData)
	if err != nil {
		return fmt.Errorf("encode generated data: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO generated_content (content_id, video_identifier, page_title, domain, page_url, video_src, content_type, generated_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ContentID, a.VideoIdentifier, a.PageTitle, a.Domain, a.PageURL, a.VideoSrc, string(a.ContentType), data, a.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return content.ErrDuplicate
		}
		return fmt.Errorf("insert artifact: %w", err)
	}
	return nil
}

// List returns summaries, newest first, capped at limit. A nil filter
// means all content types.
func (r *ContentRepository) List(ctx context.Context, filter *content.ContentType, limit int) ([]content.Summary, error) {
	query := `
		SELECT content_id, page_title, domain, content_type, created_at
		FROM generated_content`
	args := []interface{}{}
	if filter != nil {
		query += ` WHERE content_type = $1`
		args = append(args, string(*filter))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var summaries []content.Summary
	for rows.Next() {
		var s content.Summary
		var contentType string
		if err := rows.Scan(&s.ContentID, &s.PageTitle, &s.Domain, &contentType, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.ContentType = content.ContentType(contentType)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func scanArtifact(row pgx.Row) (*content.Artifact, error) {
	var (
		a           content.Artifact
		contentType string
		data        []byte
		createdAt   time.Time
	)
	err := row.Scan(&a.ContentID, &a.VideoIdentifier, &a.PageTitle, &a.Domain, &a.PageURL, &a.VideoSrc, &contentType, &data, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan artifact: %w", err)
	}

	a.ContentType = content.ContentType(contentType)
	a.CreatedAt = createdAt
	a.GeneratedData, err = content.DecodePayload(a.ContentType, data)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
