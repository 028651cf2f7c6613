package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"thumbnail-backend/internal/models"
)

// DatabaseClient stores thumbnails in the project's Postgres database.
type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewDatabaseClientFromDB wraps an existing handle.
func NewDatabaseClientFromDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

const thumbnailColumns = `id, user_id, title, style, aspect_ratio, color_scheme, user_prompt, text_overlay, prompt_used, status, image_url, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanThumbnail(row rowScanner) (*models.Thumbnail, error) {
	var (
		t                                          models.Thumbnail
		colorScheme, userPrompt, promptUsed, image sql.NullString
		status                                     string
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Style, &t.AspectRatio,
		&colorScheme, &userPrompt, &t.TextOverlay, &promptUsed,
		&status, &image, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	outcome, err := models.ParseOutcome(status, image.String)
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", t.ID, err)
	}

	t.ColorScheme = colorScheme.String
	t.UserPrompt = userPrompt.String
	t.PromptUsed = promptUsed.String
	t.Outcome = outcome
	return &t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (d *DatabaseClient) CreateThumbnail(ctx context.Context, t *models.Thumbnail) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO thumbnails (id, user_id, title, style, aspect_ratio, color_scheme, user_prompt, text_overlay, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, t.ID, t.UserID, t.Title, t.Style, t.AspectRatio,
		nullString(t.ColorScheme), nullString(t.UserPrompt), t.TextOverlay, string(models.StatusPending),
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail: %w", err)
	}

	t.Outcome = models.Pending()
	return nil
}

// CompleteThumbnail applies the terminal update. It only touches pending
// rows, so a record is completed at most once.
func (d *DatabaseClient) CompleteThumbnail(ctx context.Context, id uuid.UUID, outcome models.Outcome, promptUsed string) (*models.Thumbnail, error) {
	row := d.db.QueryRowContext(ctx, `
		UPDATE thumbnails
		SET status = $1, image_url = $2, prompt_used = COALESCE($3, prompt_used), updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
		RETURNING `+thumbnailColumns,
		string(outcome.Status()), nullString(outcome.ImageURL()), nullString(promptUsed), id,
	)

	t, err := scanThumbnail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrThumbnailNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete thumbnail: %w", err)
	}
	return t, nil
}

func (d *DatabaseClient) GetThumbnail(ctx context.Context, id, userID uuid.UUID) (*models.Thumbnail, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT `+thumbnailColumns+`
		FROM thumbnails
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	t, err := scanThumbnail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrThumbnailNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get thumbnail: %w", err)
	}
	return t, nil
}

func (d *DatabaseClient) ListThumbnails(ctx context.Context, userID uuid.UUID) ([]models.Thumbnail, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+thumbnailColumns+`
		FROM thumbnails
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list thumbnails: %w", err)
	}
	defer rows.Close()

	thumbnails := make([]models.Thumbnail, 0)
	for rows.Next() {
		t, err := scanThumbnail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thumbnail: %w", err)
		}
		thumbnails = append(thumbnails, *t)
	}

	return thumbnails, rows.Err()
}

// DeleteThumbnail removes the record only when it belongs to userID. Deleting
// a missing or foreign record is not an error.
func (d *DatabaseClient) DeleteThumbnail(ctx context.Context, id, userID uuid.UUID) error {
	_, err := d.db.ExecContext(ctx, `
		DELETE FROM thumbnails
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete thumbnail: %w", err)
	}
	return nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
