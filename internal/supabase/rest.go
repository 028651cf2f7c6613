package supabase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
	"thumbnail-backend/internal/models"
)

const thumbnailsTable = "thumbnails"

// RestStore stores thumbnails through the Supabase PostgREST API. It is used
// when the service has no direct database connection.
type RestStore struct {
	client *supabase.Client
}

func NewRestStore(supabaseURL, apiKey string) (*RestStore, error) {
	client, err := supabase.NewClient(supabaseURL, apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &RestStore{client: client}, nil
}

type thumbnailInsert struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Style       string  `json:"style"`
	AspectRatio string  `json:"aspect_ratio"`
	ColorScheme *string `json:"color_scheme"`
	UserPrompt  *string `json:"user_prompt"`
	TextOverlay bool    `json:"text_overlay"`
	Status      string  `json:"status"`
}

type thumbnailRow struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Style       string    `json:"style"`
	AspectRatio string    `json:"aspect_ratio"`
	ColorScheme *string   `json:"color_scheme"`
	UserPrompt  *string   `json:"user_prompt"`
	TextOverlay bool      `json:"text_overlay"`
	PromptUsed  *string   `json:"prompt_used"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r thumbnailRow) toModel() (*models.Thumbnail, error) {
	outcome, err := models.ParseOutcome(r.Status, deref(r.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", r.ID, err)
	}
	return &models.Thumbnail{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Style:       r.Style,
		AspectRatio: r.AspectRatio,
		ColorScheme: deref(r.ColorScheme),
		UserPrompt:  deref(r.UserPrompt),
		TextOverlay: r.TextOverlay,
		PromptUsed:  deref(r.PromptUsed),
		Outcome:     outcome,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func (s *RestStore) CreateThumbnail(ctx context.Context, t *models.Thumbnail) error {
	var rows []thumbnailRow
	_, err := s.client.From(thumbnailsTable).
		Insert(thumbnailInsert{
			ID:          t.ID.String(),
			UserID:      t.UserID.String(),
			Title:       t.Title,
			Style:       t.Style,
			AspectRatio: t.AspectRatio,
			ColorScheme: optional(t.ColorScheme),
			UserPrompt:  optional(t.UserPrompt),
			TextOverlay: t.TextOverlay,
			Status:      string(models.StatusPending),
		}, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("failed to create thumbnail: empty response")
	}

	t.CreatedAt = rows[0].CreatedAt
	t.UpdatedAt = rows[0].UpdatedAt
	t.Outcome = models.Pending()
	return nil
}

func (s *RestStore) CompleteThumbnail(ctx context.Context, id uuid.UUID, outcome models.Outcome, promptUsed string) (*models.Thumbnail, error) {
	update := map[string]any{
		"status":     string(outcome.Status()),
		"image_url":  optional(outcome.ImageURL()),
		"updated_at": time.Now().UTC(),
	}
	if promptUsed != "" {
		update["prompt_used"] = promptUsed
	}

	var rows []thumbnailRow
	_, err := s.client.From(thumbnailsTable).
		Update(update, "representation", "").
		Eq("id", id.String()).
		Eq("status", string(models.StatusPending)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to complete thumbnail: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.ErrThumbnailNotFound
	}
	return rows[0].toModel()
}

func (s *RestStore) GetThumbnail(ctx context.Context, id, userID uuid.UUID) (*models.Thumbnail, error) {
	var rows []thumbnailRow
	_, err := s.client.From(thumbnailsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get thumbnail: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.ErrThumbnailNotFound
	}
	return rows[0].toModel()
}

func (s *RestStore) ListThumbnails(ctx context.Context, userID uuid.UUID) ([]models.Thumbnail, error) {
	var rows []thumbnailRow
	_, err := s.client.From(thumbnailsTable).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list thumbnails: %w", err)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })

	thumbnails := make([]models.Thumbnail, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, err
		}
		thumbnails = append(thumbnails, *t)
	}
	return thumbnails, nil
}

func (s *RestStore) DeleteThumbnail(ctx context.Context, id, userID uuid.UUID) error {
	_, _, err := s.client.From(thumbnailsTable).
		Delete("minimal", "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete thumbnail: %w", err)
	}
	return nil
}
