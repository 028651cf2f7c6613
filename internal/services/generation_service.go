package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"thumbnail-backend/internal/events"
	"thumbnail-backend/internal/imageproc"
	"thumbnail-backend/internal/inference"
	"thumbnail-backend/internal/models"
	"thumbnail-backend/internal/prompt"
)

var (
	// ErrInvalidRequest wraps caller errors found before anything is persisted.
	ErrInvalidRequest = errors.New("invalid generation request")
	// ErrNoImage means every model was tried, or the chain stopped early,
	// without an image. The wrapped error is the last *inference.GenerationError.
	ErrNoImage = errors.New("no model produced an image")
	// ErrUpload means the image was generated but could not be stored.
	ErrUpload = errors.New("failed to upload thumbnail")
)

// ThumbnailStore persists thumbnail records.
type ThumbnailStore interface {
	CreateThumbnail(ctx context.Context, t *models.Thumbnail) error
	CompleteThumbnail(ctx context.Context, id uuid.UUID, outcome models.Outcome, promptUsed string) (*models.Thumbnail, error)
	GetThumbnail(ctx context.Context, id, userID uuid.UUID) (*models.Thumbnail, error)
	ListThumbnails(ctx context.Context, userID uuid.UUID) ([]models.Thumbnail, error)
	DeleteThumbnail(ctx context.Context, id, userID uuid.UUID) error
}

// Uploader stores image bytes under path and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (*inference.Result, error)
}

type PostProcessor interface {
	Process(data []byte, opts imageproc.Options) ([]byte, error)
}

type GenerationService struct {
	store     ThumbnailStore
	generator Generator
	uploader  Uploader
	publisher events.Publisher
	processor PostProcessor
	log       zerolog.Logger
}

func NewGenerationService(
	store ThumbnailStore,
	generator Generator,
	uploader Uploader,
	publisher events.Publisher,
	log zerolog.Logger,
) *GenerationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &GenerationService{
		store:     store,
		generator: generator,
		uploader:  uploader,
		publisher: publisher,
		log:       log,
	}
}

// WithPostProcessor enables cropping and title overlay on accepted images.
func (s *GenerationService) WithPostProcessor(p PostProcessor) *GenerationService {
	s.processor = p
	return s
}

// Generate runs one generation request end to end. A pending record is
// created before any external call and is always finalized before Generate
// returns, so callers never observe a record stuck in progress.
//
// Client cancellation is ignored: the request context's values are kept but
// its deadline and cancellation are dropped.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, req models.GenerateThumbnailRequest) (thumbnail *models.Thumbnail, err error) {
	input := prompt.Input{
		Title:       req.Title,
		Style:       req.Style,
		ColorScheme: req.ColorScheme,
		Extra:       req.Prompt,
		AspectRatio: req.AspectRatio,
	}
	if input.AspectRatio == "" {
		input.AspectRatio = prompt.DefaultAspectRatio
	}
	if err := prompt.Validate(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ctx = context.WithoutCancel(ctx)

	record := &models.Thumbnail{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Style:       input.Style,
		AspectRatio: input.AspectRatio,
		ColorScheme: input.ColorScheme,
		UserPrompt:  input.Extra,
		TextOverlay: req.TextOverlay,
	}
	log := s.log.With().Str("thumbnail_id", record.ID.String()).Str("user_id", userID.String()).Logger()

	created := false
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bool("record_created", created).Msg("thumbnail generation panicked")
			if created {
				s.fail(ctx, log, record, fmt.Sprintf("unexpected error: %v", r))
			}
			thumbnail = nil
			err = fmt.Errorf("unexpected error during generation: %v", r)
		}
	}()

	if err := s.store.CreateThumbnail(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail record: %w", err)
	}
	created = true
	log.Info().Str("style", record.Style).Msg("thumbnail generation started")

	promptText, err := prompt.Compose(input)
	if err != nil {
		s.fail(ctx, log, record, err.Error())
		return nil, fmt.Errorf("failed to compose prompt: %w", err)
	}

	result, err := s.generator.Generate(ctx, promptText)
	if err != nil {
		s.fail(ctx, log, record, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrNoImage, err)
	}

	image := s.postProcess(log, result.Image, record)

	path := ObjectPath(userID, record.ID, image)
	url, err := s.uploader.Upload(ctx, path, image)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("thumbnail upload failed")
		s.fail(ctx, log, record, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	completed, err := s.store.CompleteThumbnail(ctx, record.ID, models.Succeeded(url), promptText)
	if err != nil {
		log.Error().Err(err).Msg("failed to finalize thumbnail")
		s.fail(ctx, log, record, err.Error())
		return nil, fmt.Errorf("failed to finalize thumbnail: %w", err)
	}

	log.Info().Str("model", result.Model).Str("image_url", url).Msg("thumbnail generated")
	s.publish(ctx, log, events.New(events.ThumbnailGenerated, record.ID, userID, events.GeneratedPayload(result.Model, url)))

	return completed, nil
}

// fail applies the terminal failed state. Errors here are logged only; the
// caller is already returning an error.
func (s *GenerationService) fail(ctx context.Context, log zerolog.Logger, record *models.Thumbnail, reason string) {
	if _, err := s.store.CompleteThumbnail(ctx, record.ID, models.Failed(), ""); err != nil {
		log.Error().Err(err).Msg("failed to mark thumbnail as failed")
	}
	log.Warn().Str("reason", reason).Msg("thumbnail generation failed")
	s.publish(ctx, log, events.New(events.ThumbnailFailed, record.ID, record.UserID, events.FailedPayload(reason)))
}

func (s *GenerationService) postProcess(log zerolog.Logger, image []byte, record *models.Thumbnail) []byte {
	if s.processor == nil {
		return image
	}
	out, err := s.processor.Process(image, imageproc.Options{
		AspectRatio: record.AspectRatio,
		Title:       record.Title,
		TextOverlay: record.TextOverlay,
	})
	if err != nil {
		log.Warn().Err(err).Msg("post-processing failed, keeping original image")
		return image
	}
	return out
}

func (s *GenerationService) publish(ctx context.Context, log zerolog.Logger, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("event", event.Type).Msg("failed to publish event")
	}
}

func (s *GenerationService) List(ctx context.Context, userID uuid.UUID) ([]models.Thumbnail, error) {
	return s.store.ListThumbnails(ctx, userID)
}

func (s *GenerationService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Thumbnail, error) {
	return s.store.GetThumbnail(ctx, id, userID)
}

// Delete removes the record if userID owns it. Missing and foreign records
// are not errors.
func (s *GenerationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.store.DeleteThumbnail(ctx, id, userID); err != nil {
		return err
	}
	s.publish(ctx, s.log, events.New(events.ThumbnailDeleted, id, userID, nil))
	return nil
}

// ObjectPath is the CDN path for a thumbnail, with an extension matching the
// detected image format.
func ObjectPath(userID, thumbnailID uuid.UUID, image []byte) string {
	ext := mimetype.Detect(image).Extension()
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("users/%s/thumbnails/%s%s", userID, thumbnailID, ext)
}
