package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome is the completion state of a thumbnail: pending, succeeded with an
// image URL, or failed. Only the constructors below can build one, so a
// succeeded outcome always carries a URL and the others never do.
type Outcome struct {
	status   Status
	imageURL string
}

func Pending() Outcome {
	return Outcome{status: StatusPending}
}

func Succeeded(imageURL string) Outcome {
	if imageURL == "" {
		panic("models: succeeded outcome requires an image url")
	}
	return Outcome{status: StatusSucceeded, imageURL: imageURL}
}

func Failed() Outcome {
	return Outcome{status: StatusFailed}
}

// ParseOutcome rebuilds an Outcome from stored columns and rejects
// combinations that cannot exist.
func ParseOutcome(status, imageURL string) (Outcome, error) {
	switch Status(status) {
	case StatusPending:
		if imageURL != "" {
			return Outcome{}, fmt.Errorf("pending thumbnail has image url %q", imageURL)
		}
		return Pending(), nil
	case StatusFailed:
		if imageURL != "" {
			return Outcome{}, fmt.Errorf("failed thumbnail has image url %q", imageURL)
		}
		return Failed(), nil
	case StatusSucceeded:
		if imageURL == "" {
			return Outcome{}, fmt.Errorf("succeeded thumbnail has no image url")
		}
		return Succeeded(imageURL), nil
	default:
		return Outcome{}, fmt.Errorf("unknown thumbnail status %q", status)
	}
}

func (o Outcome) Status() Status {
	if o.status == "" {
		return StatusPending
	}
	return o.status
}

func (o Outcome) ImageURL() string { return o.imageURL }

// InProgress is true until the terminal update.
func (o Outcome) InProgress() bool { return o.Status() == StatusPending }

// Thumbnail is the persisted record of one generation request.
type Thumbnail struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Style       string
	AspectRatio string
	ColorScheme string
	UserPrompt  string
	TextOverlay bool
	PromptUsed  string
	Outcome     Outcome
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type thumbnailJSON struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Style        string    `json:"style"`
	AspectRatio  string    `json:"aspect_ratio"`
	ColorScheme  string    `json:"color_scheme,omitempty"`
	UserPrompt   string    `json:"user_prompt,omitempty"`
	TextOverlay  bool      `json:"text_overlay"`
	PromptUsed   string    `json:"prompt_used,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	IsGenerating bool      `json:"is_generating"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t Thumbnail) MarshalJSON() ([]byte, error) {
	return json.Marshal(thumbnailJSON{
		ID:           t.ID.String(),
		UserID:       t.UserID.String(),
		Title:        t.Title,
		Style:        t.Style,
		AspectRatio:  t.AspectRatio,
		ColorScheme:  t.ColorScheme,
		UserPrompt:   t.UserPrompt,
		TextOverlay:  t.TextOverlay,
		PromptUsed:   t.PromptUsed,
		ImageURL:     t.Outcome.ImageURL(),
		IsGenerating: t.Outcome.InProgress(),
		Status:       t.Outcome.Status(),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	})
}
