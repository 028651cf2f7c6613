package models

type ThumbnailResponse struct {
	Message   string    `json:"message"`
	Thumbnail Thumbnail `json:"thumbnail"`
}

type ThumbnailListResponse struct {
	Thumbnails []Thumbnail `json:"thumbnails"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// GenerationErrorResponse is returned with 502 when no model produced an image.
type GenerationErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
	Status  int    `json:"status,omitempty"`
	Body    any    `json:"body,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type OptionDescription struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

type GenerationOptionsResponse struct {
	Styles       []OptionDescription `json:"styles"`
	ColorSchemes []OptionDescription `json:"color_schemes"`
	AspectRatios []string            `json:"aspect_ratios"`
}
