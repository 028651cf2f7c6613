package models

type GenerateThumbnailRequest struct {
	Title string `json:"title" binding:"required" example:"10 Go tips you wish you knew"`
	// Prompt is optional free text appended to the composed prompt.
	Prompt      string `json:"prompt,omitempty" example:"a gopher holding a lightbulb"`
	Style       string `json:"style" binding:"required" example:"Bold & Graphic"`
	AspectRatio string `json:"aspect_ratio,omitempty" example:"16:9"`
	ColorScheme string `json:"color_scheme,omitempty" example:"vibrant"`
	TextOverlay bool   `json:"text_overlay,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
