package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"thumbnail-backend/internal/models"
	"thumbnail-backend/internal/prompt"
)

type OptionsHandler struct{}

func NewOptionsHandler() *OptionsHandler {
	return &OptionsHandler{}
}

// GetOptions godoc
// @Summary     Get generation options
// @Description Returns the accepted style, color scheme and aspect ratio values for thumbnail generation
// @Tags        thumbnails
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.GenerationOptionsResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /thumbnails/options [get]
func (h *OptionsHandler) GetOptions(c *gin.Context) {
	styles := make([]models.OptionDescription, 0, len(prompt.Styles()))
	for _, s := range prompt.Styles() {
		desc, _ := prompt.StyleDescription(s)
		styles = append(styles, models.OptionDescription{Value: s, Description: desc})
	}

	colors := make([]models.OptionDescription, 0, len(prompt.ColorSchemes()))
	for _, s := range prompt.ColorSchemes() {
		desc, _ := prompt.ColorSchemeDescription(s)
		colors = append(colors, models.OptionDescription{Value: s, Description: desc})
	}

	c.JSON(http.StatusOK, models.GenerationOptionsResponse{
		Styles:       styles,
		ColorSchemes: colors,
		AspectRatios: prompt.AspectRatios(),
	})
}
