// Package prompt turns a thumbnail request into the text prompt sent to the
// inference models.
package prompt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyTitle         = errors.New("title is required")
	ErrUnknownStyle       = errors.New("unknown style")
	ErrUnknownColorScheme = errors.New("unknown color scheme")
	ErrUnknownAspectRatio = errors.New("unknown aspect ratio")
)

const DefaultAspectRatio = "16:9"

var styleDescriptions = map[string]string{
	"Bold & Graphic":  "eye-catching thumbnail, bold typography, vibrant colors, expressive facial reaction, dramatic lighting, high contrast, click-worthy composition, professional style",
	"Tech/Futuristic": "futuristic thumbnail, sleek modern design, digital UI elements, glowing accents, holographic effects, cyber-tech aesthetic, sharp lighting, high-tech atmosphere",
	"Minimalist":      "minimalist thumbnail, clean layout, simple shapes, limited color palette, plenty of negative space, modern flat design, clear focal point",
	"Photorealistic":  "photorealistic thumbnail, ultra-realistic lighting, natural skin tones, candid moment, DSLR-style photography, lifestyle realism, shallow depth of field",
	"Illustrated":     "illustrated thumbnail, custom digital illustration, stylized characters, bold outlines, vibrant colors, creative cartoon or vector art style",
}

var colorSchemeDescriptions = map[string]string{
	"vibrant":    "vibrant and energetic colors, high saturation, bold contrasts, eye-catching palette",
	"sunset":     "warm sunset tones, orange pink and purple hues, soft gradients, cinematic glow",
	"forest":     "natural green tones, earthy colors, calm and organic palette, fresh atmosphere",
	"neon":       "neon glow effects, electric blues and pinks, cyberpunk lighting, high contrast glow",
	"purple":     "purple-dominant color palette, magenta and violet tones, modern and stylish mood",
	"monochrome": "black and white color scheme, high contrast, dramatic lighting, timeless aesthetic",
	"ocean":      "cool blue and teal tones, aquatic color palette, fresh and clean atmosphere",
	"pastel":     "soft pastel colors, low saturation, gentle tones, calm and friendly aesthetic",
}

var aspectRatios = map[string]bool{
	"16:9": true,
	"9:16": true,
	"1:1":  true,
	"4:3":  true,
	"3:4":  true,
}

// Input is everything the composer needs. ColorScheme and Extra are optional.
type Input struct {
	Title       string
	Style       string
	ColorScheme string
	Extra       string
	AspectRatio string
}

// Validate reports a caller error without building the prompt.
func Validate(in Input) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if _, ok := styleDescriptions[in.Style]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, in.Style)
	}
	if in.ColorScheme != "" {
		if _, ok := colorSchemeDescriptions[in.ColorScheme]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColorScheme, in.ColorScheme)
		}
	}
	if in.AspectRatio != "" && !aspectRatios[in.AspectRatio] {
		return fmt.Errorf("%w: %q", ErrUnknownAspectRatio, in.AspectRatio)
	}
	return nil
}

// Compose builds the prompt in fixed order: style and title, color scheme,
// free text, then the aspect ratio and click-through framing.
func Compose(in Input) (string, error) {
	if err := Validate(in); err != nil {
		return "", err
	}

	aspect := in.AspectRatio
	if aspect == "" {
		aspect = DefaultAspectRatio
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s for: \"%s\".", styleDescriptions[in.Style], strings.TrimSpace(in.Title))

	if in.ColorScheme != "" {
		fmt.Fprintf(&b, " Use a %s.", colorSchemeDescriptions[in.ColorScheme])
	}

	if extra := strings.TrimSpace(in.Extra); extra != "" {
		fmt.Fprintf(&b, " Additional details: %s.", extra)
	}

	fmt.Fprintf(&b, " The thumbnail should be %s, visually stunning, and designed to maximize click-through rate. Make it bold, professional, and impossible to ignore.", aspect)

	return b.String(), nil
}

func StyleDescription(style string) (string, bool) {
	d, ok := styleDescriptions[style]
	return d, ok
}

func ColorSchemeDescription(scheme string) (string, bool) {
	d, ok := colorSchemeDescriptions[scheme]
	return d, ok
}

// Styles returns the style keys in sorted order.
func Styles() []string { return sortedKeys(styleDescriptions) }

func ColorSchemes() []string { return sortedKeys(colorSchemeDescriptions) }

func AspectRatios() []string {
	keys := make([]string, 0, len(aspectRatios))
	for k := range aspectRatios {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
