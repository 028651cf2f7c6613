package imageproc

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Processor crops generated images to the requested aspect ratio and can draw
// the video title in a banner along the bottom edge.
type Processor struct {
	fontPath string
}

// NewProcessor returns a Processor. When fontPath is empty the overlay uses
// the built-in bitmap face.
func NewProcessor(fontPath string) *Processor {
	return &Processor{fontPath: fontPath}
}

type Options struct {
	AspectRatio string
	Title       string
	TextOverlay bool
}

// Process returns the transformed image encoded as PNG.
func (p *Processor) Process(data []byte, opts Options) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if opts.AspectRatio != "" {
		w, h, err := ParseAspectRatio(opts.AspectRatio)
		if err != nil {
			return nil, err
		}
		width, height := fitDimensions(img.Bounds().Dx(), img.Bounds().Dy(), w, h)
		img = imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	}

	if opts.TextOverlay && strings.TrimSpace(opts.Title) != "" {
		dc := gg.NewContextForImage(img)
		if err := p.drawBanner(dc, opts.Title); err != nil {
			return nil, err
		}
		img = dc.Image()
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Processor) drawBanner(dc *gg.Context, title string) error {
	width := float64(dc.Width())
	height := float64(dc.Height())
	bannerHeight := height / 5
	margin := width / 30

	if p.fontPath != "" {
		if err := dc.LoadFontFace(p.fontPath, bannerHeight/3); err != nil {
			return fmt.Errorf("failed to load font: %w", err)
		}
	}

	dc.SetColor(color.NRGBA{A: 160})
	dc.DrawRectangle(0, height-bannerHeight, width, bannerHeight)
	dc.Fill()

	dc.SetColor(color.White)
	dc.DrawStringWrapped(title, width/2, height-bannerHeight/2, 0.5, 0.5, width-2*margin, 1.2, gg.AlignCenter)
	return nil
}

// ParseAspectRatio splits "W:H" into its positive integer parts.
func ParseAspectRatio(ratio string) (int, int, error) {
	parts := strings.Split(ratio, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q", ratio)
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q", ratio)
	}
	return w, h, nil
}

// fitDimensions returns the largest w:h box that fits inside srcW x srcH.
func fitDimensions(srcW, srcH, w, h int) (int, int) {
	if srcW*h > srcH*w {
		return srcH * w / h, srcH
	}
	return srcW, srcW * h / w
}
