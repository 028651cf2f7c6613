package inference

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Kind int

const (
	KindError Kind = iota
	KindImage
)

func (k Kind) String() string {
	if k == KindImage {
		return "image"
	}
	return "error"
}

// Classification is the verdict on one model response.
type Classification struct {
	Kind   Kind
	Status int
	Header http.Header
	Body   []byte
	// Detail holds the parsed JSON error body when there was one.
	Detail any
	// Format is "png", "jpeg" or, for unrecognized signatures, the sniffed
	// MIME type. Only set for images.
	Format string
}

var (
	pngSignature  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegSignature = []byte{0xff, 0xd8, 0xff}
)

// Classify decides whether a response is an image or an error:
//  1. a body starting with '{' or '[' that parses as JSON with an
//     error/detail/message field is an error;
//  2. a JSON content type is an error;
//  3. a non-empty 2xx body is an image, whatever its signature;
//  4. anything else is an opaque error.
func Classify(status int, header http.Header, body []byte) Classification {
	c := Classification{Status: status, Header: header, Body: body}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var parsed any
		if err := json.Unmarshal(trimmed, &parsed); err == nil && hasErrorField(parsed) {
			c.Kind = KindError
			c.Detail = parsed
			return c
		}
	}

	if isJSONContentType(header.Get("Content-Type")) {
		c.Kind = KindError
		var parsed any
		if err := json.Unmarshal(trimmed, &parsed); err == nil {
			c.Detail = parsed
		}
		return c
	}

	if status >= 200 && status < 300 && len(body) > 0 {
		c.Kind = KindImage
		c.Format = DetectFormat(body)
		return c
	}

	c.Kind = KindError
	return c
}

// DetectFormat names the image format from its magic bytes, falling back to
// the sniffed MIME type.
func DetectFormat(body []byte) string {
	switch {
	case bytes.HasPrefix(body, pngSignature):
		return "png"
	case bytes.HasPrefix(body, jpegSignature):
		return "jpeg"
	default:
		return mimetype.Detect(body).String()
	}
}

// KnownSignature reports whether the format came from a PNG or JPEG header.
func (c Classification) KnownSignature() bool {
	return c.Format == "png" || c.Format == "jpeg"
}

func hasErrorField(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		for _, k := range []string{"error", "detail", "message"} {
			if _, ok := t[k]; ok {
				return true
			}
		}
	case []any:
		for _, item := range t {
			if hasErrorField(item) {
				return true
			}
		}
	}
	return false
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
