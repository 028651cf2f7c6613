package inference_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"thumbnail-backend/internal/inference"
)

func header(ct string) http.Header {
	h := http.Header{}
	if ct != "" {
		h.Set("Content-Type", ct)
	}
	return h
}

func TestClassify(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00")
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}

	tests := []struct {
		name   string
		status int
		ct     string
		body   []byte
		kind   inference.Kind
		format string
	}{
		{"png image", 200, "image/png", png, inference.KindImage, "png"},
		{"jpeg image", 200, "image/jpeg", jpeg, inference.KindImage, "jpeg"},
		{"json error body with 200", 200, "", []byte(`{"error":"bad"}`), inference.KindError, ""},
		{"json detail field", 422, "text/plain", []byte(`{"detail":"invalid inputs"}`), inference.KindError, ""},
		{"json array of errors", 400, "", []byte(`[{"message":"nope"}]`), inference.KindError, ""},
		{"json content type without error field", 503, "application/json; charset=utf-8", []byte(`{"estimated_time":3}`), inference.KindError, ""},
		{"unknown signature still accepted", 200, "application/octet-stream", []byte("GIF89a...."), inference.KindImage, "image/gif"},
		{"json without error field is an image on 2xx", 200, "application/octet-stream", []byte(`{"ok":true}`), inference.KindImage, "application/json"},
		{"empty body", 200, "image/png", nil, inference.KindError, ""},
		{"opaque 500", 500, "text/html", []byte("<html>oops</html>"), inference.KindError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := inference.Classify(tt.status, header(tt.ct), tt.body)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.status, c.Status)
			if tt.kind == inference.KindImage {
				assert.Equal(t, tt.format, c.Format)
			}
		})
	}
}

func TestClassify_ParsesErrorDetail(t *testing.T) {
	c := inference.Classify(400, header("application/json"), []byte(`{"error":"Authorization header is invalid"}`))

	assert.Equal(t, inference.KindError, c.Kind)
	detail, ok := c.Detail.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Authorization header is invalid", detail["error"])
}

func TestClassify_KnownSignature(t *testing.T) {
	assert.True(t, inference.Classify(200, header(""), []byte("\x89PNG\r\n\x1a\nxx")).KnownSignature())
	assert.False(t, inference.Classify(200, header(""), []byte("RIFF0000WEBP")).KnownSignature())
}
