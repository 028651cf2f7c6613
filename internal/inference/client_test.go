package inference_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thumbnail-backend/internal/inference"
)

func TestClient_TextToImage_RequestShape(t *testing.T) {
	var got inference.TextToImageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/black-forest-labs/FLUX.1-schnell", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("\x89PNG\r\n\x1a\nrest"))
	}))
	defer server.Close()

	client := inference.NewClient(server.URL+"/", "test-key", time.Second)
	resp, err := client.TextToImage(context.Background(), "black-forest-labs/FLUX.1-schnell", "a cat")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "a cat", got.Inputs)
	assert.True(t, got.Options.WaitForModel)
}

func TestClient_TextToImage_ErrorStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
	}))
	defer server.Close()

	client := inference.NewClient(server.URL, "test-key", time.Second)
	resp, err := client.TextToImage(context.Background(), "m", "p")

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "currently loading")
}

func TestClient_TextToImage_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := inference.NewClient(server.URL, "test-key", 50*time.Millisecond)
	_, err := client.TextToImage(context.Background(), "m", "p")

	assert.Error(t, err)
}
