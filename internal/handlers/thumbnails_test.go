package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thumbnail-backend/internal/handlers"
	"thumbnail-backend/internal/inference"
	"thumbnail-backend/internal/middleware"
	"thumbnail-backend/internal/models"
	"thumbnail-backend/internal/services"
	"thumbnail-backend/internal/store"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeProvider struct {
	name  string
	image []byte
	err   error
}

func (p fakeProvider) Name() string { return p.name }

func (p fakeProvider) Generate(context.Context, string) ([]byte, error) {
	return p.image, p.err
}

type fakeUploader struct {
	err error
}

func (u fakeUploader) Upload(_ context.Context, path string, _ []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	return "https://cdn.example.com/" + path, nil
}

type testServer struct {
	router *gin.Engine
	store  *store.MemoryStore
}

func newTestServer(userID uuid.UUID, uploader services.Uploader, providers ...inference.Provider) *testServer {
	gin.SetMode(gin.TestMode)
	log := zerolog.New(io.Discard)
	s := store.NewMemoryStore()
	service := services.NewGenerationService(s, inference.NewChain(providers, log), uploader, nil, log)
	h := handlers.NewThumbnailsHandler(service, log)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	api.POST("/thumbnails/generate", h.GenerateThumbnail)
	api.GET("/thumbnails", h.ListThumbnails)
	api.GET("/thumbnails/:id", h.GetThumbnail)
	api.DELETE("/thumbnails/:id", h.DeleteThumbnail)
	api.GET("/thumbnails/options", handlers.NewOptionsHandler().GetOptions)

	return &testServer{router: router, store: s}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func generateBody() map[string]any {
	return map[string]any{
		"title":        "10 Go tips",
		"prompt":       "a gopher",
		"style":        "Tech/Futuristic",
		"aspect_ratio": "16:9",
		"color_scheme": "ocean",
		"text_overlay": true,
	}
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGenerateThumbnail_Success(t *testing.T) {
	userID := uuid.New()
	srv := newTestServer(userID, fakeUploader{}, fakeProvider{name: "m1", image: pngBytes})

	w := srv.do(t, http.MethodPost, "/api/v1/thumbnails/generate", generateBody())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeJSON(t, w)
	assert.Equal(t, "Thumbnail generated successfully", resp["message"])
	thumb := resp["thumbnail"].(map[string]any)
	assert.Equal(t, false, thumb["is_generating"])
	assert.Equal(t, "succeeded", thumb["status"])
	assert.NotEmpty(t, thumb["image_url"])
	assert.Equal(t, userID.String(), thumb["user_id"])

	list, err := srv.store.ListThumbnails(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Outcome.InProgress())
	assert.NotEmpty(t, list[0].Outcome.ImageURL())
}

func TestGenerateThumbnail_AllModelsFail(t *testing.T) {
	userID := uuid.New()
	srv := newTestServer(userID, fakeUploader{},
		fakeProvider{name: "m1", err: &inference.GenerationError{Model: "m1", Status: 503}},
		fakeProvider{name: "m2", err: &inference.GenerationError{Model: "m2", Status: 500, Body: map[string]any{"error": "overloaded"}}},
	)

	w := srv.do(t, http.MethodPost, "/api/v1/thumbnails/generate", generateBody())

	require.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "m2", resp["model"])
	assert.Equal(t, float64(500), resp["status"])
	assert.Equal(t, map[string]any{"error": "overloaded"}, resp["body"])
	assert.NotEmpty(t, resp["message"])

	list, err := srv.store.ListThumbnails(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Outcome.InProgress())
	assert.Empty(t, list[0].Outcome.ImageURL())
}

func TestGenerateThumbnail_TransportFailureBody(t *testing.T) {
	srv := newTestServer(uuid.New(), fakeUploader{},
		fakeProvider{name: "m1", err: &inference.GenerationError{Model: "m1", Err: errors.New("dial tcp: timeout")}},
	)

	w := srv.do(t, http.MethodPost, "/api/v1/thumbnails/generate", generateBody())

	require.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "dial tcp: timeout", resp["body"])
}

func TestGenerateThumbnail_UploadFailure(t *testing.T) {
	userID := uuid.New()
	srv := newTestServer(userID, fakeUploader{err: errors.New("bucket missing")}, fakeProvider{name: "m1", image: pngBytes})

	w := srv.do(t, http.MethodPost, "/api/v1/thumbnails/generate", generateBody())

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to upload thumbnail")

	list, err := srv.store.ListThumbnails(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusFailed, list[0].Outcome.Status())
}

func TestGenerateThumbnail_ValidationErrors(t *testing.T) {
	srv := newTestServer(uuid.New(), fakeUploader{}, fakeProvider{name: "m1", image: pngBytes})

	unknownStyle := generateBody()
	unknownStyle["style"] = "Vaporwave"
	missingTitle := generateBody()
	delete(missingTitle, "title")
	unknownColor := generateBody()
	unknownColor["color_scheme"] = "beige"

	for name, body := range map[string]map[string]any{
		"unknown style": unknownStyle,
		"missing title": missingTitle,
		"unknown color": unknownColor,
	} {
		w := srv.do(t, http.MethodPost, "/api/v1/thumbnails/generate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
	assert.Equal(t, 0, srv.store.Len())
}

func TestListAndGetThumbnails(t *testing.T) {
	userID := uuid.New()
	srv := newTestServer(userID, fakeUploader{}, fakeProvider{name: "m1", image: pngBytes})

	w := srv.do(t, http.MethodPost, "/api/v1/thumbnails/generate", generateBody())
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeJSON(t, w)["thumbnail"].(map[string]any)["id"].(string)

	w = srv.do(t, http.MethodGet, "/api/v1/thumbnails", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeJSON(t, w)["thumbnails"], 1)

	w = srv.do(t, http.MethodGet, "/api/v1/thumbnails/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decodeJSON(t, w)["id"])

	w = srv.do(t, http.MethodGet, "/api/v1/thumbnails/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/thumbnails/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteThumbnail_NotOwned(t *testing.T) {
	owner := uuid.New()
	s := store.NewMemoryStore()
	record := &models.Thumbnail{ID: uuid.New(), UserID: owner, Title: "t", Style: "Minimalist", AspectRatio: "16:9"}
	require.NoError(t, s.CreateThumbnail(context.Background(), record))

	log := zerolog.New(io.Discard)
	service := services.NewGenerationService(s, inference.NewChain(nil, log), fakeUploader{}, nil, log)
	h := handlers.NewThumbnailsHandler(service, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/thumbnails/:id", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uuid.New())
		h.DeleteThumbnail(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/thumbnails/"+record.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Thumbnail deleted successfully"}`, w.Body.String())

	_, err := s.GetThumbnail(context.Background(), record.ID, owner)
	assert.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestDeleteThumbnail_Idempotent(t *testing.T) {
	userID := uuid.New()
	srv := newTestServer(userID, fakeUploader{}, fakeProvider{name: "m1", image: pngBytes})

	w := srv.do(t, http.MethodPost, "/api/v1/thumbnails/generate", generateBody())
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeJSON(t, w)["thumbnail"].(map[string]any)["id"].(string)

	existing := srv.do(t, http.MethodDelete, "/api/v1/thumbnails/"+id, nil)
	missing := srv.do(t, http.MethodDelete, "/api/v1/thumbnails/"+uuid.NewString(), nil)
	again := srv.do(t, http.MethodDelete, "/api/v1/thumbnails/"+id, nil)

	for _, w := range []*httptest.ResponseRecorder{existing, missing, again} {
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Thumbnail deleted successfully"}`, w.Body.String())
	}
	assert.Equal(t, 0, srv.store.Len())
}

func TestGetOptions(t *testing.T) {
	srv := newTestServer(uuid.New(), fakeUploader{})

	w := srv.do(t, http.MethodGet, "/api/v1/thumbnails/options", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Len(t, resp["styles"], 5)
	assert.Len(t, resp["color_schemes"], 8)
	assert.Contains(t, resp["aspect_ratios"], "16:9")
}
