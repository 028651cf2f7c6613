package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thumbnail-backend/internal/models"
)

func TestThumbnailRow_ToModel(t *testing.T) {
	url := "https://cdn.example.com/a.png"
	prompt := "Create a minimalist thumbnail"
	row := thumbnailRow{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "title",
		Style:       "Minimalist",
		AspectRatio: "16:9",
		PromptUsed:  &prompt,
		Status:      "succeeded",
		ImageURL:    &url,
		CreatedAt:   time.Now(),
	}

	th, err := row.toModel()
	require.NoError(t, err)
	assert.Equal(t, url, th.Outcome.ImageURL())
	assert.Equal(t, prompt, th.PromptUsed)
	assert.Empty(t, th.ColorScheme)
	assert.False(t, th.Outcome.InProgress())

	row.ImageURL = nil
	_, err = row.toModel()
	assert.Error(t, err)
}

func TestRestStore_DeleteIsOwnerScoped(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	var gotMethod, gotPath string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s, err := NewRestStore(srv.URL, "anon-key")
	require.NoError(t, err)

	require.NoError(t, s.DeleteThumbnail(context.Background(), id, userID))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/rest/v1/thumbnails", gotPath)
	assert.Equal(t, []string{"eq." + id.String()}, gotQuery["id"])
	assert.Equal(t, []string{"eq." + userID.String()}, gotQuery["user_id"])
}

func TestRestStore_GetMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	s, err := NewRestStore(srv.URL, "anon-key")
	require.NoError(t, err)

	_, err = s.GetThumbnail(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, models.ErrThumbnailNotFound)
}
