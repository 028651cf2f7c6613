package supabase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	storage "github.com/supabase-community/storage-go"
)

// StorageClient uploads generated thumbnails to a public Supabase Storage
// bucket.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) *StorageClient {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	return &StorageClient{
		client:  storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// Upload stores data under path and returns its public URL.
func (s *StorageClient) Upload(ctx context.Context, path string, data []byte) (string, error) {
	contentType := mimetype.Detect(data).String()
	upsert := true
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(path), nil
}

func (s *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}
