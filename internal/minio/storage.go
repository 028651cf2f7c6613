package minio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage uploads thumbnails to an S3-compatible bucket.
type Storage struct {
	client     *minio.Client
	bucketName string
	publicURL  string
}

// NewStorage connects to the server and creates the bucket when missing.
// publicURL is the externally reachable prefix for objects; when empty it is
// derived from the endpoint.
func NewStorage(ctx context.Context, endpoint, accessKey, secretKey, bucketName, publicURL string, useSSL bool) (*Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Storage{
		client:     client,
		bucketName: bucketName,
		publicURL:  ObjectURLPrefix(endpoint, bucketName, publicURL, useSSL),
	}, nil
}

func (s *Storage) Upload(ctx context.Context, path string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucketName, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimetype.Detect(data).String(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return s.publicURL + "/" + path, nil
}

// ObjectURLPrefix returns the URL objects in bucket are served under.
func ObjectURLPrefix(endpoint, bucket, publicURL string, useSSL bool) string {
	if publicURL != "" {
		return strings.TrimSuffix(publicURL, "/")
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
}
