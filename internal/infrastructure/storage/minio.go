package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"xpose-backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// ErrForeignURL is returned by Download when the URL was not produced by this bucket.
var ErrForeignURL = errors.New("url does not belong to this bucket")

// NewMinIOClient creates the shared MinIO client. It does not contact the server.
func NewMinIOClient(cfg config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

// MinIOStorage stores blobs in one bucket and exposes them under a public URL prefix.
// Object names are flat: <uuid>-<original filename>.
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	urlPrefix string

	mu      sync.Mutex
	ensured bool
}

// NewMinIOStorage binds a client to a bucket and its public URL prefix.
func NewMinIOStorage(client *minio.Client, bucket, urlPrefix string) *MinIOStorage {
	return &MinIOStorage{
		client:    client,
		bucket:    bucket,
		urlPrefix: urlPrefix,
	}
}

// EnsureBucket creates the bucket if it does not exist yet.
// Once it succeeded it is not checked again for the lifetime of the process.
func (s *MinIOStorage) EnsureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensured {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			// Lost a race with another instance.
			exists, checkErr := s.client.BucketExists(ctx, s.bucket)
			if checkErr != nil || !exists {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
		}
		log.Info().Str("bucket", s.bucket).Msg("[STORAGE] Bucket created")
	}

	s.ensured = true
	return nil
}

// Upload stores the blob under a fresh unique name derived from filename
// and returns its public URL.
func (s *MinIOStorage) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	return s.UploadAs(ctx, newObjectName(filename), r, size, contentType)
}

// UploadAs stores the blob under objectName as-is and returns its public URL.
func (s *MinIOStorage) UploadAs(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	if err := s.EnsureBucket(ctx); err != nil {
		return "", err
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return s.urlPrefix + objectName, nil
}

// Download reads the whole object behind url into memory.
func (s *MinIOStorage) Download(ctx context.Context, url string) ([]byte, error) {
	objectName, ok := objectNameFromURL(s.urlPrefix, url)
	if !ok {
		return nil, ErrForeignURL
	}

	object, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, object); err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return buf.Bytes(), nil
}

// Delete removes the object behind url. A URL that does not start with the
// bucket's prefix cannot name one of our objects, so it is a no-op.
func (s *MinIOStorage) Delete(ctx context.Context, url string) error {
	objectName, ok := objectNameFromURL(s.urlPrefix, url)
	if !ok {
		log.Warn().Str("url", url).Str("bucket", s.bucket).Msg("[STORAGE] Skip delete of foreign url")
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectName returns the object name behind url, or false for foreign URLs.
func (s *MinIOStorage) ObjectName(url string) (string, bool) {
	return objectNameFromURL(s.urlPrefix, url)
}

func objectNameFromURL(prefix, url string) (string, bool) {
	if url == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix)
	if name == "" {
		return "", false
	}
	return name, true
}

func newObjectName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return uuid.NewString() + "-" + base
}
